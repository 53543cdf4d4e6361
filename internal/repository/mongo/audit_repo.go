package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
)

type AuditRepo struct {
	log *mongo.Collection
}

func NewAuditRepo(db *mongo.Database) *AuditRepo {
	return &AuditRepo{log: db.Collection("audit_log")}
}

func (r *AuditRepo) Insert(ctx context.Context, ev *entity.Event) error {
	if _, err := r.log.InsertOne(ctx, ev); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Redelivered event, already recorded.
			return nil
		}
		return apperr.Internal("insert audit event", err)
	}
	return nil
}
