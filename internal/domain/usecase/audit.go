package usecase

import (
	"context"
	"encoding/json"

	"github.com/Niku17/JobSift/internal/domain/entity"
)

type AuditRepo interface {
	Insert(ctx context.Context, ev *entity.Event) error
}

// AuditTrail consumes lifecycle events off the jobs exchange and keeps
// the activity history. It records; it never notifies.
type AuditTrail struct {
	Log AuditRepo
}

func NewAuditTrail(log AuditRepo) *AuditTrail {
	return &AuditTrail{Log: log}
}

func (a *AuditTrail) Record(ctx context.Context, body json.RawMessage) error {
	var ev entity.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	return a.Log.Insert(ctx, &ev)
}
