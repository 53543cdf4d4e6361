package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
)

type UserRepo struct {
	users *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: db.Collection("users")}
}

func (r *UserRepo) Insert(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Validation("user already exists", err)
		}
		return apperr.Internal("insert user", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	res, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return apperr.Internal("update user", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found", nil)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found", nil)
	}
	if err != nil {
		return nil, apperr.Internal("find user", err)
	}
	return &user, nil
}

func (r *UserRepo) FindByIDs(ctx context.Context, userIDs []string) (map[string]entity.User, error) {
	out := make(map[string]entity.User, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, apperr.Internal("find users", err)
	}

	var users []entity.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Internal("decode users", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
