package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// UserRepository is a read-only view over the identity collection that
// the user service owns. This service only verifies roles and looks up
// notification addresses.
type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		logger:     logger,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidArgument
	}

	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("user lookup failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}
