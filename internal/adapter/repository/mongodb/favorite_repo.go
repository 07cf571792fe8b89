package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

type FavoriteRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewFavoriteRepository ensures the unique (user_id, property_id)
// compound index exists. The index is the dedup guarantee for toggles:
// concurrent inserts for the same pair cannot both succeed, so the
// collection never holds two rows for one pair.
func NewFavoriteRepository(ctx context.Context, db *mongo.Database, logger *zap.Logger) (*FavoriteRepository, error) {
	collection := db.Collection("favorites")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "property_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create favorites index: %w", err)
	}

	return &FavoriteRepository{collection: collection, logger: logger}, nil
}

// Toggle is insert-first: it attempts the insert and falls back to a
// delete when the unique index reports the pair already exists. Either
// branch performs exactly one mutation. Losing an insert race to a
// concurrent call lands in the delete branch, which keeps the
// zero-or-one-row invariant regardless of interleaving.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, propertyID string) (domain.ToggleState, error) {
	doc := favoriteDocument{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err == nil {
		return domain.ToggleAdded, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		r.logger.Error("favorite insert failed",
			zap.String("user_id", userID), zap.String("property_id", propertyID), zap.Error(err))
		return "", err
	}

	pair := bson.M{"user_id": userID, "property_id": propertyID}
	res, err := r.collection.DeleteOne(ctx, pair)
	if err != nil {
		r.logger.Error("favorite delete failed",
			zap.String("user_id", userID), zap.String("property_id", propertyID), zap.Error(err))
		return "", err
	}
	if res.DeletedCount == 0 {
		// A concurrent toggle removed the pair between our insert
		// attempt and the delete. Retry the insert once; one of the
		// two racing calls wins each slot.
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return "", errors.New("favorite toggle lost race twice")
			}
			return "", err
		}
		return domain.ToggleAdded, nil
	}
	return domain.ToggleRemoved, nil
}

func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	if userID == "" {
		return nil, errors.New("user id must not be empty")
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		r.logger.Error("favorites find failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("favorites cursor decode failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	favorites := make([]*domain.Favorite, 0, len(docs))
	for _, doc := range docs {
		favorites = append(favorites, toDomainFavorite(doc))
	}
	return favorites, nil
}

func (r *FavoriteRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
