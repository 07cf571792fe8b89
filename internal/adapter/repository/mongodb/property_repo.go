package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// newestFirst is the sort order for every listing view.
var newestFirst = bson.D{{Key: "created_at", Value: -1}}

type PropertyRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewPropertyRepository(db *mongo.Database, logger *zap.Logger) *PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection("properties"),
		logger:     logger,
	}
}

func (r *PropertyRepository) Insert(ctx context.Context, property *domain.Property) error {
	doc, err := toPropertyDocument(property)
	if err != nil {
		return err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("property insert failed", zap.Error(err))
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	property.ID = oid.Hex()
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	doc, err := toPropertyDocument(property)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		r.logger.Error("property update failed", zap.String("property_id", property.ID), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("property delete failed", zap.String("property_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidArgument
	}

	var doc propertyDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		r.logger.Error("property lookup failed", zap.String("property_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainProperty(&doc), nil
}

func (r *PropertyRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	query := buildPropertyQuery(filter, true)
	return r.find(ctx, query)
}

func (r *PropertyRepository) FindByAgentID(ctx context.Context, agentID string) ([]*domain.Property, error) {
	return r.find(ctx, bson.M{"agent_id": agentID})
}

func (r *PropertyRepository) FindAll(ctx context.Context) ([]*domain.Property, error) {
	return r.find(ctx, bson.M{})
}

func (r *PropertyRepository) find(ctx context.Context, query bson.M) ([]*domain.Property, error) {
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(newestFirst))
	if err != nil {
		r.logger.Error("property find failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("property cursor decode failed", zap.Error(err))
		return nil, err
	}
	return toDomainProperties(docs), nil
}

// SetActive flips only the visibility flag, leaving ownership and the
// rest of the document untouched.
func (r *PropertyRepository) SetActive(ctx context.Context, id string, isActive bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"is_active": isActive}})
	if err != nil {
		r.logger.Error("set active failed", zap.String("property_id", id), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *PropertyRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_active": bson.M{"$ne": false}})
}
