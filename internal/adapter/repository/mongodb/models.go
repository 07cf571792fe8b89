package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estatehub/marketplace/internal/property/domain"
)

type coordinatesDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type propertyDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Type        domain.PropertyType  `bson:"type,omitempty"`
	Price       int64                `bson:"price"`
	Location    string               `bson:"location,omitempty"`
	City        string               `bson:"city,omitempty"`
	Bedrooms    int                  `bson:"bedrooms"`
	Bathrooms   int                  `bson:"bathrooms"`
	Area        float64              `bson:"area"`
	Amenities   []string             `bson:"amenities,omitempty"`
	Images      []string             `bson:"images,omitempty"`
	Videos      []string             `bson:"videos,omitempty"`
	Coordinates *coordinatesDocument `bson:"coordinates,omitempty"`
	AgentID     string               `bson:"agent_id"`
	IsActive    bool                 `bson:"is_active"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type favoriteDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	PropertyID string             `bson:"property_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Name     string             `bson:"name"`
	Role     domain.Role        `bson:"role"`
	IsActive bool               `bson:"is_active"`
}

func toPropertyDocument(p *domain.Property) (*propertyDocument, error) {
	if p == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if p.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid property id %q: %w", p.ID, err)
		}
	}

	var coords *coordinatesDocument
	if p.Coordinates != nil {
		coords = &coordinatesDocument{Lat: p.Coordinates.Lat, Lng: p.Coordinates.Lng}
	}

	return &propertyDocument{
		ID:          docID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Price:       p.Price,
		Location:    p.Location,
		City:        p.City,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Amenities:   p.Amenities,
		Images:      p.Images,
		Videos:      p.Videos,
		Coordinates: coords,
		AgentID:     p.AgentID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func toDomainProperty(d *propertyDocument) *domain.Property {
	if d == nil {
		return nil
	}
	var coords *domain.Coordinates
	if d.Coordinates != nil {
		coords = &domain.Coordinates{Lat: d.Coordinates.Lat, Lng: d.Coordinates.Lng}
	}
	return &domain.Property{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		Price:       d.Price,
		Location:    d.Location,
		City:        d.City,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Area:        d.Area,
		Amenities:   d.Amenities,
		Images:      d.Images,
		Videos:      d.Videos,
		Coordinates: coords,
		AgentID:     d.AgentID,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainProperties(docs []*propertyDocument) []*domain.Property {
	properties := make([]*domain.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, toDomainProperty(doc))
	}
	return properties
}

func toDomainFavorite(d *favoriteDocument) *domain.Favorite {
	if d == nil {
		return nil
	}
	return &domain.Favorite{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		PropertyID: d.PropertyID,
		CreatedAt:  d.CreatedAt,
	}
}

func toDomainUser(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Name:     d.Name,
		Role:     d.Role,
		IsActive: d.IsActive,
	}
}
