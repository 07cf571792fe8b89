package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// Mailer sends agent-facing notifications. Delivery is best-effort:
// a failed email never fails the operation that triggered it.
type Mailer interface {
	SendListingCreated(toEmail, title string) error
	SendListingDeactivated(toEmail, title string) error
}

// Event subjects published on the message bus.
const (
	SubjectPropertyCreated = "properties.created"
	SubjectPropertyUpdated = "properties.updated"
	SubjectPropertyDeleted = "properties.deleted"
)

type propertyEvent struct {
	PropertyID string `json:"propertyId"`
	AgentID    string `json:"agentId"`
	IsActive   bool   `json:"isActive"`
}

type CreatePropertyInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        domain.PropertyType `json:"type"`
	Price       int64               `json:"price"`
	Location    string              `json:"location"`
	City        string              `json:"city"`
	Bedrooms    int                 `json:"bedrooms"`
	Bathrooms   int                 `json:"bathrooms"`
	Area        float64             `json:"area"`
	Amenities   []string            `json:"amenities"`
	Coordinates *domain.Coordinates `json:"coordinates"`
}

// UpdatePropertyInput is a partial patch; nil fields are left untouched.
type UpdatePropertyInput struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Type        *domain.PropertyType `json:"type"`
	Price       *int64               `json:"price"`
	Location    *string              `json:"location"`
	City        *string              `json:"city"`
	Bedrooms    *int                 `json:"bedrooms"`
	Bathrooms   *int                 `json:"bathrooms"`
	Area        *float64             `json:"area"`
	Amenities   []string             `json:"amenities"`
	Coordinates *domain.Coordinates  `json:"coordinates"`
}

type ListingUsecase struct {
	properties domain.PropertyRepository
	users      domain.UserRepository
	cache      domain.PropertyCache
	events     domain.EventPublisher
	mailer     Mailer
	logger     *zap.Logger
}

func NewListingUsecase(
	properties domain.PropertyRepository,
	users domain.UserRepository,
	cache domain.PropertyCache,
	events domain.EventPublisher,
	mailer Mailer,
	logger *zap.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		properties: properties,
		users:      users,
		cache:      cache,
		events:     events,
		mailer:     mailer,
		logger:     logger,
	}
}

// Search is the public discovery path. A backend read failure degrades
// to an empty result list, with ErrStoreUnavailable signalling the
// failure so the transport can report it; write paths never do this.
func (uc *ListingUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	properties, err := uc.properties.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("property search failed, returning empty result", zap.Error(err))
		return []*domain.Property{}, domain.ErrStoreUnavailable
	}
	if properties == nil {
		properties = []*domain.Property{}
	}
	return properties, nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidArgument
	}

	if cached, err := uc.cache.Get(ctx, id); err != nil {
		uc.logger.Warn("property cache read failed", zap.String("property_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	property, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, property); err != nil {
		uc.logger.Warn("property cache write failed", zap.String("property_id", id), zap.Error(err))
	}
	return property, nil
}

func (uc *ListingUsecase) MyListings(ctx context.Context, actor domain.Actor) ([]*domain.Property, error) {
	if err := domain.Authorize(domain.OpMyListings, actor); err != nil {
		return nil, err
	}
	return uc.properties.FindByAgentID(ctx, actor.UserID)
}

func (uc *ListingUsecase) Create(ctx context.Context, actor domain.Actor, in CreatePropertyInput) (*domain.Property, error) {
	if err := domain.Authorize(domain.OpCreateProperty, actor); err != nil {
		return nil, err
	}
	if err := validateDraft(in); err != nil {
		return nil, err
	}

	// The token says "agent"; the identity store is the authority. A
	// suspended or reassigned account must not create listings.
	agent, err := uc.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if agent.Role != domain.RoleAgent || !agent.IsActive {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	property := &domain.Property{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Location:    in.Location,
		City:        in.City,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Amenities:   in.Amenities,
		Images:      []string{},
		Videos:      []string{},
		Coordinates: in.Coordinates,
		AgentID:     actor.UserID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.properties.Insert(ctx, property); err != nil {
		uc.logger.Error("property insert failed", zap.String("agent_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("property created",
		zap.String("property_id", property.ID), zap.String("agent_id", property.AgentID))

	uc.publish(ctx, SubjectPropertyCreated, property)
	if err := uc.mailer.SendListingCreated(agent.Email, property.Title); err != nil {
		uc.logger.Warn("listing created email failed",
			zap.String("property_id", property.ID), zap.Error(err))
	}
	return property, nil
}

func (uc *ListingUsecase) Update(ctx context.Context, actor domain.Actor, id string, in UpdatePropertyInput) (*domain.Property, error) {
	if err := domain.Authorize(domain.OpUpdateProperty, actor); err != nil {
		return nil, err
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidArgument
	}

	property, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && property.AgentID != actor.UserID {
		uc.logger.Warn("update refused: not the owning agent",
			zap.String("property_id", id), zap.String("actor_id", actor.UserID))
		return nil, domain.ErrUnauthorized
	}
	if err := applyPatch(property, in); err != nil {
		return nil, err
	}
	property.UpdatedAt = time.Now().UTC()

	if err := uc.properties.Update(ctx, property); err != nil {
		uc.logger.Error("property update failed", zap.String("property_id", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectPropertyUpdated, property)
	return property, nil
}

// Delete is the agent-facing hard delete: the document is removed, not
// deactivated. Favorites pointing at it are left dangling on purpose.
func (uc *ListingUsecase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := domain.Authorize(domain.OpDeleteProperty, actor); err != nil {
		return err
	}
	if !domain.ValidID(id) {
		return domain.ErrInvalidArgument
	}

	property, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if property.AgentID != actor.UserID {
		uc.logger.Warn("delete refused: not the owning agent",
			zap.String("property_id", id), zap.String("actor_id", actor.UserID))
		return domain.ErrUnauthorized
	}
	if err := uc.properties.Delete(ctx, id); err != nil {
		uc.logger.Error("property delete failed", zap.String("property_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("property deleted", zap.String("property_id", id), zap.String("agent_id", actor.UserID))
	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectPropertyDeleted, property)
	return nil
}

// ListAll is the administrative view, inactive documents included.
func (uc *ListingUsecase) ListAll(ctx context.Context, actor domain.Actor) ([]*domain.Property, error) {
	if err := domain.Authorize(domain.OpAdminListProperties, actor); err != nil {
		return nil, err
	}
	return uc.properties.FindAll(ctx)
}

// SetActive flips the soft-visibility flag and nothing else. Ownership
// and other fields are untouched, and deactivation does not block the
// owning agent from editing the document.
func (uc *ListingUsecase) SetActive(ctx context.Context, actor domain.Actor, id string, isActive bool) error {
	if err := domain.Authorize(domain.OpAdminSetActive, actor); err != nil {
		return err
	}
	if !domain.ValidID(id) {
		return domain.ErrInvalidArgument
	}

	property, err := uc.properties.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.properties.SetActive(ctx, id, isActive); err != nil {
		uc.logger.Error("set active failed", zap.String("property_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("property visibility changed",
		zap.String("property_id", id), zap.Bool("is_active", isActive))
	uc.invalidate(ctx, id)

	property.IsActive = isActive
	uc.publish(ctx, SubjectPropertyUpdated, property)

	if !isActive {
		if owner, err := uc.users.FindByID(ctx, property.AgentID); err == nil {
			if err := uc.mailer.SendListingDeactivated(owner.Email, property.Title); err != nil {
				uc.logger.Warn("deactivation email failed",
					zap.String("property_id", id), zap.Error(err))
			}
		}
	}
	return nil
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, p *domain.Property) {
	event := propertyEvent{PropertyID: p.ID, AgentID: p.AgentID, IsActive: p.IsActive}
	if err := uc.events.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("cache invalidation failed", zap.String("property_id", id), zap.Error(err))
	}
}

func validateDraft(in CreatePropertyInput) error {
	if in.Title == "" || in.Description == "" || in.Price <= 0 {
		return domain.ErrMissingFields
	}
	if in.Type != "" && !domain.ValidPropertyType(in.Type) {
		return domain.ErrValidation
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 || in.Area < 0 {
		return domain.ErrValidation
	}
	return nil
}

func applyPatch(p *domain.Property, in UpdatePropertyInput) error {
	if in.Title != nil {
		if *in.Title == "" {
			return domain.ErrValidation
		}
		p.Title = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			return domain.ErrValidation
		}
		p.Description = *in.Description
	}
	if in.Type != nil {
		if !domain.ValidPropertyType(*in.Type) {
			return domain.ErrValidation
		}
		p.Type = *in.Type
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return domain.ErrValidation
		}
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Bedrooms != nil {
		if *in.Bedrooms < 0 {
			return domain.ErrValidation
		}
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		if *in.Bathrooms < 0 {
			return domain.ErrValidation
		}
		p.Bathrooms = *in.Bathrooms
	}
	if in.Area != nil {
		if *in.Area < 0 {
			return domain.ErrValidation
		}
		p.Area = *in.Area
	}
	if in.Amenities != nil {
		p.Amenities = in.Amenities
	}
	if in.Coordinates != nil {
		p.Coordinates = in.Coordinates
	}
	return nil
}
