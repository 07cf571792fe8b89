package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

const SubjectFavoriteToggled = "favorites.toggled"

type favoriteEvent struct {
	UserID     string             `json:"userId"`
	PropertyID string             `json:"propertyId"`
	State      domain.ToggleState `json:"state"`
}

type FavoriteUsecase struct {
	favorites domain.FavoriteRepository
	events    domain.EventPublisher
	logger    *zap.Logger
}

func NewFavoriteUsecase(favorites domain.FavoriteRepository, events domain.EventPublisher, logger *zap.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		favorites: favorites,
		events:    events,
		logger:    logger,
	}
}

// Toggle flips the favorite state for (actor, propertyID): absent pairs
// are inserted, present pairs are removed. There is no "ensure added"
// variant; every call performs exactly one store mutation. A dangling
// propertyID (existing syntax, no such document) is accepted.
func (uc *FavoriteUsecase) Toggle(ctx context.Context, actor domain.Actor, propertyID string) (domain.ToggleState, error) {
	if actor.UserID == "" {
		return "", domain.ErrUnauthorized
	}
	if err := domain.Authorize(domain.OpToggleFavorite, actor); err != nil {
		return "", err
	}
	if !domain.ValidID(propertyID) {
		return "", domain.ErrInvalidArgument
	}

	state, err := uc.favorites.Toggle(ctx, actor.UserID, propertyID)
	if err != nil {
		uc.logger.Error("favorite toggle failed",
			zap.String("user_id", actor.UserID), zap.String("property_id", propertyID), zap.Error(err))
		return "", err
	}
	uc.logger.Info("favorite toggled",
		zap.String("user_id", actor.UserID), zap.String("property_id", propertyID), zap.String("state", string(state)))

	event := favoriteEvent{UserID: actor.UserID, PropertyID: propertyID, State: state}
	if err := uc.events.Publish(ctx, SubjectFavoriteToggled, event); err != nil {
		uc.logger.Warn("favorite event publish failed", zap.Error(err))
	}
	return state, nil
}

func (uc *FavoriteUsecase) List(ctx context.Context, actor domain.Actor) ([]*domain.Favorite, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.Authorize(domain.OpListFavorites, actor); err != nil {
		return nil, err
	}
	favorites, err := uc.favorites.FindByUserID(ctx, actor.UserID)
	if err != nil {
		uc.logger.Error("favorites fetch failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	return favorites, nil
}
