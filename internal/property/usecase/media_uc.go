package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

type MediaUsecase struct {
	properties domain.PropertyRepository
	storage    domain.MediaStorage
	cache      domain.PropertyCache
	logger     *zap.Logger
}

func NewMediaUsecase(properties domain.PropertyRepository, storage domain.MediaStorage, cache domain.PropertyCache, logger *zap.Logger) *MediaUsecase {
	return &MediaUsecase{
		properties: properties,
		storage:    storage,
		cache:      cache,
		logger:     logger,
	}
}

// AttachPhoto uploads the image to media storage and appends the
// returned URL to the property's image list. Only the owning agent may
// attach media.
func (uc *MediaUsecase) AttachPhoto(ctx context.Context, actor domain.Actor, propertyID, fileName string, data []byte) (string, error) {
	return uc.attach(ctx, domain.OpAttachPhoto, actor, propertyID, fileName, data, func(p *domain.Property, url string) {
		p.Images = append(p.Images, url)
	})
}

// AttachVideo is the same flow for the property's video list.
func (uc *MediaUsecase) AttachVideo(ctx context.Context, actor domain.Actor, propertyID, fileName string, data []byte) (string, error) {
	return uc.attach(ctx, domain.OpAttachVideo, actor, propertyID, fileName, data, func(p *domain.Property, url string) {
		p.Videos = append(p.Videos, url)
	})
}

func (uc *MediaUsecase) attach(ctx context.Context, op domain.Operation, actor domain.Actor, propertyID, fileName string, data []byte, appendURL func(*domain.Property, string)) (string, error) {
	if err := domain.Authorize(op, actor); err != nil {
		return "", err
	}
	if !domain.ValidID(propertyID) {
		return "", domain.ErrInvalidArgument
	}
	if len(data) == 0 {
		return "", domain.ErrValidation
	}

	property, err := uc.properties.FindByID(ctx, propertyID)
	if err != nil {
		return "", err
	}
	if property.AgentID != actor.UserID {
		uc.logger.Warn("media upload refused: not the owning agent",
			zap.String("property_id", propertyID), zap.String("actor_id", actor.UserID))
		return "", domain.ErrUnauthorized
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("media upload failed", zap.String("property_id", propertyID), zap.Error(err))
		return "", err
	}

	appendURL(property, url)
	if err := uc.properties.Update(ctx, property); err != nil {
		uc.logger.Error("media attach failed", zap.String("property_id", propertyID), zap.Error(err))
		return "", err
	}
	if err := uc.cache.Delete(ctx, propertyID); err != nil {
		uc.logger.Warn("cache invalidation failed", zap.String("property_id", propertyID), zap.Error(err))
	}

	uc.logger.Info("media attached", zap.String("property_id", propertyID), zap.String("url", url))
	return url, nil
}
