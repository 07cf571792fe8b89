package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// Stats is the super-admin dashboard snapshot.
type Stats struct {
	TotalAgents      int64 `json:"totalAgents"`
	TotalAgencies    int64 `json:"totalAgencies"`
	TotalProperties  int64 `json:"totalProperties"`
	ActiveProperties int64 `json:"activeProperties"`
	TotalFavorites   int64 `json:"totalFavorites"`
}

type StatsUsecase struct {
	properties domain.PropertyRepository
	favorites  domain.FavoriteRepository
	users      domain.UserRepository
	logger     *zap.Logger
}

func NewStatsUsecase(properties domain.PropertyRepository, favorites domain.FavoriteRepository, users domain.UserRepository, logger *zap.Logger) *StatsUsecase {
	return &StatsUsecase{
		properties: properties,
		favorites:  favorites,
		users:      users,
		logger:     logger,
	}
}

func (uc *StatsUsecase) Stats(ctx context.Context, actor domain.Actor) (*Stats, error) {
	if err := domain.Authorize(domain.OpAdminStats, actor); err != nil {
		return nil, err
	}

	var (
		stats Stats
		err   error
	)
	if stats.TotalAgents, err = uc.users.CountByRole(ctx, domain.RoleAgent); err != nil {
		return nil, err
	}
	if stats.TotalAgencies, err = uc.users.CountByRole(ctx, domain.RoleAgency); err != nil {
		return nil, err
	}
	if stats.TotalProperties, err = uc.properties.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProperties, err = uc.properties.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFavorites, err = uc.favorites.Count(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
