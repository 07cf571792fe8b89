package domain

import "context"

type PropertyRepository interface {
	Insert(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Property, error)
	// FindByFilter returns active properties matching every supplied
	// constraint, newest first.
	FindByFilter(ctx context.Context, filter Filter) ([]*Property, error)
	// FindByAgentID returns the agent's own properties, including
	// inactive ones, newest first.
	FindByAgentID(ctx context.Context, agentID string) ([]*Property, error)
	// FindAll is the administrative view: every property regardless of
	// the active flag, newest first.
	FindAll(ctx context.Context) ([]*Property, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type FavoriteRepository interface {
	// Toggle flips the existence of the (userID, propertyID) pair and
	// reports the resulting state. Implementations must guarantee at
	// most one row per pair under concurrent calls; the Mongo adapter
	// does this with a unique compound index rather than check-then-act.
	Toggle(ctx context.Context, userID, propertyID string) (ToggleState, error)
	FindByUserID(ctx context.Context, userID string) ([]*Favorite, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository reads identities owned by the user service. Used to
// verify the agent role at creation time and to look up notification
// addresses; never written from here.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// MediaStorage accepts binary uploads and returns a stable public URL.
type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher emits domain events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// PropertyCache is the read-through cache for single-property lookups.
// A nil, nil return means cache miss.
type PropertyCache interface {
	Get(ctx context.Context, id string) (*Property, error)
	Set(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
}
