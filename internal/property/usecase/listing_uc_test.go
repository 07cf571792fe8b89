package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

const (
	agentID      = "6650f0a1b2c3d4e5f6a7b8c9"
	otherAgentID = "6650f0a1b2c3d4e5f6a7b8ca"
	adminID      = "6650f0a1b2c3d4e5f6a7b8cb"
	clientID     = "6650f0a1b2c3d4e5f6a7b8cc"
)

type listingFixture struct {
	uc        *ListingUsecase
	repo      *fakePropertyRepo
	users     *fakeUserRepo
	cache     *fakeCache
	publisher *fakePublisher
	mailer    *fakeMailer
}

func newListingFixture() *listingFixture {
	repo := newFakePropertyRepo()
	users := newFakeUserRepo(
		&domain.User{ID: agentID, Email: "agent@example.com", Role: domain.RoleAgent, IsActive: true},
		&domain.User{ID: otherAgentID, Email: "other@example.com", Role: domain.RoleAgent, IsActive: true},
		&domain.User{ID: adminID, Email: "admin@example.com", Role: domain.RoleSuperAdmin, IsActive: true},
		&domain.User{ID: clientID, Email: "client@example.com", Role: domain.RoleClient, IsActive: true},
	)
	cache := newFakeCache()
	publisher := &fakePublisher{}
	mailer := &fakeMailer{}
	uc := NewListingUsecase(repo, users, cache, publisher, mailer, zap.NewNop())
	return &listingFixture{uc: uc, repo: repo, users: users, cache: cache, publisher: publisher, mailer: mailer}
}

func agentActor() domain.Actor {
	return domain.Actor{UserID: agentID, Role: domain.RoleAgent}
}

func validDraft() CreatePropertyInput {
	return CreatePropertyInput{
		Title:       "Sunny family home",
		Description: "Three bedrooms near the park",
		Type:        domain.TypeHouse,
		Price:       250000,
		City:        "Johannesburg",
		Bedrooms:    3,
		Bathrooms:   2,
		Area:        140,
	}
}

func TestCreateStampsFieldsAndPublishes(t *testing.T) {
	f := newListingFixture()

	property, err := f.uc.Create(context.Background(), agentActor(), validDraft())
	require.NoError(t, err)

	assert.True(t, domain.ValidID(property.ID))
	assert.Equal(t, agentID, property.AgentID)
	assert.True(t, property.IsActive)
	assert.False(t, property.CreatedAt.IsZero())
	assert.Equal(t, property.CreatedAt, property.UpdatedAt)

	assert.Equal(t, []string{SubjectPropertyCreated}, f.publisher.subjects())
	assert.Equal(t, []string{"agent@example.com"}, f.mailer.created)
}

func TestCreateRequiresTitleDescriptionPrice(t *testing.T) {
	cases := map[string]func(*CreatePropertyInput){
		"missing title":       func(in *CreatePropertyInput) { in.Title = "" },
		"missing description": func(in *CreatePropertyInput) { in.Description = "" },
		"missing price":       func(in *CreatePropertyInput) { in.Price = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newListingFixture()
			draft := validDraft()
			mutate(&draft)

			_, err := f.uc.Create(context.Background(), agentActor(), draft)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.repo.size(), "nothing may be persisted on validation failure")
		})
	}
}

func TestCreateRejectsNonAgents(t *testing.T) {
	f := newListingFixture()
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleAgency, domain.RoleSuperAdmin, domain.RoleAnonymous} {
		_, err := f.uc.Create(context.Background(), domain.Actor{UserID: clientID, Role: role}, validDraft())
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "role %q", role)
	}
	assert.Zero(t, f.repo.size())
}

func TestCreateRejectsSuspendedAgent(t *testing.T) {
	f := newListingFixture()
	f.users.users[agentID].IsActive = false

	_, err := f.uc.Create(context.Background(), agentActor(), validDraft())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, f.repo.size())
}

func TestSearchDegradesToEmptyOnStoreFailure(t *testing.T) {
	f := newListingFixture()
	f.repo.failAll = true

	properties, err := f.uc.Search(context.Background(), domain.Filter{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, properties)
	assert.NotNil(t, properties, "a degraded search still carries an empty list")
}

func TestSearchAppliesConjunctiveFilters(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	jhb := validDraft()
	jhb.City = "Johannesburg"
	jhb.Price = 100000
	_, err := f.uc.Create(ctx, agentActor(), jhb)
	require.NoError(t, err)

	sandton := validDraft()
	sandton.Title = "Sandton penthouse"
	sandton.City = "Sandton"
	sandton.Price = 500000
	_, err = f.uc.Create(ctx, agentActor(), sandton)
	require.NoError(t, err)

	// Case-insensitive substring city match combined with a price cap.
	results, err := f.uc.Search(ctx, domain.Filter{City: "johan", MaxPrice: 200000})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Johannesburg", results[0].City)
}

func TestSearchBedroomsMeansAtLeast(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	draft := validDraft()
	draft.Bedrooms = 3
	_, err := f.uc.Create(ctx, agentActor(), draft)
	require.NoError(t, err)

	results, err := f.uc.Search(ctx, domain.Filter{Bedrooms: 2})
	require.NoError(t, err)
	assert.Len(t, results, 1, "bedrooms=2 must include a 3-bedroom listing")

	results, err = f.uc.Search(ctx, domain.Filter{Bedrooms: 4})
	require.NoError(t, err)
	assert.Empty(t, results, "bedrooms=4 must exclude a 3-bedroom listing")
}

func TestSearchExcludesDeactivated(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	property, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)

	admin := domain.Actor{UserID: adminID, Role: domain.RoleSuperAdmin}
	require.NoError(t, f.uc.SetActive(ctx, admin, property.ID, false))

	results, err := f.uc.Search(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, results)

	// The administrative view still sees it.
	all, err := f.uc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMyListingsReturnsOnlyOwnProperties(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, domain.Actor{UserID: otherAgentID, Role: domain.RoleAgent}, validDraft())
	require.NoError(t, err)

	mine, err := f.uc.MyListings(ctx, agentActor())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	for _, p := range mine {
		assert.Equal(t, agentID, p.AgentID)
	}

	_, err = f.uc.MyListings(ctx, domain.Actor{UserID: clientID, Role: domain.RoleClient})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetByIDDistinguishesInvalidFromMissing(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	_, err := f.uc.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.uc.GetByID(ctx, "6650f0a1b2c3d4e5f6a7b8ff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByIDUsesCache(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	property, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)

	fetched, err := f.uc.GetByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, fetched.ID)

	// Second read is served from cache even when the store goes away.
	f.repo.failAll = true
	cached, err := f.uc.GetByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, cached.ID)
}

func TestSetActiveIsAdminOnlyAndFlipsFlagOnly(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	property, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)

	err = f.uc.SetActive(ctx, agentActor(), property.ID, false)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	admin := domain.Actor{UserID: adminID, Role: domain.RoleSuperAdmin}
	require.NoError(t, f.uc.SetActive(ctx, admin, property.ID, false))

	stored, err := f.repo.FindByID(ctx, property.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, agentID, stored.AgentID, "ownership must not change")
	assert.Equal(t, property.Title, stored.Title)
	assert.Contains(t, f.cache.deletes, property.ID)
	assert.Equal(t, []string{"agent@example.com"}, f.mailer.deactivated)
}

func TestUpdateRequiresOwnershipUnlessAdmin(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	property, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)

	newTitle := "Renovated family home"
	patch := UpdatePropertyInput{Title: &newTitle}

	_, err = f.uc.Update(ctx, domain.Actor{UserID: otherAgentID, Role: domain.RoleAgent}, property.ID, patch)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err := f.uc.Update(ctx, agentActor(), property.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	adminTitle := "Admin adjusted"
	_, err = f.uc.Update(ctx, domain.Actor{UserID: adminID, Role: domain.RoleSuperAdmin}, property.ID, UpdatePropertyInput{Title: &adminTitle})
	assert.NoError(t, err)
}

func TestDeleteIsOwnerOnlyHardDelete(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()

	property, err := f.uc.Create(ctx, agentActor(), validDraft())
	require.NoError(t, err)

	err = f.uc.Delete(ctx, domain.Actor{UserID: otherAgentID, Role: domain.RoleAgent}, property.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, f.repo.size())

	require.NoError(t, f.uc.Delete(ctx, agentActor(), property.ID))
	assert.Zero(t, f.repo.size())

	_, err = f.uc.GetByID(ctx, property.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchSortsNewestFirst(t *testing.T) {
	repo := newFakePropertyRepo()
	f := newListingFixture()
	f.repo = repo
	f.uc = NewListingUsecase(repo, f.users, f.cache, f.publisher, f.mailer, zap.NewNop())

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		p := &domain.Property{
			Title:       "listing",
			Description: "d",
			Price:       100,
			AgentID:     agentID,
			IsActive:    true,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Insert(context.Background(), p))
	}

	results, err := f.uc.Search(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.False(t, results[i-1].CreatedAt.Before(results[i].CreatedAt))
	}
}
