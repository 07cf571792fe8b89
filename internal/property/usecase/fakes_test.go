package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/estatehub/marketplace/internal/property/domain"
)

// In-memory doubles for the repository interfaces. The favorite fake
// mirrors the storage guarantee the Mongo adapter gets from its unique
// index: one mutation per toggle, never two rows per pair.

type fakePropertyRepo struct {
	mu       sync.Mutex
	docs     map[string]*domain.Property
	seq      int
	failAll  bool
	failWith error
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{docs: make(map[string]*domain.Property)}
}

func (r *fakePropertyRepo) fail() error {
	if r.failAll {
		if r.failWith != nil {
			return r.failWith
		}
		return errors.New("store unavailable")
	}
	return nil
}

func (r *fakePropertyRepo) Insert(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	r.seq++
	p.ID = fmt.Sprintf("%024x", r.seq)
	clone := *p
	r.docs[p.ID] = &clone
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	if _, ok := r.docs[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	clone := *p
	r.docs[p.ID] = &clone
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	if _, ok := r.docs[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *doc
	return &clone, nil
}

func (r *fakePropertyRepo) FindByFilter(_ context.Context, filter domain.Filter) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	var out []*domain.Property
	for _, doc := range r.docs {
		if doc.IsActive && filter.Matches(doc) {
			clone := *doc
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePropertyRepo) FindByAgentID(_ context.Context, agentID string) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	var out []*domain.Property
	for _, doc := range r.docs {
		if doc.AgentID == agentID {
			clone := *doc
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePropertyRepo) FindAll(_ context.Context) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return nil, err
	}
	var out []*domain.Property
	for _, doc := range r.docs {
		clone := *doc
		out = append(out, &clone)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *fakePropertyRepo) SetActive(_ context.Context, id string, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(); err != nil {
		return err
	}
	doc, ok := r.docs[id]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	doc.IsActive = isActive
	return nil
}

func (r *fakePropertyRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *fakePropertyRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, doc := range r.docs {
		if doc.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakePropertyRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func sortNewestFirst(properties []*domain.Property) {
	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})
}

type fakeFavoriteRepo struct {
	mu    sync.Mutex
	pairs map[string]*domain.Favorite
	seq   int
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{pairs: make(map[string]*domain.Favorite)}
}

func pairKey(userID, propertyID string) string {
	return userID + "/" + propertyID
}

func (r *fakeFavoriteRepo) Toggle(_ context.Context, userID, propertyID string) (domain.ToggleState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(userID, propertyID)
	if _, ok := r.pairs[key]; ok {
		delete(r.pairs, key)
		return domain.ToggleRemoved, nil
	}
	r.seq++
	r.pairs[key] = &domain.Favorite{
		ID:         fmt.Sprintf("%024x", r.seq),
		UserID:     userID,
		PropertyID: propertyID,
	}
	return domain.ToggleAdded, nil
}

func (r *fakeFavoriteRepo) FindByUserID(_ context.Context, userID string) ([]*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Favorite
	for _, f := range r.pairs {
		if f.UserID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.pairs)), nil
}

func (r *fakeFavoriteRepo) rowsFor(userID, propertyID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pairs[pairKey(userID, propertyID)]; ok {
		return 1
	}
	return 0
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Property
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Property)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*domain.Property, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[id], nil
}

func (c *fakeCache) Set(_ context.Context, p *domain.Property) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.ID] = p
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.deletes = append(c.deletes, id)
	return nil
}

type publishedEvent struct {
	Subject string
	Payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Subject: subject, Payload: payload})
	return nil
}

func (p *fakePublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}

type fakeMailer struct {
	created     []string
	deactivated []string
}

func (m *fakeMailer) SendListingCreated(toEmail, title string) error {
	m.created = append(m.created, toEmail)
	return nil
}

func (m *fakeMailer) SendListingDeactivated(toEmail, title string) error {
	m.deactivated = append(m.deactivated, toEmail)
	return nil
}
