package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("service not found")
	ErrDuplicateSlug = errors.New("service slug already exists")
)

type Repository interface {
	ListServices(ctx context.Context) ([]Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (Service, error)
	GetServiceByID(ctx context.Context, id int) (Service, error)
	CreateService(ctx context.Context, s Service) (Service, error)
	// ListItems returns items of one service, or of all services when
	// serviceID is nil.
	ListItems(ctx context.Context, serviceID *int) ([]ServiceItem, error)
	// GetItemsByIDs returns the items that exist among ids; unknown ids are
	// skipped.
	GetItemsByIDs(ctx context.Context, ids []string) ([]ServiceItem, error)
	// CreateItems inserts all items or none.
	CreateItems(ctx context.Context, items []ServiceItem) ([]ServiceItem, error)
	CountServices(ctx context.Context) (int, error)
	// Reset replaces the catalog with the given seed.
	Reset(ctx context.Context, seed []Seed) error
}

// InMemoryRepository is a map-backed Repository for tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	services []Service
	items    []ServiceItem
	nextID   int
	now      func() time.Time
}

func NewInMemoryRepository(seed []Seed) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
	_ = r.Reset(context.Background(), seed)
	return r
}

func (r *InMemoryRepository) ListServices(_ context.Context) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Service, len(r.services))
	copy(out, r.services)
	return out, nil
}

func (r *InMemoryRepository) GetServiceBySlug(_ context.Context, slug string) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return Service{}, ErrNotFound
}

func (r *InMemoryRepository) GetServiceByID(_ context.Context, id int) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serviceByID(id)
}

func (r *InMemoryRepository) serviceByID(id int) (Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, ErrNotFound
}

func (r *InMemoryRepository) CreateService(_ context.Context, s Service) (Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertService(s)
}

func (r *InMemoryRepository) insertService(s Service) (Service, error) {
	for _, existing := range r.services {
		if existing.Slug == s.Slug {
			return Service{}, ErrDuplicateSlug
		}
	}
	if s.ID == 0 {
		s.ID = r.nextID
	}
	if s.ID >= r.nextID {
		r.nextID = s.ID + 1
	}
	now := r.now()
	s.CreatedAt, s.UpdatedAt = now, now
	r.services = append(r.services, s)
	return s, nil
}

func (r *InMemoryRepository) ListItems(_ context.Context, serviceID *int) ([]ServiceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ServiceItem, 0)
	for _, it := range r.items {
		if serviceID != nil && it.ServiceID != *serviceID {
			continue
		}
		out = append(out, r.withTitle(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	return out, nil
}

func (r *InMemoryRepository) GetItemsByIDs(_ context.Context, ids []string) ([]ServiceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]ServiceItem, 0, len(ids))
	for _, it := range r.items {
		if want[it.ID] {
			out = append(out, r.withTitle(it))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) withTitle(it ServiceItem) ServiceItem {
	if s, err := r.serviceByID(it.ServiceID); err == nil {
		it.ServiceTitle = s.Title
	}
	return it
}

func (r *InMemoryRepository) CreateItems(_ context.Context, items []ServiceItem) ([]ServiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range items {
		if _, err := r.serviceByID(it.ServiceID); err != nil {
			return nil, err
		}
	}
	out := make([]ServiceItem, 0, len(items))
	for _, it := range items {
		out = append(out, r.withTitle(r.insertItem(it)))
	}
	return out, nil
}

func (r *InMemoryRepository) insertItem(it ServiceItem) ServiceItem {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Unit == "" {
		it.Unit = DefaultUnit
	}
	now := r.now()
	it.CreatedAt, it.UpdatedAt = now, now
	r.items = append(r.items, it)
	return it
}

func (r *InMemoryRepository) CountServices(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services), nil
}

func (r *InMemoryRepository) Reset(_ context.Context, seed []Seed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.services = nil
	r.items = nil
	r.nextID = 1
	for _, sd := range seed {
		s, err := r.insertService(sd.Service)
		if err != nil {
			return err
		}
		for _, it := range sd.Items {
			it.ServiceID = s.ID
			r.insertItem(it)
		}
	}
	return nil
}
