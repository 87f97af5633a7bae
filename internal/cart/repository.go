package cart

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound     = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not in cart")
)

type Repository interface {
	// GetOrCreate returns the id of the session's cart, creating it if needed.
	GetOrCreate(ctx context.Context, sessionID string) (int, error)
	// Find returns ErrNotFound when the session has no cart.
	Find(ctx context.Context, sessionID string) (int, error)
	Lines(ctx context.Context, cartID int) ([]Line, error)
	// AddQuantity increments the line for serviceItemID, creating it when
	// absent, as a single atomic step.
	AddQuantity(ctx context.Context, cartID, serviceID int, serviceItemID string, qty int) error
	// SetQuantity returns ErrItemNotFound when the line does not exist.
	SetQuantity(ctx context.Context, cartID int, serviceItemID string, qty int) error
	RemoveItem(ctx context.Context, cartID int, serviceItemID string) error
	Clear(ctx context.Context, cartID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	carts  map[string]int
	lines  map[int][]Line
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		carts:  make(map[string]int),
		lines:  make(map[int][]Line),
		nextID: 1,
	}
}

func (r *InMemoryRepository) GetOrCreate(_ context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.carts[sessionID]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.carts[sessionID] = id
	return id, nil
}

func (r *InMemoryRepository) Find(_ context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.carts[sessionID]; ok {
		return id, nil
	}
	return 0, ErrNotFound
}

func (r *InMemoryRepository) Lines(_ context.Context, cartID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Line, len(r.lines[cartID]))
	copy(out, r.lines[cartID])
	return out, nil
}

func (r *InMemoryRepository) AddQuantity(_ context.Context, cartID, serviceID int, serviceItemID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.lines[cartID]
	for i := range lines {
		if lines[i].ServiceItemID == serviceItemID {
			lines[i].Quantity += qty
			return nil
		}
	}
	r.lines[cartID] = append(lines, Line{ServiceItemID: serviceItemID, ServiceID: serviceID, Quantity: qty})
	return nil
}

func (r *InMemoryRepository) SetQuantity(_ context.Context, cartID int, serviceItemID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.lines[cartID]
	for i := range lines {
		if lines[i].ServiceItemID == serviceItemID {
			lines[i].Quantity = qty
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(_ context.Context, cartID int, serviceItemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.lines[cartID]
	kept := lines[:0]
	for _, l := range lines {
		if l.ServiceItemID != serviceItemID {
			kept = append(kept, l)
		}
	}
	r.lines[cartID] = kept
	return nil
}

func (r *InMemoryRepository) Clear(_ context.Context, cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, cartID)
	return nil
}
