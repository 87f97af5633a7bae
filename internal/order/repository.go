package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Filter narrows List. Zero values match everything.
type Filter struct {
	Status        string
	CustomerEmail string
	Limit         int
}

type Repository interface {
	// Create persists o and its items atomically and returns the stored
	// order with generated ids and timestamps.
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id int) (Order, error)
	GetByOrderID(ctx context.Context, orderID string) (Order, error)
	// List returns orders newest first.
	List(ctx context.Context, f Filter) ([]Order, error)
	// UpdateStatus sets status and, when non-nil, the pickup and delivery
	// dates.
	UpdateStatus(ctx context.Context, id int, status string, pickup, delivery *time.Time) (Order, error)
}

type InMemoryRepository struct {
	mu         sync.RWMutex
	orders     []Order
	nextID     int
	nextItemID int
	now        func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, nextItemID: 1, now: time.Now}
}

func (r *InMemoryRepository) Create(ctx context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	o.ID = r.nextID
	r.nextID++
	o.CreatedAt, o.UpdatedAt = now, now
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		it.ID = r.nextItemID
		r.nextItemID++
		items[i] = it
	}
	o.Items = items
	r.orders = append(r.orders, o)
	return clone(o), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return clone(o), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) GetByOrderID(ctx context.Context, orderID string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.OrderID == orderID {
			return clone(o), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(ctx context.Context, f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerEmail != "" && !strings.EqualFold(o.CustomerEmail, f.CustomerEmail) {
			continue
		}
		out = append(out, clone(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int, status string, pickup, delivery *time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		r.orders[i].Status = status
		if pickup != nil {
			r.orders[i].PickupDate = pickup
		}
		if delivery != nil {
			r.orders[i].DeliveryDate = delivery
		}
		r.orders[i].UpdatedAt = r.now().UTC()
		return clone(r.orders[i]), nil
	}
	return Order{}, ErrNotFound
}

func clone(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
