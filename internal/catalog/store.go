package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/wichananm65/freshora-backend/internal/apperr"
)

// Store is the catalog business layer. Cart and order services read items
// through it.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

type CreateServiceInput struct {
	Slug            string
	Title           string
	Description     string
	FullDescription *string
	Rating          *int
	Reviews         *int
	Duration        *string
	Image           *string
}

type ItemInput struct {
	ID          string
	Category    string
	Name        string
	Description *string
	Price       float64
	Unit        string
	Image       *string
}

func (s *Store) ListServices(ctx context.Context) ([]ServiceView, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch services", err)
	}
	items, err := s.repo.ListItems(ctx, nil)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch services", err)
	}

	byService := make(map[int][]ServiceItem)
	for _, it := range items {
		byService[it.ServiceID] = append(byService[it.ServiceID], it)
	}
	out := make([]ServiceView, 0, len(services))
	for _, svc := range services {
		out = append(out, ServiceView{Service: svc, Items: groupItems(byService[svc.ID])})
	}
	return out, nil
}

func (s *Store) GetService(ctx context.Context, slug string) (ServiceView, error) {
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return ServiceView{}, err
	}
	items, err := s.repo.ListItems(ctx, &svc.ID)
	if err != nil {
		return ServiceView{}, apperr.Internal("Failed to fetch service", err)
	}
	return ServiceView{Service: svc, Items: groupItems(items)}, nil
}

func (s *Store) serviceBySlug(ctx context.Context, slug string) (Service, error) {
	svc, err := s.repo.GetServiceBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return Service{}, apperr.NotFound("Service not found")
	}
	if err != nil {
		return Service{}, apperr.Internal("Failed to fetch service", err)
	}
	return svc, nil
}

// CreateService applies the catalog defaults: fullDescription falls back to
// description, rating to 5, reviews to 0 and duration to "24-48 hours".
func (s *Store) CreateService(ctx context.Context, in CreateServiceInput) (Service, error) {
	svc := Service{
		Slug:            strings.TrimSpace(in.Slug),
		Title:           in.Title,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		Rating:          in.Rating,
		Reviews:         in.Reviews,
		Duration:        in.Duration,
		Image:           in.Image,
	}
	if svc.FullDescription == nil || *svc.FullDescription == "" {
		svc.FullDescription = ptrString(in.Description)
	}
	if svc.Rating == nil || *svc.Rating == 0 {
		svc.Rating = ptrInt(5)
	}
	if svc.Reviews == nil {
		svc.Reviews = ptrInt(0)
	}
	if svc.Duration == nil || *svc.Duration == "" {
		svc.Duration = ptrString("24-48 hours")
	}

	created, err := s.repo.CreateService(ctx, svc)
	if errors.Is(err, ErrDuplicateSlug) {
		return Service{}, apperr.Conflict(fmt.Sprintf("Service with slug '%s' already exists", svc.Slug))
	}
	if err != nil {
		return Service{}, apperr.Internal("Failed to create service", err)
	}
	return created, nil
}

func (s *Store) AddItemToService(ctx context.Context, slug string, in ItemInput) (ServiceItem, error) {
	svc, err := s.serviceBySlug(ctx, slug)
	if err != nil {
		return ServiceItem{}, err
	}
	items, err := s.createItems(ctx, svc.ID, []ItemInput{in})
	if err != nil {
		return ServiceItem{}, err
	}
	return items[0], nil
}

// ListItems returns NotFound when no item matches, as the items endpoint
// has always done.
func (s *Store) ListItems(ctx context.Context, serviceID *int) ([]ServiceItem, error) {
	items, err := s.repo.ListItems(ctx, serviceID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch items", err)
	}
	if len(items) == 0 {
		return nil, apperr.NotFound("No items found")
	}
	return items, nil
}

func (s *Store) CreateItems(ctx context.Context, serviceID int, in []ItemInput) ([]ServiceItem, error) {
	if _, err := s.repo.GetServiceByID(ctx, serviceID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Service not found")
		}
		return nil, apperr.Internal("Failed to add item", err)
	}
	return s.createItems(ctx, serviceID, in)
}

func (s *Store) createItems(ctx context.Context, serviceID int, in []ItemInput) ([]ServiceItem, error) {
	items := make([]ServiceItem, 0, len(in))
	for _, it := range in {
		items = append(items, ServiceItem{
			ID:          strings.TrimSpace(it.ID),
			ServiceID:   serviceID,
			Category:    it.Category,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Unit:        it.Unit,
			Image:       it.Image,
		})
	}
	created, err := s.repo.CreateItems(ctx, items)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Service not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to add item", err)
	}
	return created, nil
}

// GetItem resolves one item id, accepting the combined
// "<serviceId>-<serviceItemId>" form.
func (s *Store) GetItem(ctx context.Context, id string) (ServiceItem, error) {
	found, err := s.ResolveItems(ctx, []string{id})
	if err != nil {
		return ServiceItem{}, err
	}
	it, ok := found[id]
	if !ok {
		return ServiceItem{}, apperr.NotFound("Service item not found")
	}
	return it, nil
}

// ResolveItems looks up ids and returns the found items keyed by the id as
// requested. An id that does not exist as given but has the combined form
// "<digits>-<rest>" is retried as "<rest>". Missing ids are absent from the
// map.
func (s *Store) ResolveItems(ctx context.Context, ids []string) (map[string]ServiceItem, error) {
	found := make(map[string]ServiceItem, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	items, err := s.repo.GetItemsByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch service items", err)
	}
	byID := indexItems(items)

	fallback := map[string]string{}
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			found[id] = it
			continue
		}
		if rest, ok := stripServicePrefix(id); ok {
			fallback[id] = rest
		}
	}
	if len(fallback) == 0 {
		return found, nil
	}

	retry := make([]string, 0, len(fallback))
	for _, rest := range fallback {
		retry = append(retry, rest)
	}
	items, err = s.repo.GetItemsByIDs(ctx, uniq(retry))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch service items", err)
	}
	byID = indexItems(items)
	for id, rest := range fallback {
		if it, ok := byID[rest]; ok {
			found[id] = it
		}
	}
	return found, nil
}

// SeedIfEmpty writes the default catalog when no service exists yet.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.repo.CountServices(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.repo.Reset(ctx, DefaultSeed()); err != nil {
		return false, err
	}
	log.Printf("seeded catalog with %d services", len(DefaultSeed()))
	return true, nil
}

// Reset replaces the catalog with seed. Cart lines for removed items go with
// them.
func (s *Store) Reset(ctx context.Context, seed []Seed) error {
	if err := s.repo.Reset(ctx, seed); err != nil {
		return apperr.Internal("Failed to reset catalog", err)
	}
	return nil
}

func stripServicePrefix(id string) (string, bool) {
	i := strings.IndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", false
	}
	for _, r := range id[:i] {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id[i+1:], true
}

func indexItems(items []ServiceItem) map[string]ServiceItem {
	out := make(map[string]ServiceItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
