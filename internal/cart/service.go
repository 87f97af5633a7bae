package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/catalog"
)

// ItemResolver reads service items from the catalog.
type ItemResolver interface {
	GetItem(ctx context.Context, id string) (catalog.ServiceItem, error)
	ResolveItems(ctx context.Context, ids []string) (map[string]catalog.ServiceItem, error)
}

// Service orchestrates cart operations for one session at a time.
type Service struct {
	repo    Repository
	catalog ItemResolver
}

func NewService(repo Repository, catalog ItemResolver) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func normalizeSession(sessionID string) string {
	if s := strings.TrimSpace(sessionID); s != "" {
		return s
	}
	return DefaultSessionID
}

func validateQuantity(qty int) error {
	if qty < 1 {
		return apperr.Validation("Quantity must be >= 1", apperr.FieldError{Field: "quantity", Message: "quantity must be >= 1"})
	}
	return nil
}

// Get returns the session's cart, creating an empty one when none exists.
func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	sessionID = normalizeSession(sessionID)
	cartID, err := s.repo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return Cart{}, apperr.Internal("Failed to fetch cart", err)
	}
	return s.view(ctx, sessionID, cartID, "Failed to fetch cart")
}

// AddItem adds qty of the item to the cart, incrementing an existing line.
func (s *Service) AddItem(ctx context.Context, sessionID, itemID string, qty int) (Cart, error) {
	if err := validateQuantity(qty); err != nil {
		return Cart{}, err
	}
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return Cart{}, err
	}

	sessionID = normalizeSession(sessionID)
	cartID, err := s.repo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return Cart{}, apperr.Internal("Failed to add item to cart", err)
	}
	if err := s.repo.AddQuantity(ctx, cartID, item.ServiceID, item.ID, qty); err != nil {
		return Cart{}, apperr.Internal("Failed to add item to cart", err)
	}
	return s.view(ctx, sessionID, cartID, "Failed to add item to cart")
}

// UpdateQuantity sets the absolute quantity of an existing line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, qty int) (Cart, error) {
	if err := validateQuantity(qty); err != nil {
		return Cart{}, err
	}

	sessionID = normalizeSession(sessionID)
	cartID, err := s.repo.Find(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return Cart{}, apperr.NotFound("Cart not found")
	}
	if err != nil {
		return Cart{}, apperr.Internal("Failed to update cart item", err)
	}

	itemID, err = s.canonicalID(ctx, itemID)
	if err != nil {
		return Cart{}, err
	}
	err = s.repo.SetQuantity(ctx, cartID, itemID, qty)
	if errors.Is(err, ErrItemNotFound) {
		return Cart{}, apperr.NotFound("Item not in cart")
	}
	if err != nil {
		return Cart{}, apperr.Internal("Failed to update cart item", err)
	}
	return s.view(ctx, sessionID, cartID, "Failed to update cart item")
}

// RemoveItem deletes the line for itemID. Removing an absent line, or from
// an absent cart, succeeds.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (Cart, error) {
	sessionID = normalizeSession(sessionID)
	cartID, err := s.repo.Find(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return emptyCart(sessionID), nil
	}
	if err != nil {
		return Cart{}, apperr.Internal("Failed to remove item", err)
	}

	itemID, err = s.canonicalID(ctx, itemID)
	if err != nil {
		return Cart{}, err
	}
	if err := s.repo.RemoveItem(ctx, cartID, itemID); err != nil {
		return Cart{}, apperr.Internal("Failed to remove item", err)
	}
	return s.view(ctx, sessionID, cartID, "Failed to remove item")
}

// Clear deletes every line. It is a no-op when the cart does not exist.
func (s *Service) Clear(ctx context.Context, sessionID string) (Cart, error) {
	sessionID = normalizeSession(sessionID)
	cartID, err := s.repo.Find(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return emptyCart(sessionID), nil
	}
	if err != nil {
		return Cart{}, apperr.Internal("Failed to clear cart", err)
	}
	if err := s.repo.Clear(ctx, cartID); err != nil {
		return Cart{}, apperr.Internal("Failed to clear cart", err)
	}
	return emptyCart(sessionID), nil
}

// canonicalID maps a possibly combined item id to the stored one. Unknown ids
// are returned unchanged so stale lines can still be addressed.
func (s *Service) canonicalID(ctx context.Context, itemID string) (string, error) {
	found, err := s.catalog.ResolveItems(ctx, []string{itemID})
	if err != nil {
		return "", err
	}
	if it, ok := found[itemID]; ok {
		return it.ID, nil
	}
	return itemID, nil
}

func (s *Service) view(ctx context.Context, sessionID string, cartID int, failMsg string) (Cart, error) {
	lines, err := s.repo.Lines(ctx, cartID)
	if err != nil {
		return Cart{}, apperr.Internal(failMsg, err)
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ServiceItemID)
	}
	resolved, err := s.catalog.ResolveItems(ctx, ids)
	if err != nil {
		return Cart{}, err
	}

	out := emptyCart(sessionID)
	total := decimal.Zero
	for _, l := range lines {
		it, ok := resolved[l.ServiceItemID]
		if !ok {
			continue
		}
		out.Items = append(out.Items, Item{
			ID:            it.ID,
			ServiceItemID: it.ID,
			ServiceID:     l.ServiceID,
			Name:          it.Name,
			Category:      it.Category,
			ServiceType:   it.ServiceTitle,
			Price:         it.Price,
			Quantity:      l.Quantity,
		})
		out.TotalItems += l.Quantity
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	out.TotalPrice = total.Round(2).InexactFloat64()
	return out, nil
}

func emptyCart(sessionID string) Cart {
	return Cart{SessionID: sessionID, Items: []Item{}}
}
