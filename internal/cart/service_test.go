package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/catalog"
)

func newTestService() (*Service, *InMemoryRepository) {
	store := catalog.NewStore(catalog.NewInMemoryRepository([]catalog.Seed{
		{
			Service: catalog.Service{ID: 1, Slug: "laundry-services", Title: "Regular Laundry Services", Description: "Everyday"},
			Items: []catalog.ServiceItem{
				{ID: "svc-1", Category: "men", Name: "Shirt", Price: 5},
				{ID: "pants", Category: "men", Name: "Pants", Price: 6.5},
			},
		},
	}))
	repo := NewInMemoryRepository()
	return NewService(repo, store), repo
}

func TestAddItem_IncrementsExistingLine(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "s1", "svc-1", 2)
	require.NoError(t, err)
	c, err := s.AddItem(ctx, "s1", "svc-1", 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.TotalItems)
	assert.Equal(t, 25.0, c.TotalPrice)
	assert.Equal(t, "Regular Laundry Services", c.Items[0].ServiceType)

	cartID, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	lines, _ := repo.Lines(ctx, cartID)
	assert.Len(t, lines, 1, "the same item must never produce two rows")
}

func TestAddItem_CombinedIDResolvesToStoredItem(t *testing.T) {
	s, _ := newTestService()
	c, err := s.AddItem(context.Background(), "s1", "1-pants", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "pants", c.Items[0].ID)
	assert.Equal(t, 13.0, c.TotalPrice)
}

func TestAddItem_Validation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.AddItem(ctx, "s1", "svc-1", 0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.AddItem(ctx, "s1", "unknown", 1)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestGet_CreatesEmptyCart(t *testing.T) {
	s, repo := newTestService()
	c, err := s.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, c.SessionID)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalPrice)

	_, err = repo.Find(context.Background(), DefaultSessionID)
	assert.NoError(t, err, "get must create the cart")
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.UpdateQuantity(ctx, "nobody", "svc-1", 2)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "Cart not found")

	_, err = s.AddItem(ctx, "s1", "svc-1", 4)
	require.NoError(t, err)

	c, err := s.UpdateQuantity(ctx, "s1", "svc-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalItems)

	_, err = s.UpdateQuantity(ctx, "s1", "pants", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Item not in cart")

	_, err = s.UpdateQuantity(ctx, "s1", "svc-1", -2)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRemoveItem_Idempotent(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	c, err := s.RemoveItem(ctx, "ghost", "svc-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = s.AddItem(ctx, "s1", "svc-1", 1)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "s1", "pants", 1)
	require.NoError(t, err)

	c, err = s.RemoveItem(ctx, "s1", "svc-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "pants", c.Items[0].ID)

	c, err = s.RemoveItem(ctx, "s1", "svc-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestClear_Idempotent(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	c, err := s.Clear(ctx, "never-seen")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	_, err = s.AddItem(ctx, "s1", "svc-1", 2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		c, err = s.Clear(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, c.Items)
	}

	c, err = s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, c.TotalItems)
}
