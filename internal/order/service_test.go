package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/catalog"
	"github.com/wichananm65/freshora-backend/internal/notify"
)

type recordingNotifier struct {
	confirmations []notify.OrderSummary
	updates       []string
	fail          bool
}

func (n *recordingNotifier) result() notify.Result {
	if n.fail {
		return notify.Result{Success: false, Error: "smtp unavailable"}
	}
	return notify.Result{Success: true, MessageID: "msg-1"}
}

func (n *recordingNotifier) SendOrderConfirmation(_ context.Context, o notify.OrderSummary) notify.Result {
	n.confirmations = append(n.confirmations, o)
	return n.result()
}

func (n *recordingNotifier) SendStatusUpdate(_ context.Context, _ notify.OrderSummary, status string) notify.Result {
	n.updates = append(n.updates, status)
	return n.result()
}

func testStore() *catalog.Store {
	return catalog.NewStore(catalog.NewInMemoryRepository([]catalog.Seed{
		{
			Service: catalog.Service{ID: 1, Slug: "laundry-services", Title: "Regular Laundry Services", Description: "Everyday"},
			Items: []catalog.ServiceItem{
				{ID: "shirt", Category: "men", Name: "Shirt", Price: 10},
				{ID: "pants", Category: "men", Name: "Pants", Price: 5},
			},
		},
	}))
}

func newTestService() (*Service, *InMemoryRepository, *recordingNotifier) {
	repo := NewInMemoryRepository()
	n := &recordingNotifier{}
	s := NewService(repo, testStore(), n).WithOrderIDGenerator(func(time.Time) string { return "ORD-TEST-000001" })
	return s, repo, n
}

func validInput(lines ...LineInput) CreateInput {
	return CreateInput{
		Customer: Customer{Name: "Ada", Email: "ada@example.com", Phone: "555-0100"},
		Items:    lines,
	}
}

func TestCreate_PricesFromCatalog(t *testing.T) {
	s, _, n := newTestService()

	placed, err := s.Create(context.Background(), validInput(
		LineInput{ServiceItemID: "shirt", Quantity: 2},
		LineInput{ServiceItemID: "1-pants", Quantity: 3},
	))
	require.NoError(t, err)

	assert.Equal(t, "ORD-TEST-000001", placed.OrderID)
	assert.Equal(t, StatusPending, placed.Status)
	assert.Equal(t, 35.0, placed.TotalAmount)
	require.Len(t, placed.Items, 2)
	assert.Equal(t, "pants", placed.Items[1].ServiceItemID)
	assert.Equal(t, 15.0, placed.Items[1].TotalPrice)
	assert.Equal(t, "Regular Laundry Services", placed.Items[0].ServiceType)
	assert.True(t, placed.EmailSent)
	require.Len(t, n.confirmations, 1)
	assert.Equal(t, "ada@example.com", n.confirmations[0].CustomerEmail)
}

func TestCreate_InvalidItemsPersistNothing(t *testing.T) {
	s, repo, n := newTestService()

	_, err := s.Create(context.Background(), validInput(
		LineInput{ServiceItemID: "shirt", Quantity: 1},
		LineInput{ServiceItemID: "ghost", Quantity: 1},
		LineInput{ServiceItemID: "phantom", Quantity: 2},
	))
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid serviceItemIds: ghost, phantom", appErr.Message)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "items[1].serviceItemId", appErr.Fields[0].Field)

	orders, _ := repo.List(context.Background(), Filter{})
	assert.Empty(t, orders)
	assert.Empty(t, n.confirmations)
}

func TestCreate_RequiresCustomerAndQuantity(t *testing.T) {
	s, _, _ := newTestService()

	_, err := s.Create(context.Background(), CreateInput{Items: []LineInput{{ServiceItemID: "shirt"}}})
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 4)

	_, err = s.Create(context.Background(), validInput())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreate_RejectsMalformedEmail(t *testing.T) {
	s, repo, n := newTestService()

	in := validInput(LineInput{ServiceItemID: "shirt", Quantity: 1})
	in.Customer.Email = "ada-at-example"
	_, err := s.Create(context.Background(), in)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "customerInfo.email", appErr.Fields[0].Field)
	assert.Equal(t, "customerInfo.email must be a valid email", appErr.Message)

	orders, _ := repo.List(context.Background(), Filter{})
	assert.Empty(t, orders)
	assert.Empty(t, n.confirmations)
}

func TestCreate_NotifierFailureKeepsOrder(t *testing.T) {
	s, repo, n := newTestService()
	n.fail = true

	placed, err := s.Create(context.Background(), validInput(LineInput{ServiceItemID: "shirt", Quantity: 1}))
	require.NoError(t, err)
	assert.False(t, placed.EmailSent)

	stored, err := repo.GetByID(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, stored.OrderID)
}

func TestGet_ByIDAndOrderID(t *testing.T) {
	s, _, _ := newTestService()
	ctx := context.Background()
	placed, err := s.Create(ctx, validInput(LineInput{ServiceItemID: "shirt", Quantity: 1}))
	require.NoError(t, err)

	byID, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, byID.OrderID)

	byRef, err := s.Get(ctx, "ord-test-000001")
	require.NoError(t, err)
	assert.Equal(t, placed.ID, byRef.ID)

	_, err = s.Get(ctx, "ORD-NOPE")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestList_FiltersAndLimits(t *testing.T) {
	s, repo, _ := newTestService()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, validInput(LineInput{ServiceItemID: "shirt", Quantity: 1}))
		require.NoError(t, err)
	}
	_, err := repo.UpdateStatus(ctx, 2, StatusConfirmed, nil, nil)
	require.NoError(t, err)

	all, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].ID, "newest first")

	confirmed, err := s.List(ctx, ListInput{Status: "CONFIRMED"})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, 2, confirmed[0].ID)

	limited, err := s.List(ctx, ListInput{Limit: 1, CustomerEmail: "ADA@example.com"})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = s.List(ctx, ListInput{Status: "lost"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestUpdateStatus(t *testing.T) {
	s, _, n := newTestService()
	ctx := context.Background()
	placed, err := s.Create(ctx, validInput(LineInput{ServiceItemID: "shirt", Quantity: 1}))
	require.NoError(t, err)

	pickup := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateStatus(ctx, placed.OrderID, UpdateInput{Status: " Processing ", PickupDate: &pickup})
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, updated.Status)
	require.NotNil(t, updated.PickupDate)
	assert.True(t, pickup.Equal(*updated.PickupDate))
	assert.True(t, updated.EmailSent)
	assert.Equal(t, []string{StatusProcessing}, n.updates)

	again, err := s.UpdateStatus(ctx, placed.OrderID, UpdateInput{Status: StatusProcessing})
	require.NoError(t, err)
	assert.False(t, again.EmailSent)
	assert.Len(t, n.updates, 1, "unchanged status must not notify")

	_, err = s.UpdateStatus(ctx, placed.OrderID, UpdateInput{Status: "shipped"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.UpdateStatus(ctx, "999", UpdateInput{Status: StatusConfirmed})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
