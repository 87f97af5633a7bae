package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/catalog"
	"github.com/wichananm65/freshora-backend/internal/notify"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ItemResolver looks up catalog items by the ids clients send.
type ItemResolver interface {
	ResolveItems(ctx context.Context, ids []string) (map[string]catalog.ServiceItem, error)
}

type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address *string
}

type LineInput struct {
	ServiceItemID string
	Quantity      int
}

type CreateInput struct {
	Customer            Customer
	Items               []LineInput
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	SpecialInstructions *string
	Notes               *string
}

type UpdateInput struct {
	Status       string
	PickupDate   *time.Time
	DeliveryDate *time.Time
}

type ListInput struct {
	Status        string
	CustomerEmail string
	Limit         int
}

// Placed is an order together with the outcome of its notification.
type Placed struct {
	Order
	EmailSent bool `json:"emailSent"`
}

type Service struct {
	repo     Repository
	catalog  ItemResolver
	notifier notify.Notifier
	newID    func(time.Time) string
	now      func() time.Time
}

func NewService(repo Repository, catalog ItemResolver, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		newID:    NewOrderID,
		now:      time.Now,
	}
}

// WithOrderIDGenerator replaces the public order id generator.
func (s *Service) WithOrderIDGenerator(fn func(time.Time) string) *Service {
	s.newID = fn
	return s
}

// Create validates every line against the catalog, prices the order from
// catalog prices and persists it in one transaction. The confirmation email
// is sent after commit and its failure never fails the order.
func (s *Service) Create(ctx context.Context, in CreateInput) (Placed, error) {
	if err := validateCreate(in); err != nil {
		return Placed{}, err
	}

	ids := make([]string, len(in.Items))
	for i, l := range in.Items {
		ids[i] = strings.TrimSpace(l.ServiceItemID)
	}
	resolved, err := s.catalog.ResolveItems(ctx, ids)
	if err != nil {
		return Placed{}, err
	}

	var (
		missing []string
		fields  []apperr.FieldError
	)
	for i, id := range ids {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id)
			fields = append(fields, apperr.FieldError{
				Field:   fmt.Sprintf("items[%d].serviceItemId", i),
				Message: fmt.Sprintf("Service item '%s' not found", id),
			})
		}
	}
	if len(missing) > 0 {
		return Placed{}, apperr.Validation("Invalid serviceItemIds: "+strings.Join(missing, ", "), fields...)
	}

	total := decimal.Zero
	items := make([]Item, len(in.Items))
	for i, l := range in.Items {
		it := resolved[ids[i]]
		price := decimal.NewFromFloat(it.Price)
		lineTotal := price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		total = total.Add(lineTotal)
		items[i] = Item{
			ServiceID:     it.ServiceID,
			ServiceItemID: it.ID,
			Name:          it.Name,
			Category:      it.Category,
			ServiceType:   it.ServiceTitle,
			Quantity:      l.Quantity,
			Price:         it.Price,
			TotalPrice:    lineTotal.InexactFloat64(),
		}
	}

	o := Order{
		OrderID:             s.newID(s.now()),
		CustomerName:        strings.TrimSpace(in.Customer.Name),
		CustomerEmail:       strings.TrimSpace(in.Customer.Email),
		CustomerPhone:       strings.TrimSpace(in.Customer.Phone),
		CustomerAddress:     in.Customer.Address,
		TotalAmount:         total.Round(2).InexactFloat64(),
		Status:              StatusPending,
		PickupDate:          in.PickupDate,
		DeliveryDate:        in.DeliveryDate,
		SpecialInstructions: in.SpecialInstructions,
		Notes:               in.Notes,
		Items:               items,
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Placed{}, apperr.Internal("Failed to create order", err)
	}

	res := s.notifier.SendOrderConfirmation(ctx, Summary(created))
	if !res.Success {
		log.Printf("warning: confirmation email for order %s failed: %s", created.OrderID, res.Error)
	}
	return Placed{Order: created, EmailSent: res.Success}, nil
}

// Get resolves ref as a numeric id first and as a public order id otherwise.
func (s *Service) Get(ctx context.Context, ref string) (Order, error) {
	ref = strings.TrimSpace(ref)
	var (
		o   Order
		err error
	)
	if id, convErr := strconv.Atoi(ref); convErr == nil {
		o, err = s.repo.GetByID(ctx, id)
	} else {
		o, err = s.repo.GetByOrderID(ctx, strings.ToUpper(ref))
	}
	if errors.Is(err, ErrNotFound) {
		return Order{}, apperr.NotFound("Order not found")
	}
	if err != nil {
		return Order{}, apperr.Internal("Failed to fetch order", err)
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, in ListInput) ([]Order, error) {
	f := Filter{CustomerEmail: strings.TrimSpace(in.CustomerEmail), Limit: in.Limit}
	if strings.TrimSpace(in.Status) != "" {
		st, ok := ParseStatus(in.Status)
		if !ok {
			return nil, invalidStatus("Invalid status filter")
		}
		f.Status = st
	}
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}

	orders, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

// UpdateStatus moves the order to a new status. A notification is sent only
// when the status actually changes.
func (s *Service) UpdateStatus(ctx context.Context, ref string, in UpdateInput) (Placed, error) {
	st, ok := ParseStatus(in.Status)
	if !ok {
		return Placed{}, invalidStatus("Invalid status")
	}
	existing, err := s.Get(ctx, ref)
	if err != nil {
		return Placed{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, existing.ID, st, in.PickupDate, in.DeliveryDate)
	if errors.Is(err, ErrNotFound) {
		return Placed{}, apperr.NotFound("Order not found")
	}
	if err != nil {
		return Placed{}, apperr.Internal("Failed to update order", err)
	}

	if existing.Status == st {
		return Placed{Order: updated}, nil
	}
	res := s.notifier.SendStatusUpdate(ctx, Summary(updated), st)
	if !res.Success {
		log.Printf("warning: status email for order %s failed: %s", updated.OrderID, res.Error)
	}
	return Placed{Order: updated, EmailSent: res.Success}, nil
}

func (s *Service) Track(ctx context.Context, ref string) (Tracking, error) {
	o, err := s.Get(ctx, ref)
	if err != nil {
		return Tracking{}, err
	}
	return BuildTracking(o), nil
}

// Summary converts o to the shape notifiers render.
func Summary(o Order) notify.OrderSummary {
	items := make([]notify.ItemSummary, len(o.Items))
	for i, it := range o.Items {
		items[i] = notify.ItemSummary{
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: it.TotalPrice,
		}
	}
	return notify.OrderSummary{
		ID:            o.ID,
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PickupDate:    o.PickupDate,
		DeliveryDate:  o.DeliveryDate,
		Items:         items,
	}
}

var emailValidator = validator.New()

func validateCreate(in CreateInput) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(in.Customer.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "customerInfo.name", Message: "customerInfo.name is required"})
	}
	if email := strings.TrimSpace(in.Customer.Email); email == "" {
		fields = append(fields, apperr.FieldError{Field: "customerInfo.email", Message: "customerInfo.email is required"})
	} else if emailValidator.Var(email, "email") != nil {
		fields = append(fields, apperr.FieldError{Field: "customerInfo.email", Message: "customerInfo.email must be a valid email"})
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		fields = append(fields, apperr.FieldError{Field: "customerInfo.phone", Message: "customerInfo.phone is required"})
	}
	if len(in.Items) == 0 {
		fields = append(fields, apperr.FieldError{Field: "items", Message: "items must contain at least 1 item(s)"})
	}
	for i, l := range in.Items {
		if strings.TrimSpace(l.ServiceItemID) == "" {
			fields = append(fields, apperr.FieldError{Field: fmt.Sprintf("items[%d].serviceItemId", i), Message: fmt.Sprintf("items[%d].serviceItemId is required", i)})
		}
		if l.Quantity < 1 {
			fields = append(fields, apperr.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: fmt.Sprintf("items[%d].quantity must be >= 1", i)})
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields[0].Message, fields...)
	}
	return nil
}

func invalidStatus(msg string) error {
	return apperr.Validation(msg, apperr.FieldError{
		Field:   "status",
		Message: "status must be one of: " + strings.Join(Statuses(), ", "),
	})
}
