package order

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/interface/http/request"
	"github.com/wichananm65/freshora-backend/internal/interface/presenter"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/orders", h.listOrders)
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders/track/:id", h.trackOrder)
	r.Get("/api/orders/:id", h.getOrder)
	r.Put("/api/orders/:id", h.updateOrder)
}

type orderItemRequest struct {
	ID            string `json:"id"`
	ServiceItemID string `json:"serviceItemId" validate:"required_without=ID"`
	Quantity      int    `json:"quantity" validate:"gte=1"`
}

type customerInfoRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required"`
	Address *string `json:"address"`
}

// createOrderRequest ignores any client-supplied total or prices.
type createOrderRequest struct {
	Items               []orderItemRequest  `json:"items" validate:"required,min=1,dive"`
	CustomerInfo        customerInfoRequest `json:"customerInfo"`
	PickupDate          string              `json:"pickupDate"`
	DeliveryDate        string              `json:"deliveryDate"`
	SpecialInstructions *string             `json:"specialInstructions"`
	Notes               *string             `json:"notes"`
}

type updateOrderRequest struct {
	Status       string `json:"status" validate:"required"`
	PickupDate   string `json:"pickupDate"`
	DeliveryDate string `json:"deliveryDate"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	pickup, err := parseDate("pickupDate", req.PickupDate)
	if err != nil {
		return err
	}
	delivery, err := parseDate("deliveryDate", req.DeliveryDate)
	if err != nil {
		return err
	}

	lines := make([]LineInput, len(req.Items))
	for i, it := range req.Items {
		id := it.ServiceItemID
		if id == "" {
			id = it.ID
		}
		lines[i] = LineInput{ServiceItemID: id, Quantity: it.Quantity}
	}

	placed, err := h.service.Create(c.UserContext(), CreateInput{
		Customer: Customer{
			Name:    req.CustomerInfo.Name,
			Email:   req.CustomerInfo.Email,
			Phone:   req.CustomerInfo.Phone,
			Address: req.CustomerInfo.Address,
		},
		Items:               lines,
		PickupDate:          pickup,
		DeliveryDate:        delivery,
		SpecialInstructions: req.SpecialInstructions,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return presenter.Created(c, placed, "Order placed successfully! Check your email for tracking information.")
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("limit must be a number", apperr.FieldError{Field: "limit", Message: "limit must be a number"})
		}
		limit = n
	}

	orders, err := h.service.List(c.UserContext(), ListInput{
		Status:        c.Query("status"),
		CustomerEmail: c.Query("customerEmail"),
		Limit:         limit,
	})
	if err != nil {
		return err
	}
	return presenter.OK(c, orders, "")
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return presenter.OK(c, o, "")
}

func (h *Handler) trackOrder(c *fiber.Ctx) error {
	t, err := h.service.Track(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return presenter.OK(c, t, "")
}

func (h *Handler) updateOrder(c *fiber.Ctx) error {
	var req updateOrderRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	pickup, err := parseDate("pickupDate", req.PickupDate)
	if err != nil {
		return err
	}
	delivery, err := parseDate("deliveryDate", req.DeliveryDate)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), UpdateInput{
		Status:       req.Status,
		PickupDate:   pickup,
		DeliveryDate: delivery,
	})
	if err != nil {
		return err
	}
	return presenter.OK(c, updated, "Order status updated")
}

// dateLayouts are the accepted ISO-8601 forms. Values without a zone are
// read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate turns an ISO-8601 date or timestamp into a UTC time. An empty
// value yields nil.
func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	msg := field + " must be an ISO-8601 date"
	return nil, apperr.Validation(msg, apperr.FieldError{Field: field, Message: msg})
}
