package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/interface/http/request"
	"github.com/wichananm65/freshora-backend/internal/interface/presenter"
)

// Handler exposes the session cart over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/cart", h.getCart)
	r.Post("/api/cart", h.addItem)
	r.Put("/api/cart/:itemId", h.updateItem)
	r.Delete("/api/cart/:itemId", h.removeItem)
	r.Delete("/api/cart", h.clearCart)
}

type addItemRequest struct {
	Item struct {
		ID       string   `json:"id" validate:"required"`
		Name     string   `json:"name" validate:"required"`
		Price    *float64 `json:"price" validate:"required,gte=0"`
		Quantity *int     `json:"quantity" validate:"omitempty,gte=1"`
	} `json:"item"`
	SessionID string `json:"sessionId"`
}

type updateItemRequest struct {
	Quantity  *int   `json:"quantity" validate:"required,gte=1"`
	SessionID string `json:"sessionId"`
}

// sessionID prefers the body value, then the query string.
func sessionID(c *fiber.Ctx, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return c.Query("sessionId", DefaultSessionID)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.UserContext(), sessionID(c, ""))
	if err != nil {
		return err
	}
	return presenter.OK(c, cart, "")
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	qty := 1
	if req.Item.Quantity != nil {
		qty = *req.Item.Quantity
	}

	cart, err := h.service.AddItem(c.UserContext(), sessionID(c, req.SessionID), req.Item.ID, qty)
	if err != nil {
		return err
	}
	return presenter.OK(c, cart, "Item added to cart")
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	cart, err := h.service.UpdateQuantity(c.UserContext(), sessionID(c, req.SessionID), c.Params("itemId"), *req.Quantity)
	if err != nil {
		return err
	}
	return presenter.OK(c, cart, "Cart item updated")
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), sessionID(c, ""), c.Params("itemId"))
	if err != nil {
		return err
	}
	return presenter.OK(c, cart, "Item removed from cart")
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	cart, err := h.service.Clear(c.UserContext(), sessionID(c, ""))
	if err != nil {
		return err
	}
	return presenter.OK(c, cart, "Cart cleared")
}
