package catalog

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/apperr"
	"github.com/wichananm65/freshora-backend/internal/interface/http/request"
	"github.com/wichananm65/freshora-backend/internal/interface/presenter"
)

type Handler struct {
	store      *Store
	allowReset bool
}

// NewHandler builds the catalog handler. allowReset enables the dev-only
// catalog reset endpoint.
func NewHandler(store *Store, allowReset bool) *Handler {
	return &Handler{store: store, allowReset: allowReset}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/services", h.listServices)
	r.Post("/api/services", h.createService)
	r.Get("/api/services/:slug", h.getService)
	r.Post("/api/services/:slug/items", h.addServiceItem)

	r.Get("/api/items", h.listItems)
	r.Post("/api/items", h.createItem)
	r.Put("/api/items/bulk", h.bulkCreateItems)

	r.Post("/dev/reset-catalog", h.resetCatalog)
}

type createServiceRequest struct {
	Slug            string  `json:"slug" validate:"required"`
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	FullDescription *string `json:"fullDescription"`
	Rating          *int    `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews         *int    `json:"reviews" validate:"omitempty,gte=0"`
	Duration        *string `json:"duration"`
	Image           *string `json:"image"`
}

type itemRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Description *string `json:"description"`
	Unit        string  `json:"unit"`
	Image       *string `json:"image"`
}

func (r itemRequest) input() ItemInput {
	return ItemInput{
		ID:          r.ID,
		Category:    r.Category,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Unit:        r.Unit,
		Image:       r.Image,
	}
}

type createItemRequest struct {
	ServiceID   int     `json:"serviceId" validate:"required"`
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Description *string `json:"description"`
	Unit        string  `json:"unit"`
	Image       *string `json:"image"`
}

type bulkItemsRequest struct {
	ServiceID int           `json:"serviceId" validate:"required"`
	Items     []itemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) listServices(c *fiber.Ctx) error {
	services, err := h.store.ListServices(c.UserContext())
	if err != nil {
		return err
	}
	return presenter.OK(c, services, "")
}

func (h *Handler) getService(c *fiber.Ctx) error {
	svc, err := h.store.GetService(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return presenter.OK(c, svc, "")
}

func (h *Handler) createService(c *fiber.Ctx) error {
	var req createServiceRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	svc, err := h.store.CreateService(c.UserContext(), CreateServiceInput{
		Slug:            req.Slug,
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Rating:          req.Rating,
		Reviews:         req.Reviews,
		Duration:        req.Duration,
		Image:           req.Image,
	})
	if err != nil {
		return err
	}
	return presenter.Created(c, ServiceView{Service: svc, Items: map[string][]ItemView{}}, "Service created successfully")
}

func (h *Handler) addServiceItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	slug := c.Params("slug")
	item, err := h.store.AddItemToService(c.UserContext(), slug, req.input())
	if err != nil {
		return err
	}
	return presenter.Created(c, item, fmt.Sprintf("Item added successfully to service '%s'", slug))
}

func (h *Handler) listItems(c *fiber.Ctx) error {
	var serviceID *int
	if raw := c.Query("serviceId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("serviceId must be an integer", apperr.FieldError{Field: "serviceId", Message: "serviceId must be an integer"})
		}
		serviceID = &id
	}
	items, err := h.store.ListItems(c.UserContext(), serviceID)
	if err != nil {
		return err
	}
	return presenter.OK(c, items, "")
}

func (h *Handler) createItem(c *fiber.Ctx) error {
	var req createItemRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	items, err := h.store.CreateItems(c.UserContext(), req.ServiceID, []ItemInput{{
		ID:          req.ID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		Image:       req.Image,
	}})
	if err != nil {
		return err
	}
	return presenter.Created(c, items[0], "Item added successfully")
}

func (h *Handler) bulkCreateItems(c *fiber.Ctx) error {
	var req bulkItemsRequest
	if err := request.Bind(c, &req); err != nil {
		return err
	}
	in := make([]ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		in = append(in, it.input())
	}
	items, err := h.store.CreateItems(c.UserContext(), req.ServiceID, in)
	if err != nil {
		return err
	}
	return presenter.Created(c, items, fmt.Sprintf("%d items added successfully", len(items)))
}

// resetCatalog replaces the catalog with the default seed. Enabled only when
// ALLOW_RESET_CATALOG=1.
func (h *Handler) resetCatalog(c *fiber.Ctx) error {
	if !h.allowReset {
		return presenter.Fail(c, fiber.StatusForbidden, "reset not allowed")
	}
	seed := DefaultSeed()
	if err := h.store.Reset(c.UserContext(), seed); err != nil {
		return err
	}
	items := 0
	for _, sd := range seed {
		items += len(sd.Items)
	}
	return presenter.OK(c, fiber.Map{"services": len(seed), "items": items}, "Catalog reset")
}
