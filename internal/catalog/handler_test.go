package catalog

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/interface/presenter"
)

func newTestApp(allowReset bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler(false)})
	NewHandler(newTestStore(), allowReset).RegisterPublicRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, target, err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestCatalogHandler_RegistersRoutes(t *testing.T) {
	app := newTestApp(false)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /api/services",
		"POST /api/services",
		"GET /api/services/:slug",
		"POST /api/services/:slug/items",
		"GET /api/items",
		"POST /api/items",
		"PUT /api/items/bulk",
		"POST /dev/reset-catalog",
	} {
		if !routes[want] {
			t.Errorf("expected route %q to be registered", want)
		}
	}
}

func TestGetServiceBySlug(t *testing.T) {
	app := newTestApp(false)

	status, body := doRequest(t, app, "GET", "/api/services/laundry-services", "")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"men":[`) || !strings.Contains(body, `"unit":"Per Item"`) {
		t.Fatalf("expected items grouped by category, got %s", body)
	}

	status, body = doRequest(t, app, "GET", "/api/services/unknown", "")
	if status != 404 || !strings.Contains(body, "Service not found") {
		t.Fatalf("expected 404 Service not found, got %d: %s", status, body)
	}
}

func TestCreateService_Validation(t *testing.T) {
	app := newTestApp(false)

	status, body := doRequest(t, app, "POST", "/api/services", `{"title":"Ironing"}`)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if !strings.Contains(body, `"field":"slug"`) || !strings.Contains(body, `"field":"description"`) {
		t.Fatalf("expected field errors, got %s", body)
	}

	status, body = doRequest(t, app, "POST", "/api/services", `{"title":"Ironing","description":"Pressed","slug":"laundry-services"}`)
	if status != 409 {
		t.Fatalf("expected 409 for duplicate slug, got %d: %s", status, body)
	}

	status, body = doRequest(t, app, "POST", "/api/services", `{"title":"Ironing","description":"Pressed","slug":"ironing"}`)
	if status != 201 || !strings.Contains(body, "Service created successfully") || !strings.Contains(body, `"duration":"24-48 hours"`) {
		t.Fatalf("expected 201 with defaults, got %d: %s", status, body)
	}
}

func TestAddServiceItem_RequiresPositivePrice(t *testing.T) {
	app := newTestApp(false)

	status, body := doRequest(t, app, "POST", "/api/services/laundry-services/items", `{"name":"Coat","category":"men","price":0}`)
	if status != 400 || !strings.Contains(body, "price must be greater than 0") {
		t.Fatalf("expected price validation error, got %d: %s", status, body)
	}

	status, body = doRequest(t, app, "POST", "/api/services/laundry-services/items", `{"name":"Coat","category":"men","price":12}`)
	if status != 201 || !strings.Contains(body, "Item added successfully to service 'laundry-services'") {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
}

func TestListItems(t *testing.T) {
	app := newTestApp(false)

	status, body := doRequest(t, app, "GET", "/api/items?serviceId=2", "")
	if status != 200 || !strings.Contains(body, `"id":"suit"`) || strings.Contains(body, `"id":"svc-1"`) {
		t.Fatalf("expected only service 2 items, got %d: %s", status, body)
	}

	status, body = doRequest(t, app, "GET", "/api/items?serviceId=42", "")
	if status != 404 || !strings.Contains(body, "No items found") {
		t.Fatalf("expected 404 No items found, got %d: %s", status, body)
	}

	status, _ = doRequest(t, app, "GET", "/api/items?serviceId=abc", "")
	if status != 400 {
		t.Fatalf("expected 400 for non-numeric serviceId, got %d", status)
	}
}

func TestBulkCreateItems(t *testing.T) {
	app := newTestApp(false)

	status, body := doRequest(t, app, "PUT", "/api/items/bulk", `{"serviceId":2,"items":[{"name":"Tie","category":"men","price":5},{"name":"Gown","category":"women","price":35}]}`)
	if status != 201 || !strings.Contains(body, "2 items added successfully") {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}

	status, body = doRequest(t, app, "PUT", "/api/items/bulk", `{"serviceId":2,"items":[{"name":"Tie","category":"men","price":5},{"name":"","category":"women","price":35}]}`)
	if status != 400 || !strings.Contains(body, "items[1].name is required") {
		t.Fatalf("expected validation error on second item, got %d: %s", status, body)
	}

	status, _ = doRequest(t, app, "PUT", "/api/items/bulk", `{"serviceId":77,"items":[{"name":"Tie","category":"men","price":5}]}`)
	if status != 404 {
		t.Fatalf("expected 404 for unknown service, got %d", status)
	}
}

func TestResetCatalog_Gated(t *testing.T) {
	status, _ := doRequest(t, newTestApp(false), "POST", "/dev/reset-catalog", "")
	if status != 403 {
		t.Fatalf("expected 403 when reset is disabled, got %d", status)
	}

	app := newTestApp(true)
	status, body := doRequest(t, app, "POST", "/dev/reset-catalog", "")
	if status != 200 || !strings.Contains(body, `"services":4`) {
		t.Fatalf("expected reset to seed 4 services, got %d: %s", status, body)
	}
	status, _ = doRequest(t, app, "GET", "/api/services/luxury-shoe-cleaning", "")
	if status != 200 {
		t.Fatalf("expected seeded service, got %d", status)
	}
}
