package presenter

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/apperr"
)

func TestFromError_Validation(t *testing.T) {
	err := apperr.Validation("Validation failed", apperr.FieldError{Field: "quantity", Message: "quantity must be >= 1"})
	status, env := FromError(err, false)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Success || env.Error != "Validation failed" || len(env.Errors) != 1 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestFromError_HidesInternalDetails(t *testing.T) {
	err := fmt.Errorf("handler: %w", apperr.Internal("Failed to create order", errors.New("deadlock detected")))

	status, env := FromError(err, false)
	if status != 500 || env.Error != "Failed to create order" || env.Details != "" {
		t.Fatalf("unexpected production envelope %d %+v", status, env)
	}

	_, env = FromError(err, true)
	if env.Details != "deadlock detected" {
		t.Fatalf("expected details in development, got %+v", env)
	}
}

func TestFromError_PlainError(t *testing.T) {
	status, env := FromError(errors.New("boom"), false)
	if status != 500 || env.Error != "Internal server error" || env.Details != "" {
		t.Fatalf("unexpected envelope %d %+v", status, env)
	}
}

func TestErrorHandler_RouteNotFound(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Get("/known", func(c *fiber.Ctx) error { return OK(c, "ok", "") })

	res, err := app.Test(httptest.NewRequest("GET", "/unknown", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"error":"Route not found"`) {
		t.Fatalf("unexpected body %s", b)
	}
}

func TestErrorHandler_AppError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Get("/missing", func(c *fiber.Ctx) error { return apperr.NotFound("Order not found") })

	res, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, "Order not found") {
		t.Fatalf("unexpected body %s", body)
	}
}
