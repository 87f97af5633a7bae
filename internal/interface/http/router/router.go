package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wichananm65/freshora-backend/internal/infrastructure/config"
	"github.com/wichananm65/freshora-backend/internal/interface/presenter"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	RegisterPublicRoutes(r fiber.Router)
}

// New builds the fiber app with the shared middleware chain, the root and
// health endpoints, and every registrar's routes.
func New(cfg config.Config, registrars ...Registrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Freshora Backend API",
		ErrorHandler: presenter.ErrorHandler(cfg.IsDevelopment()),
		BodyLimit:    cfg.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: cfg.FrontendURL != "*",
	}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return presenter.Fail(c, fiber.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			},
		}))
	}
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "🚀 Freshora Backend API is running",
			"health":    "/health",
			"endpoints": []string{"/api/services", "/api/items", "/api/orders", "/api/cart"},
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	for _, r := range registrars {
		r.RegisterPublicRoutes(app)
	}
	return app
}
