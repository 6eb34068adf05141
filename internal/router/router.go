package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/handler"
	"github.com/noah-isme/aoa-site/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PageHandler    *handler.PageHandler
	ContactHandler *handler.ContactHandler
	Sessions       fiber.Handler
	ContactLimiter fiber.Handler
	SessionCounter handler.SessionCounter
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Operational endpoints never create visitor sessions
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.SessionCounter))
	app.Get("/metrics", observability.MetricsHandler())

	sessions := deps.Sessions
	if sessions == nil {
		sessions = func(c *fiber.Ctx) error { return c.Next() }
	}

	var limiters []fiber.Handler
	if deps.ContactLimiter != nil {
		limiters = append(limiters, deps.ContactLimiter)
	}

	if deps.ContactHandler != nil {
		contact := api.Group("/contact", sessions)
		deps.ContactHandler.Register(contact, limiters...)
	}

	if deps.PageHandler != nil {
		deps.PageHandler.Register(app, sessions, limiters...)
	}
}
