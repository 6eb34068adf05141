package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/aoa-site/internal/config"
	"github.com/noah-isme/aoa-site/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Sessions    int       `json:"sessions"`
}

// SessionCounter reports how many visitor sessions are held.
type SessionCounter interface {
	Len() int
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config, sessions SessionCounter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}
		if sessions != nil {
			payload.Sessions = sessions.Len()
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
