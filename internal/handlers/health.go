package handlers

import (
	"time"

	"campuswallet/internal/config"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceName    = "Campus Wallet API"
	serviceVersion = "1.0.0"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck is unauthenticated liveness.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"service":     serviceName,
		"version":     serviceVersion,
		"environment": h.cfg.Env,
	})
}

// APIInfo is unauthenticated service metadata.
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": serviceName,
		"version": serviceVersion,
		"endpoints": fiber.Map{
			"payments": "/api/payments",
			"cards":    "/api/cards",
			"health":   "/health",
		},
	})
}
