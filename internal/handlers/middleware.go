package handlers

import (
	"github.com/gofiber/fiber/v2"

	"aiready/resume-ai/internal/models"
	"aiready/resume-ai/internal/services"
)

// RateLimit rejects a client address that was admitted less than one gate
// interval ago.
func RateLimit(gate *services.RateGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.Allow(c.IP()) {
			return respondError(c, fiber.StatusTooManyRequests, msgRateLimited)
		}
		return c.Next()
	}
}

// HandleHealth handles GET /health
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{Status: "ok"})
}
