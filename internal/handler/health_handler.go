package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness for load balancers
// GET /health-check
func HealthCheck(now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": now().UTC().Format(time.RFC3339),
		})
	}
}
