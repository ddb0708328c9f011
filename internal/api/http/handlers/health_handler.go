package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/americanreliabletech/support-portal/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	version string
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, version string) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, version: version}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": h.version})
}

// Ready GET /health/ready. Degraded dependencies are reported per component.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	components := fiber.Map{}
	healthy := true

	if h.pg != nil {
		if err := h.pg.Ping(c.Context()); err != nil {
			components["postgres"] = "down"
			healthy = false
		} else {
			components["postgres"] = "up"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(c.Context()); err != nil {
			components["redis"] = "down"
			healthy = false
		} else {
			components["redis"] = "up"
		}
	}

	status := "ok"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{"status": status, "components": components})
}
