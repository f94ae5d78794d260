package handlers

import (
	"github.com/campushire/placement-api/database"
	"github.com/campushire/placement-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports API and database health
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable", "SERVICE_UNAVAILABLE")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
