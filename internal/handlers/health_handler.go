package handlers

import (
	"github.com/denizozkan/sensorhub/internal/database"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := database.Ping(); err != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus != "up" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
