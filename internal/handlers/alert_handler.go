package handlers

import (
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/denizozkan/sensorhub/internal/models"
	"github.com/denizozkan/sensorhub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	alerts, err := h.alertService.List(userID, c.Query("severity"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(alerts)
}

func (h *AlertHandler) ListAll(c *fiber.Ctx) error {
	alerts, err := h.alertService.ListAll(c.Query("severity"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(alerts)
}

func (h *AlertHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid alert ID")
	}

	alert, err := h.alertService.Get(userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(alert)
}

func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid alert ID")
	}

	isAdmin := middleware.GetRole(c) == models.RoleAdmin
	alert, err := h.alertService.Acknowledge(userID, isAdmin, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(alert)
}
