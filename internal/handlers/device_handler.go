package handlers

import (
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/denizozkan/sensorhub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DeviceHandler struct {
	deviceService *services.DeviceService
}

func NewDeviceHandler(deviceService *services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.Create(userID, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}

func (h *DeviceHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	devices, err := h.deviceService.List(userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(devices)
}

func (h *DeviceHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid device ID")
	}

	device, err := h.deviceService.Get(userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(device)
}

func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid device ID")
	}

	var req dto.UpdateDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	device, err := h.deviceService.Update(userID, id, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(device)
}

func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid device ID")
	}

	if err := h.deviceService.Delete(userID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Device deleted successfully"})
}
