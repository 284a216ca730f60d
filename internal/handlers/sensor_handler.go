package handlers

import (
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/denizozkan/sensorhub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SensorHandler struct {
	sensorService *services.SensorService
}

func NewSensorHandler(sensorService *services.SensorService) *SensorHandler {
	return &SensorHandler{sensorService: sensorService}
}

func (h *SensorHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid device ID")
	}

	var req dto.CreateSensorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sensor, err := h.sensorService.Create(userID, deviceID, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sensor)
}

func (h *SensorHandler) ListByDevice(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	deviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid device ID")
	}

	sensors, err := h.sensorService.ListByDevice(userID, deviceID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(sensors)
}

func (h *SensorHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	sensor, err := h.sensorService.Get(userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(sensor)
}

func (h *SensorHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	var req dto.UpdateSensorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sensor, err := h.sensorService.Update(userID, id, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(sensor)
}

func (h *SensorHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	if err := h.sensorService.Delete(userID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sensor deleted successfully"})
}
