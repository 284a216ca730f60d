package handlers

import (
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/denizozkan/sensorhub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TelemetryHandler struct {
	telemetryService *services.TelemetryService
}

func NewTelemetryHandler(telemetryService *services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// Ingest accepts a batch of readings, each carrying its own sensor id.
func (h *TelemetryHandler) Ingest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Readings) == 0 {
		return badRequest(c, "readings must not be empty")
	}

	result, err := h.telemetryService.Ingest(userID, req.Readings)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// IngestForSensor accepts readings for the sensor named in the path.
func (h *TelemetryHandler) IngestForSensor(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sensorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	var readings []dto.SensorReading
	if err := c.BodyParser(&readings); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(readings) == 0 {
		return badRequest(c, "readings must not be empty")
	}

	result, err := h.telemetryService.IngestForSensor(userID, sensorID, readings)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *TelemetryHandler) GetReadings(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sensorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	readings, err := h.telemetryService.GetReadings(userID, sensorID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(readings)
}

func (h *TelemetryHandler) GetLatestReading(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sensorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	reading, err := h.telemetryService.GetLatestReading(userID, sensorID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(reading)
}

func (h *TelemetryHandler) DeleteReading(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sensorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}
	dataID, err := uuid.Parse(c.Params("dataId"))
	if err != nil {
		return badRequest(c, "Invalid reading ID")
	}

	result, err := h.telemetryService.DeleteReading(userID, sensorID, dataID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

func (h *TelemetryHandler) DeleteAllReadings(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sensorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sensor ID")
	}

	result, err := h.telemetryService.DeleteAllReadings(userID, sensorID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}
