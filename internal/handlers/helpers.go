package handlers

import (
	"errors"
	"log/slog"

	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error onto the uniform error payload. Internal
// detail is logged here and never returned to the caller.
func writeError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Status >= fiber.StatusInternalServerError {
			slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", ae.Error())
		}
		return c.Status(ae.Status).JSON(dto.ErrorResponse{
			Error: true, Code: ae.Code, Message: ae.Message,
		})
	}

	slog.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: apperr.CodeInternalError, Message: "Internal service error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: apperr.CodeValidationError, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Code: apperr.CodeInvalidCredentials, Message: "Unauthorized",
	})
}
