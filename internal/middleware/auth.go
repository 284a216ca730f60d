package middleware

import (
	"github.com/denizozkan/sensorhub/internal/apperr"
	"github.com/denizozkan/sensorhub/internal/config"
	"github.com/denizozkan/sensorhub/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    apperr.CodeInvalidCredentials,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
