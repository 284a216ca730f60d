package handlers

import (
	"github.com/denizozkan/sensorhub/internal/dto"
	"github.com/denizozkan/sensorhub/internal/middleware"
	"github.com/denizozkan/sensorhub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return badRequest(c, "Email, username, and password are required")
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Missing email or password")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(user)
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.authService.DeleteUser(userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
