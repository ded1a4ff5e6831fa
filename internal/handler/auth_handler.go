package handler

import (
	"errors"

	"it-inventory/internal/apperror"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	l           logrus.FieldLogger
	authService service.AuthService
}

func NewAuthHandler(l logrus.FieldLogger, authService service.AuthService) *AuthHandler {
	return &AuthHandler{l: l, authService: authService}
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(response)
}

// ResetPassword handles password change
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req service.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	response, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}

func (h *AuthHandler) authError(c *fiber.Ctx, err error) error {
	if _, ok := apperror.FieldErrors(err); ok {
		return writeError(c, h.l, err)
	}
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserInactive) {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}
	return writeError(c, h.l, err)
}
