package handler

import (
	"errors"
	"strings"

	"styllobarber-pdv/internal/service"
	"styllobarber-pdv/pkg/jwt"
	"styllobarber-pdv/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,nefield=OldPassword"`
}

type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// authFailure maps auth errors to a status and a stable reason code the
// front desk uses to choose between "wrong password" and "log in again".
func authFailure(c *fiber.Ctx, err error) error {
	status, reason := 500, "internal_error"
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status, reason = 401, "invalid_credentials"
	case errors.Is(err, service.ErrWrongPassword):
		status, reason = 401, "wrong_password"
	case errors.Is(err, service.ErrProfileInactive):
		status, reason = 403, "profile_inactive"
	case errors.Is(err, service.ErrProfileNotFound):
		status, reason = 404, "profile_not_found"
	case errors.Is(err, service.ErrSessionReplaced):
		status, reason = 401, "session_replaced"
	case errors.Is(err, service.ErrSessionTimeout):
		status, reason = 401, "session_timeout"
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingToken):
		status, reason = 401, "invalid_token"
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "reason": reason})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates staff. Clients have no password and always fail here.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Email = normalizeEmail(req.Email)
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "A valid email and a password are required"})
	}

	response, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return authFailure(c, err)
	}

	return c.JSON(fiber.Map{
		"token":                response.Token,
		"profile":              response.Profile,
		"privileges":           response.Privileges,
		"idle_timeout_seconds": int(service.SessionIdleTimeout.Seconds()),
	})
}

// ResetPassword changes the password and ends the current session
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Email = normalizeEmail(req.Email)
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "email, old_password and a new_password of at least 6 characters, different from the old one, are required",
		})
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Email, req.OldPassword, req.NewPassword); err != nil {
		return authFailure(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password updated, please log in again"})
}

// Heartbeat keeps the session alive and announces presence
// POST /api/v1/auth/heartbeat
func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	id, err := uuid.Parse(getProfileID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.authService.Heartbeat(c.UserContext(), id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update heartbeat"})
	}

	return c.JSON(fiber.Map{"status": "online"})
}

// ValidateToken reports whether a stored token still opens a session
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "token is required"})
	}

	response, err := h.authService.ValidateToken(c.UserContext(), req.Token)
	if err != nil {
		return authFailure(c, err)
	}

	return c.JSON(response)
}
