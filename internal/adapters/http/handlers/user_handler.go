package handlers

import (
	"errors"

	"clubhub-backend/internal/adapters/http/middleware"
	"clubhub-backend/internal/config"
	"clubhub-backend/internal/core/domain"
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/response"
	"clubhub-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the user/auth endpoints
type UserHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *services.AuthService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// EmailExistsRequest represents the email-exists request body
type EmailExistsRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequest represents the request-reset request body
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmResetRequest represents the confirm-reset request body
type ConfirmResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// EmailExists checks whether an email is on the pre-verified allow-list
// @Summary Check pre-verified email
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/user/email-exists [post]
func (h *UserHandler) EmailExists(c *fiber.Ctx) error {
	var req EmailExistsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Expected JSON in body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	exists, err := h.authService.EmailExists(c.Context(), req.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to check email")
	}

	return response.Success(c, fiber.Map{"exists": exists})
}

// Register registers a new club
// @Summary Register a new club
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Expected JSON in body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	err := h.authService.Register(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotVerified):
			return response.NotFound(c, "The provided email is not part of the pre-verified list of emails!")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "A club under that email already exists!")
		default:
			return response.InternalServerError(c, "Failed to register club")
		}
	}

	return response.Success(c, nil)
}

// ConfirmEmail marks the email confirmed and redirects to the sign-in page
// @Summary Confirm email address
// @Tags User
// @Produce json
// @Success 302
// @Failure 404 {object} map[string]interface{}
// @Router /api/user/confirm/{token} [get]
func (h *UserHandler) ConfirmEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	err := h.authService.ConfirmEmail(c.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrExpiredToken):
			return response.NotFound(c, "The confirmation link is invalid!")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "The user matching the email does not exist!")
		default:
			return response.InternalServerError(c, "Failed to confirm email")
		}
	}

	return c.Redirect(h.cfg.Links.LoginURL)
}

// Login authenticates a user and returns an access/refresh token pair
// @Summary Login
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Expected JSON in body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	pair, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "The user does not exist!")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "The password is incorrect!")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, fiber.Map{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

// Refresh issues a fresh access token from a valid refresh token
// @Summary Refresh access token
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/user/refresh [post]
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	accessToken, err := h.authService.Refresh(c.Context(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to refresh token")
	}

	return response.Success(c, fiber.Map{"access": accessToken})
}

// RevokeAccess revokes the access token used on this request
// @Summary Revoke current access token
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/user/revoke-access [delete]
func (h *UserHandler) RevokeAccess(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.RevokeAccess(c.Context(), identity.JTI); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return response.NotFound(c, "Access token does not exist!")
		}
		return response.InternalServerError(c, "Failed to revoke access token")
	}

	return response.Success(c, fiber.Map{"message": "Access token revoked!"})
}

// RevokeRefresh revokes the refresh token used on this request
// @Summary Revoke current refresh token
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/user/revoke-refresh [delete]
func (h *UserHandler) RevokeRefresh(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.RevokeRefresh(c.Context(), identity.JTI); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return response.NotFound(c, "Refresh token does not exist!")
		}
		return response.InternalServerError(c, "Failed to revoke refresh token")
	}

	return response.Success(c, fiber.Map{"message": "Refresh token revoked!"})
}

// RequestReset sends a password reset link to the given email
// @Summary Request password reset
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/user/request-reset [post]
func (h *UserHandler) RequestReset(c *fiber.Ctx) error {
	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Expected JSON in body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	if err := h.authService.RequestReset(c.Context(), req.Email); err != nil {
		return response.InternalServerError(c, "Failed to send the reset email. Please see the logs")
	}

	return response.Success(c, nil)
}

// ConfirmReset sets the new password and revokes all outstanding sessions
// @Summary Confirm password reset
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/user/confirm-reset [post]
func (h *UserHandler) ConfirmReset(c *fiber.Ctx) error {
	var req ConfirmResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Expected JSON in body")
	}
	if fields := validation.Struct(&req); fields != nil {
		return response.ValidationError(c, fields)
	}

	err := h.authService.ConfirmReset(c.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrExpiredToken):
			return response.NotFound(c, "The recovery token is invalid!")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "The user matching the email does not exist!")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, nil)
}
