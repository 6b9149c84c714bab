package middleware

import (
	"errors"
	"strings"

	"clubhub-backend/internal/core/domain"
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/jwt"
	"clubhub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the context local under which the resolved identity is
// stored for downstream handlers.
const IdentityKey = "identity"

// AccessTokenRequired authenticates the request with a bearer access
// token: signature, expiry, blacklist, then identity resolution.
func AccessTokenRequired(authService *services.AuthService) fiber.Handler {
	return requireToken(authService, jwt.TokenTypeAccess)
}

// RefreshTokenRequired authenticates the request with a bearer refresh
// token. Used only by the refresh and revoke-refresh endpoints.
func RefreshTokenRequired(authService *services.AuthService) fiber.Handler {
	return requireToken(authService, jwt.TokenTypeRefresh)
}

func requireToken(authService *services.AuthService, tokenType jwt.TokenType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Missing Authorization Header")
		}

		identity, err := authService.Authenticate(c.Context(), token, tokenType)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrExpiredToken):
				return response.Unauthorized(c, "Token has expired")
			case errors.Is(err, domain.ErrRevokedToken):
				return response.Unauthorized(c, "Token has been revoked")
			case errors.Is(err, domain.ErrInvalidToken):
				return response.Unauthorized(c, "Invalid token provided")
			case errors.Is(err, domain.ErrUserNotFound):
				return response.NotFound(c, "User not found")
			default:
				return response.InternalServerError(c, "Failed to authenticate request")
			}
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// GetIdentity returns the identity stored by the auth middleware
func GetIdentity(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(*domain.Identity)
	return identity, ok
}

// RoleRequired restricts a route to the given roles. Must run after one
// of the token middlewares.
func RoleRequired(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly restricts a route to admins
func AdminOnly() fiber.Handler {
	return RoleRequired(domain.RoleAdmin)
}

func extractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
