package middleware

import (
	"errors"
	"strings"

	"hotel-desk/internal/core/domain"
	"hotel-desk/internal/pkg/jwt"
	"hotel-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalManagerID = "managerID"
	LocalEmail     = "email"
	LocalRole      = "role"
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(accessToken string) (*jwt.Claims, error)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := validator.ValidateAccessToken(accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalManagerID, claims.ManagerID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// extractToken reads the access token from the cookie, then from the Authorization header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if domain.Role(role) == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// ManagerOnly allows only the MANAGER role
func ManagerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleManager)
}

// ManagerID returns the authenticated manager id
func ManagerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalManagerID).(uint)
	return id, ok && id != 0
}
