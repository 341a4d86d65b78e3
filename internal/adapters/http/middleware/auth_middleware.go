package middleware

import (
	"errors"
	"strings"

	"asperda-backend/internal/config"
	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/jwt"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileKey is the locals key under which the resolved caller profile is
// stored for the duration of one request.
const ProfileKey = "profile"

// AuthMiddleware validates the access token and resolves the caller to a
// Profile once per request. Handlers read the cached profile from locals
// instead of resolving again, so role and tenant stay consistent across the
// whole operation.
func AuthMiddleware(cfg *config.Config, profiles *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Resolve the caller profile. A stale or deactivated account is
		// indistinguishable from a missing session and must re-login; only a
		// backend failure reads as retryable.
		profile, err := profiles.Resolve(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				return response.Unauthorized(c, "Session no longer valid, please login again")
			}
			return response.ServiceUnavailable(c, "Could not verify session, please try again")
		}

		// 6. Cache profile for the rest of the request
		c.Locals("userID", profile.UserID)
		c.Locals(ProfileKey, *profile)

		return c.Next()
	}
}

// GetProfile reads the cached caller profile set by AuthMiddleware
func GetProfile(c *fiber.Ctx) (domain.Profile, bool) {
	profile, ok := c.Locals(ProfileKey).(domain.Profile)
	return profile, ok
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, ok := GetProfile(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if profile.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SuperAdminOnly middleware allows only the platform admin
func SuperAdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSuperAdmin)
}

// AdminOnly middleware allows platform and regional admins
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleSuperAdmin, domain.RoleDpcAdmin)
}
