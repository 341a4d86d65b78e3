package handlers

import (
	"errors"

	"asperda-backend/internal/adapters/http/middleware"
	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// requireProfile reads the cached caller profile. The auth middleware always
// sets it; a miss means the route was wired without AuthMiddleware.
func requireProfile(c *fiber.Ctx) (domain.Profile, error) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		return domain.Profile{}, response.Unauthorized(c, "Unauthorized")
	}
	return profile, nil
}

// mapDomainError translates shared domain errors to HTTP responses. Handlers
// match their own service errors first and fall back here.
func mapDomainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return response.Unauthorized(c, "Session no longer valid, please login again")
	case errors.Is(err, domain.ErrAccessDenied):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Resource is not in a state that allows this action")
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return response.Conflict(c, "Already processed by another reviewer")
	case domain.IsPermissionDenied(err):
		// The store rejected the statement itself. Retrying cannot help.
		return response.Error(c, fiber.StatusInternalServerError,
			"Data access is misconfigured, please contact your administrator")
	default:
		return response.InternalServerError(c, fallback)
	}
}
