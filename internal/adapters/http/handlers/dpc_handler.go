package handlers

import (
	"errors"
	"strings"

	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DpcHandler handles DPC region endpoints
type DpcHandler struct {
	dpcService *services.DpcService
}

// NewDpcHandler creates a new DPC handler
func NewDpcHandler(dpcService *services.DpcService) *DpcHandler {
	return &DpcHandler{dpcService: dpcService}
}

// List handles region listing
// @Summary List DPC regions
// @Description List all regional chapters (needed by the registration form)
// @Tags DPC
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /dpc [get]
func (h *DpcHandler) List(c *fiber.Ctx) error {
	regions, err := h.dpcService.List(c.Context())
	if err != nil {
		return mapDomainError(c, err, "Failed to list regions")
	}

	return response.Success(c, "Regions retrieved successfully", regions)
}

// CreateRegionRequest represents region creation request body
type CreateRegionRequest struct {
	Name     string `json:"name"`
	Province string `json:"province"`
}

// Create handles region creation
// @Summary Create DPC region
// @Description Create a new regional chapter (super admin only)
// @Tags DPC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRegionRequest true "Region data"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dpc [post]
func (h *DpcHandler) Create(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	var req CreateRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Region name is required")
	}
	if req.Province == "" {
		return response.BadRequest(c, "Province is required")
	}

	input := &services.CreateRegionInput{
		Name:     strings.TrimSpace(req.Name),
		Province: strings.TrimSpace(req.Province),
	}

	region, err := h.dpcService.Create(c.Context(), profile, input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Region already exists")
		}
		return mapDomainError(c, err, "Failed to create region")
	}

	return response.Created(c, "Region created successfully", region)
}

// Delete handles region deletion
// @Summary Delete DPC region
// @Description Delete an empty regional chapter (super admin only)
// @Tags DPC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Region ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dpc/{id} [delete]
func (h *DpcHandler) Delete(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid region ID")
	}

	if err := h.dpcService.Delete(c.Context(), profile, uint(id)); err != nil {
		if errors.Is(err, domain.ErrRegionNotEmpty) {
			return response.Conflict(c, "Region still has member companies")
		}
		return mapDomainError(c, err, "Failed to delete region")
	}

	return response.Success(c, "Region deleted successfully", nil)
}
