package handlers

import (
	"errors"
	"strings"
	"time"

	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PricingHandler handles seasonal rate endpoints
type PricingHandler struct {
	pricingService *services.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// RateRequest represents seasonal rate request body
type RateRequest struct {
	Name       string  `json:"name"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Multiplier float64 `json:"multiplier"`
	IsActive   *bool   `json:"is_active"`
}

// Create handles rate creation
// @Summary Create seasonal rate
// @Description Create a pricing rule for the caller's company
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RateRequest true "Rate data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /pricing/rates [post]
func (h *PricingHandler) Create(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Rate name is required")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return response.BadRequest(c, "Start date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return response.BadRequest(c, "End date must be YYYY-MM-DD")
	}

	input := &services.CreateRateInput{
		Name:       strings.TrimSpace(req.Name),
		StartDate:  startDate,
		EndDate:    endDate,
		Multiplier: req.Multiplier,
	}

	rate, err := h.pricingService.Create(c.Context(), profile, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			return response.BadRequest(c, "End date must be after start date")
		}
		return mapDomainError(c, err, "Failed to create rate")
	}

	return response.Created(c, "Rate created successfully", rate)
}

// List handles rate listing
// @Summary List seasonal rates
// @Description List the caller company's pricing rules
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /pricing/rates [get]
func (h *PricingHandler) List(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	rates, err := h.pricingService.List(c.Context(), profile)
	if err != nil {
		return mapDomainError(c, err, "Failed to list rates")
	}

	return response.Success(c, "Rates retrieved successfully", rates)
}

// Update handles rate update
// @Summary Update seasonal rate
// @Description Update a pricing rule belonging to the caller's company
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rate ID"
// @Param body body RateRequest true "Rate patch"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pricing/rates/{id} [put]
func (h *PricingHandler) Update(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid rate ID")
	}

	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateRateInput{
		IsActive: req.IsActive,
	}
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		input.Name = &name
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return response.BadRequest(c, "Start date must be YYYY-MM-DD")
		}
		input.StartDate = &startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return response.BadRequest(c, "End date must be YYYY-MM-DD")
		}
		input.EndDate = &endDate
	}
	if req.Multiplier > 0 {
		input.Multiplier = &req.Multiplier
	}

	rate, err := h.pricingService.Update(c.Context(), profile, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateNotFound):
			return response.NotFound(c, "Rate not found")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "End date must be after start date")
		default:
			return mapDomainError(c, err, "Failed to update rate")
		}
	}

	return response.Success(c, "Rate updated successfully", rate)
}

// Delete handles rate deletion
// @Summary Delete seasonal rate
// @Description Delete a pricing rule belonging to the caller's company
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pricing/rates/{id} [delete]
func (h *PricingHandler) Delete(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid rate ID")
	}

	if err := h.pricingService.Delete(c.Context(), profile, uint(id)); err != nil {
		if errors.Is(err, services.ErrRateNotFound) {
			return response.NotFound(c, "Rate not found")
		}
		return mapDomainError(c, err, "Failed to delete rate")
	}

	return response.Success(c, "Rate deleted successfully", nil)
}
