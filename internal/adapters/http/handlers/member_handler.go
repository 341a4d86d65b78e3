package handlers

import (
	"errors"

	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/pagination"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member company administration endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles scoped member listing
// @Summary List member companies
// @Description List member companies visible to the caller's role
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Membership status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	params := pagination.GetParams(c)
	input := &services.ListInput{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	result, err := h.memberService.List(c.Context(), profile, input)
	if err != nil {
		return mapDomainError(c, err, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", result)
}

// GetByID handles member detail
// @Summary Get member company
// @Description Get a member company visible to the caller
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.memberService.GetByID(c.Context(), profile, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return mapDomainError(c, err, "Failed to get company")
	}

	return response.Success(c, "Company retrieved successfully", company.ToResponse())
}

// Approve handles membership approval
// @Summary Approve member company
// @Description Move a pending company to active membership
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id}/approve [put]
func (h *MemberHandler) Approve(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.memberService.Approve(c.Context(), profile, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return mapDomainError(c, err, "Failed to approve company")
	}

	return response.Success(c, "Company approved", company.ToResponse())
}

// Deactivate handles membership deactivation
// @Summary Deactivate member company
// @Description Move an active company to inactive membership
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id}/deactivate [put]
func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.memberService.Deactivate(c.Context(), profile, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return mapDomainError(c, err, "Failed to deactivate company")
	}

	return response.Success(c, "Company deactivated", company.ToResponse())
}

// Verify handles document verification
// @Summary Verify member company documents
// @Description Mark a company's submitted documents as verified
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/verify [put]
func (h *MemberHandler) Verify(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid company ID")
	}

	company, err := h.memberService.Verify(c.Context(), profile, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			return response.NotFound(c, "Company not found")
		}
		return mapDomainError(c, err, "Failed to verify company")
	}

	return response.Success(c, "Company verified", company.ToResponse())
}
