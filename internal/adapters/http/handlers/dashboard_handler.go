package handlers

import (
	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMyDashboard routes the caller to the dashboard matching its role
// @Summary Get role-aware dashboard
// @Description Return admin counters for admins, tenant counters for member companies
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetMyDashboard(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	switch profile.Role {
	case domain.RoleSuperAdmin, domain.RoleDpcAdmin:
		return h.GetAdminDashboard(c)
	default:
		return h.GetTenantDashboard(c)
	}
}

// GetAdminDashboard returns admin counters
// @Summary Get admin dashboard
// @Description Return member, report, and registry counters scoped to the caller
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	dash, err := h.dashboardService.GetAdminDashboard(c.Context(), profile)
	if err != nil {
		return mapDomainError(c, err, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dash)
}

// GetTenantDashboard returns tenant counters
// @Summary Get tenant dashboard
// @Description Return ledger and report counters for the caller's company
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/tenant [get]
func (h *DashboardHandler) GetTenantDashboard(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	dash, err := h.dashboardService.GetTenantDashboard(c.Context(), profile)
	if err != nil {
		return mapDomainError(c, err, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dash)
}
