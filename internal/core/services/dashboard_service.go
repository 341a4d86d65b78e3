package services

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates role-aware counters with raw queries
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// AdminDashboard holds counters for platform and regional admins
type AdminDashboard struct {
	PendingMembers int64 `json:"pending_members"`
	ActiveMembers  int64 `json:"active_members"`
	PendingReports int64 `json:"pending_reports"`
	GlobalEntries  int64 `json:"global_entries"`
	Regions        int64 `json:"regions"`
}

// TenantDashboard holds counters for a member company
type TenantDashboard struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	MyReports      int64   `json:"my_reports"`
	MyActiveRates  int64   `json:"my_active_rates"`
}

// GetAdminDashboard returns counters scoped the same way member listing is
func (s *DashboardService) GetAdminDashboard(ctx context.Context, profile domain.Profile) (*AdminDashboard, error) {
	scope, err := authz.Authorize(profile, authz.ResourceMembers)
	if err != nil {
		return nil, err
	}

	dash := &AdminDashboard{}

	memberQuery := func() *gorm.DB {
		return scope.Apply(s.db.WithContext(ctx).Model(&models.Company{}))
	}
	if err := memberQuery().Where("membership_status = ?", models.MembershipPending).Count(&dash.PendingMembers).Error; err != nil {
		return nil, err
	}
	if err := memberQuery().Where("membership_status = ?", models.MembershipActive).Count(&dash.ActiveMembers).Error; err != nil {
		return nil, err
	}

	reportScope, err := authz.Authorize(profile, authz.ResourceBlacklistReports)
	if err != nil {
		return nil, err
	}
	if err := reportScope.Apply(s.db.WithContext(ctx).Model(&models.BlacklistReport{})).
		Where("status = ?", models.ReportPending).
		Count(&dash.PendingReports).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.GlobalBlacklist{}).Count(&dash.GlobalEntries).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.DpcRegion{}).Count(&dash.Regions).Error; err != nil {
		return nil, err
	}

	return dash, nil
}

// GetTenantDashboard returns counters for the caller's own company
func (s *DashboardService) GetTenantDashboard(ctx context.Context, profile domain.Profile) (*TenantDashboard, error) {
	scope, err := authz.Authorize(profile, authz.ResourceFinanceRecords)
	if err != nil {
		return nil, err
	}
	companyID := *scope.CompanyID

	dash := &TenantDashboard{}

	if err := s.db.WithContext(ctx).Model(&models.FinanceRecord{}).
		Where("company_id = ? AND type = ?", companyID, models.FinanceIncome).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&dash.TotalIncome).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.FinanceRecord{}).
		Where("company_id = ? AND type = ?", companyID, models.FinanceExpense).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&dash.TotalExpense).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.BlacklistReport{}).
		Where("reported_by_company_id = ?", companyID).
		Count(&dash.MyReports).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.SeasonalRate{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&dash.MyActiveRates).Error; err != nil {
		return nil, err
	}

	return dash, nil
}
