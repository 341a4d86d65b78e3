package repositories

import (
	"context"
	"time"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"

	"gorm.io/gorm"
)

// blacklistReportRepository implements BlacklistReportRepository with GORM
type blacklistReportRepository struct {
	db *gorm.DB
}

// NewBlacklistReportRepository creates a new blacklist report repository
func NewBlacklistReportRepository(db *gorm.DB) BlacklistReportRepository {
	return &blacklistReportRepository{db: db}
}

// Create creates a new report (status defaults to pending)
func (r *blacklistReportRepository) Create(ctx context.Context, report *models.BlacklistReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetByID gets a report by ID with reporter
func (r *blacklistReportRepository) GetByID(ctx context.Context, id uint) (*models.BlacklistReport, error) {
	var report models.BlacklistReport
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List lists reports within the caller's scope, optionally by status.
// A delegated scope is passed through unchanged: the store narrows rows for
// regional reviewers server-side.
func (r *blacklistReportRepository) List(ctx context.Context, scope authz.Scope, status string, offset, limit int) ([]*models.BlacklistReport, int64, error) {
	var reports []*models.BlacklistReport
	var total int64

	query := scope.Apply(r.db.WithContext(ctx).Model(&models.BlacklistReport{}))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Reporter").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error

	return reports, total, err
}

// ListByCompany lists a tenant's own submitted reports
func (r *blacklistReportRepository) ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.BlacklistReport, int64, error) {
	var reports []*models.BlacklistReport
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.BlacklistReport{}).
		Where("reported_by_company_id = ?", companyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error

	return reports, total, err
}

// MarkReviewed moves a pending report to a terminal status. The WHERE clause
// on the current status makes the update conditional: zero rows affected
// means another reviewer got there first.
func (r *blacklistReportRepository) MarkReviewed(ctx context.Context, id uint, status string, reviewerID *uint) (int64, error) {
	now := time.Now()
	patch := map[string]interface{}{
		"status":      status,
		"reviewed_at": now,
	}
	if reviewerID != nil {
		patch["reviewed_by"] = *reviewerID
	}

	result := r.db.WithContext(ctx).
		Model(&models.BlacklistReport{}).
		Where("id = ? AND status = ?", id, models.ReportPending).
		Updates(patch)

	return result.RowsAffected, result.Error
}

// ListPendingWithGlobalEntry finds reports stuck half-approved: the global
// entry exists but the source report still reads pending. These are the
// rows reconciliation re-attempts.
func (r *blacklistReportRepository) ListPendingWithGlobalEntry(ctx context.Context) ([]*models.BlacklistReport, error) {
	var reports []*models.BlacklistReport
	err := r.db.WithContext(ctx).
		Joins("JOIN global_blacklist ON global_blacklist.report_id = blacklist_reports.id").
		Where("blacklist_reports.status = ?", models.ReportPending).
		Find(&reports).Error
	return reports, err
}

// globalBlacklistRepository implements GlobalBlacklistRepository with GORM
type globalBlacklistRepository struct {
	db *gorm.DB
}

// NewGlobalBlacklistRepository creates a new global blacklist repository
func NewGlobalBlacklistRepository(db *gorm.DB) GlobalBlacklistRepository {
	return &globalBlacklistRepository{db: db}
}

// Create publishes a new global entry
func (r *globalBlacklistRepository) Create(ctx context.Context, entry *models.GlobalBlacklist) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByReportID gets the entry published from a report
func (r *globalBlacklistRepository) GetByReportID(ctx context.Context, reportID uint) (*models.GlobalBlacklist, error) {
	var entry models.GlobalBlacklist
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List lists the published registry
func (r *globalBlacklistRepository) List(ctx context.Context, offset, limit int) ([]*models.GlobalBlacklist, int64, error) {
	var entries []*models.GlobalBlacklist
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.GlobalBlacklist{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error

	return entries, total, err
}

// SearchByNIK finds published entries matching a national ID number
func (r *globalBlacklistRepository) SearchByNIK(ctx context.Context, nik string) ([]*models.GlobalBlacklist, error) {
	var entries []*models.GlobalBlacklist
	err := r.db.WithContext(ctx).
		Where("nik = ?", nik).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Delete removes an entry (compensation only, see interface note)
func (r *globalBlacklistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.GlobalBlacklist{}, id).Error
}
