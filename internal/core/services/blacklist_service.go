package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Blacklist service errors
var (
	ErrReportNotFound = errors.New("blacklist report not found")
)

// BlacklistService handles the report lifecycle: tenant submission, scoped
// review listing, and the approve/reject workflow that publishes confirmed
// reports to the cross-tenant registry.
//
// Approval is a two-step write: the global entry is inserted first, then the
// source report is conditionally marked approved. The insert is the
// linearization point (unique index on report_id), the conditional update
// closes the double-approve race, and a failed second step surfaces as
// PartialApprovalError for the reconciliation pass to finish.
type BlacklistService struct {
	reportRepo repositories.BlacklistReportRepository
	globalRepo repositories.GlobalBlacklistRepository
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(
	reportRepo repositories.BlacklistReportRepository,
	globalRepo repositories.GlobalBlacklistRepository,
) *BlacklistService {
	return &BlacklistService{
		reportRepo: reportRepo,
		globalRepo: globalRepo,
	}
}

// SubmitInput represents report submission input
type SubmitInput struct {
	TargetName  string `json:"target_name" validate:"required"`
	TargetNIK   string `json:"target_nik" validate:"required"`
	TargetPhone string `json:"target_phone,omitempty"`
	Reason      string `json:"reason" validate:"required"`
	EvidenceURL string `json:"evidence_url,omitempty"`
}

// Submit creates a new pending report on behalf of the caller's tenant
func (s *BlacklistService) Submit(ctx context.Context, profile domain.Profile, input *SubmitInput) (*models.BlacklistReport, error) {
	if !profile.IsTenant() {
		return nil, domain.ErrAccessDenied
	}

	report := &models.BlacklistReport{
		ReportedByCompanyID: *profile.CompanyID,
		TargetName:          input.TargetName,
		TargetNIK:           input.TargetNIK,
		TargetPhone:         input.TargetPhone,
		Reason:              input.Reason,
		EvidenceURL:         input.EvidenceURL,
		Status:              models.ReportPending,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("📋 Blacklist report submitted: #%d by company %d", report.ID, report.ReportedByCompanyID)
	return report, nil
}

// ReportListInput represents report list input
type ReportListInput struct {
	Status string
	Page   int
	Limit  int
}

// ReportListOutput represents report list output
type ReportListOutput struct {
	Reports []*models.BlacklistReport `json:"reports"`
	Total   int64                     `json:"total"`
	Page    int                       `json:"page"`
	Limit   int                       `json:"limit"`
}

// ListForReview lists reports visible to the reviewing caller
func (s *BlacklistService) ListForReview(ctx context.Context, profile domain.Profile, input *ReportListInput) (*ReportListOutput, error) {
	scope, err := authz.Authorize(profile, authz.ResourceBlacklistReports)
	if err != nil {
		return nil, err
	}

	normalizePage(&input.Page, &input.Limit)
	offset := (input.Page - 1) * input.Limit

	reports, total, err := s.reportRepo.List(ctx, scope, input.Status, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ReportListOutput{
		Reports: reports,
		Total:   total,
		Page:    input.Page,
		Limit:   input.Limit,
	}, nil
}

// ListMine lists the caller tenant's own submitted reports
func (s *BlacklistService) ListMine(ctx context.Context, profile domain.Profile, input *ReportListInput) (*ReportListOutput, error) {
	if !profile.IsTenant() {
		return nil, domain.ErrAccessDenied
	}

	normalizePage(&input.Page, &input.Limit)
	offset := (input.Page - 1) * input.Limit

	reports, total, err := s.reportRepo.ListByCompany(ctx, *profile.CompanyID, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ReportListOutput{
		Reports: reports,
		Total:   total,
		Page:    input.Page,
		Limit:   input.Limit,
	}, nil
}

// Approve publishes a pending report to the global registry.
//
// Step order is fixed: insert the global entry first, then mark the report.
// If the insert fails the report stays pending and nothing is visible to
// callers. If the insert succeeds but the status update fails, the result is
// a PartialApprovalError naming both rows; the report is left pending and
// reconciliation re-attempts the update later.
func (s *BlacklistService) Approve(ctx context.Context, profile domain.Profile, reportID uint) (*models.GlobalBlacklist, error) {
	if _, err := authz.Authorize(profile, authz.ResourceBlacklistReports); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	// Step 1: publish the global entry. The unique index on report_id makes
	// a concurrent duplicate approval fail here, before any state changes.
	entry := &models.GlobalBlacklist{
		ReportID:            report.ID,
		FullName:            report.TargetName,
		NIK:                 report.TargetNIK,
		Phone:               report.TargetPhone,
		Reason:              report.Reason,
		EvidenceURL:         report.EvidenceURL,
		ReportedByCompanyID: report.ReportedByCompanyID,
	}
	if err := s.globalRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("publish global entry: %w", err)
	}

	// Step 2: mark the source report approved, conditional on pending.
	reviewerID := profile.UserID
	rows, err := s.reportRepo.MarkReviewed(ctx, report.ID, models.ReportApproved, &reviewerID)
	if err != nil {
		return nil, &domain.PartialApprovalError{
			ReportID: report.ID,
			GlobalID: entry.ID,
			Err:      err,
		}
	}
	if rows == 0 {
		// The report reached a terminal state between our read and the
		// update (rejected by another reviewer). Withdraw the entry.
		if delErr := s.globalRepo.Delete(ctx, entry.ID); delErr != nil {
			log.Printf("⚠️ Could not withdraw global entry %d after lost race on report %d: %v",
				entry.ID, report.ID, delErr)
		}
		return nil, domain.ErrAlreadyProcessed
	}

	log.Printf("✅ Blacklist report #%d approved, published as global entry #%d", report.ID, entry.ID)
	return entry, nil
}

// Reject marks a pending report rejected. No other side effect.
func (s *BlacklistService) Reject(ctx context.Context, profile domain.Profile, reportID uint) (*models.BlacklistReport, error) {
	if _, err := authz.Authorize(profile, authz.ResourceBlacklistReports); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}

	reviewerID := profile.UserID
	rows, err := s.reportRepo.MarkReviewed(ctx, report.ID, models.ReportRejected, &reviewerID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrAlreadyProcessed
	}

	report.Status = models.ReportRejected
	log.Printf("🛑 Blacklist report #%d rejected", report.ID)
	return report, nil
}

// GlobalListOutput represents global registry list output
type GlobalListOutput struct {
	Entries []*models.GlobalBlacklist `json:"entries"`
	Total   int64                     `json:"total"`
	Page    int                       `json:"page"`
	Limit   int                       `json:"limit"`
}

// ListGlobal lists the published cross-tenant registry. Any authenticated
// member may consult it; that is the point of publishing.
func (s *BlacklistService) ListGlobal(ctx context.Context, page, limit int) (*GlobalListOutput, error) {
	normalizePage(&page, &limit)
	offset := (page - 1) * limit

	entries, total, err := s.globalRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &GlobalListOutput{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// SearchGlobal finds published entries by national ID number
func (s *BlacklistService) SearchGlobal(ctx context.Context, nik string) ([]*models.GlobalBlacklist, error) {
	if nik == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.globalRepo.SearchByNIK(ctx, nik)
}

// Reconcile finishes approvals whose global entry exists but whose source
// report still reads pending. Runs on a schedule; also safe to call by hand.
func (s *BlacklistService) Reconcile(ctx context.Context) (int, error) {
	stuck, err := s.reportRepo.ListPendingWithGlobalEntry(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, report := range stuck {
		rows, err := s.reportRepo.MarkReviewed(ctx, report.ID, models.ReportApproved, nil)
		if err != nil {
			log.Printf("⚠️ Reconcile: report #%d still stuck: %v", report.ID, err)
			continue
		}
		if rows > 0 {
			fixed++
			log.Printf("🔧 Reconcile: report #%d marked approved", report.ID)
		}
	}

	return fixed, nil
}

// normalizePage clamps pagination values
func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 10
	}
	if *limit > 100 {
		*limit = 100
	}
}
