package services

import (
	"context"
	"errors"
	"testing"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================
// Fakes
// ============================================================

type fakeReportRepo struct {
	reports map[uint]*models.BlacklistReport
	nextID  uint

	// Failure injection for the second approval step
	markErr     error
	forceNoRows bool
	globals     *fakeGlobalRepo
}

func newFakeReportRepo(globals *fakeGlobalRepo) *fakeReportRepo {
	return &fakeReportRepo{
		reports: make(map[uint]*models.BlacklistReport),
		nextID:  1,
		globals: globals,
	}
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.BlacklistReport) error {
	report.ID = r.nextID
	r.nextID++
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id uint) (*models.BlacklistReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) List(_ context.Context, _ authz.Scope, status string, _, _ int) ([]*models.BlacklistReport, int64, error) {
	var out []*models.BlacklistReport
	for _, report := range r.reports {
		if status == "" || report.Status == status {
			out = append(out, report)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) ListByCompany(_ context.Context, companyID uint, _, _ int) ([]*models.BlacklistReport, int64, error) {
	var out []*models.BlacklistReport
	for _, report := range r.reports {
		if report.ReportedByCompanyID == companyID {
			out = append(out, report)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) MarkReviewed(_ context.Context, id uint, status string, reviewerID *uint) (int64, error) {
	if r.markErr != nil {
		return 0, r.markErr
	}
	if r.forceNoRows {
		return 0, nil
	}
	report, ok := r.reports[id]
	if !ok || report.Status != models.ReportPending {
		return 0, nil
	}
	report.Status = status
	report.ReviewedBy = reviewerID
	return 1, nil
}

func (r *fakeReportRepo) ListPendingWithGlobalEntry(_ context.Context) ([]*models.BlacklistReport, error) {
	var out []*models.BlacklistReport
	for _, report := range r.reports {
		if report.Status != models.ReportPending {
			continue
		}
		if _, ok := r.globals.byReport[report.ID]; ok {
			copied := *report
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeGlobalRepo struct {
	entries  map[uint]*models.GlobalBlacklist
	byReport map[uint]uint
	nextID   uint

	createErr error
	deleted   []uint
}

func newFakeGlobalRepo() *fakeGlobalRepo {
	return &fakeGlobalRepo{
		entries:  make(map[uint]*models.GlobalBlacklist),
		byReport: make(map[uint]uint),
		nextID:   100,
	}
}

func (r *fakeGlobalRepo) Create(_ context.Context, entry *models.GlobalBlacklist) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byReport[entry.ReportID]; exists {
		return gorm.ErrDuplicatedKey
	}
	entry.ID = r.nextID
	r.nextID++
	copied := *entry
	r.entries[entry.ID] = &copied
	r.byReport[entry.ReportID] = entry.ID
	return nil
}

func (r *fakeGlobalRepo) GetByReportID(_ context.Context, reportID uint) (*models.GlobalBlacklist, error) {
	id, ok := r.byReport[reportID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.entries[id], nil
}

func (r *fakeGlobalRepo) List(_ context.Context, _, _ int) ([]*models.GlobalBlacklist, int64, error) {
	var out []*models.GlobalBlacklist
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (r *fakeGlobalRepo) SearchByNIK(_ context.Context, nik string) ([]*models.GlobalBlacklist, error) {
	var out []*models.GlobalBlacklist
	for _, entry := range r.entries {
		if entry.NIK == nik {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeGlobalRepo) Delete(_ context.Context, id uint) error {
	entry, ok := r.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byReport, entry.ReportID)
	delete(r.entries, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ============================================================
// Helpers
// ============================================================

func newBlacklistFixture() (*BlacklistService, *fakeReportRepo, *fakeGlobalRepo) {
	globals := newFakeGlobalRepo()
	reports := newFakeReportRepo(globals)
	return NewBlacklistService(reports, globals), reports, globals
}

func tenantProfile(companyID uint) domain.Profile {
	id := companyID
	return domain.Profile{UserID: 10, Role: domain.RoleOwner, CompanyID: &id}
}

func adminProfile() domain.Profile {
	return domain.Profile{UserID: 1, Role: domain.RoleSuperAdmin}
}

func submitTestReport(t *testing.T, svc *BlacklistService) *models.BlacklistReport {
	t.Helper()
	report, err := svc.Submit(context.Background(), tenantProfile(5), &SubmitInput{
		TargetName:  "Budi Santoso",
		TargetNIK:   "3201011503880001",
		TargetPhone: "081234567890",
		Reason:      "Returned vehicle with severe damage, refused to pay",
	})
	require.NoError(t, err)
	return report
}

// ============================================================
// Tests
// ============================================================

func TestSubmitReport(t *testing.T) {
	svc, reports, _ := newBlacklistFixture()

	t.Run("tenant submission starts pending", func(t *testing.T) {
		report := submitTestReport(t, svc)
		assert.Equal(t, models.ReportPending, report.Status)
		assert.Equal(t, uint(5), report.ReportedByCompanyID)
		assert.Len(t, reports.reports, 1)
	})

	t.Run("admin without a tenant cannot submit", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), adminProfile(), &SubmitInput{
			TargetName: "X", TargetNIK: "1", Reason: "r",
		})
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestApproveReport(t *testing.T) {
	t.Run("approval publishes the entry and marks the report", func(t *testing.T) {
		svc, reports, globals := newBlacklistFixture()
		report := submitTestReport(t, svc)

		entry, err := svc.Approve(context.Background(), adminProfile(), report.ID)
		require.NoError(t, err)

		assert.Equal(t, report.ID, entry.ReportID)
		assert.Equal(t, "Budi Santoso", entry.FullName)
		assert.Equal(t, "3201011503880001", entry.NIK)
		assert.Equal(t, uint(5), entry.ReportedByCompanyID)

		assert.Equal(t, models.ReportApproved, reports.reports[report.ID].Status)
		require.NotNil(t, reports.reports[report.ID].ReviewedBy)
		assert.Equal(t, uint(1), *reports.reports[report.ID].ReviewedBy)
		assert.Len(t, globals.entries, 1)
	})

	t.Run("tenant roles cannot approve", func(t *testing.T) {
		svc, _, _ := newBlacklistFixture()
		report := submitTestReport(t, svc)

		_, err := svc.Approve(context.Background(), tenantProfile(5), report.ID)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("missing report", func(t *testing.T) {
		svc, _, _ := newBlacklistFixture()
		_, err := svc.Approve(context.Background(), adminProfile(), 999)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("terminal report cannot be approved again", func(t *testing.T) {
		svc, reports, _ := newBlacklistFixture()
		report := submitTestReport(t, svc)
		reports.reports[report.ID].Status = models.ReportRejected

		_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("concurrent duplicate approval hits the unique entry", func(t *testing.T) {
		svc, reports, globals := newBlacklistFixture()
		report := submitTestReport(t, svc)

		// A racing reviewer already inserted the entry but its status update
		// has not landed yet, so our read still sees pending.
		_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
		require.NoError(t, err)
		reports.reports[report.ID].Status = models.ReportPending

		_, err = svc.Approve(context.Background(), adminProfile(), report.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		assert.Len(t, globals.entries, 1, "no second entry may appear")
	})

	t.Run("failed insert aborts with no visible change", func(t *testing.T) {
		svc, reports, globals := newBlacklistFixture()
		report := submitTestReport(t, svc)
		globals.createErr = errors.New("connection reset")

		_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAlreadyProcessed)

		assert.Equal(t, models.ReportPending, reports.reports[report.ID].Status)
		assert.Empty(t, globals.entries)
	})

	t.Run("failed status update surfaces a partial approval", func(t *testing.T) {
		svc, reports, globals := newBlacklistFixture()
		report := submitTestReport(t, svc)
		reports.markErr = errors.New("lock wait timeout")

		_, err := svc.Approve(context.Background(), adminProfile(), report.ID)

		var partial *domain.PartialApprovalError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, report.ID, partial.ReportID)
		assert.NotZero(t, partial.GlobalID)

		// The entry stays published; the report stays pending for the
		// reconciliation pass.
		assert.Len(t, globals.entries, 1)
		assert.Equal(t, models.ReportPending, reports.reports[report.ID].Status)
	})

	t.Run("lost race withdraws the entry", func(t *testing.T) {
		svc, reports, globals := newBlacklistFixture()
		report := submitTestReport(t, svc)
		reports.forceNoRows = true

		_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		assert.Empty(t, globals.entries, "compensating delete must remove the entry")
		assert.Len(t, globals.deleted, 1)
	})
}

func TestRejectReport(t *testing.T) {
	svc, reports, globals := newBlacklistFixture()
	report := submitTestReport(t, svc)

	rejected, err := svc.Reject(context.Background(), adminProfile(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportRejected, rejected.Status)
	assert.Empty(t, globals.entries, "rejection must not publish anything")

	// Terminal now; a second review attempt fails cleanly
	_, err = svc.Reject(context.Background(), adminProfile(), report.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, models.ReportRejected, reports.reports[report.ID].Status)
}

func TestSearchGlobal(t *testing.T) {
	svc, _, _ := newBlacklistFixture()
	report := submitTestReport(t, svc)
	_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
	require.NoError(t, err)

	entries, err := svc.SearchGlobal(context.Background(), "3201011503880001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Budi Santoso", entries[0].FullName)

	entries, err = svc.SearchGlobal(context.Background(), "0000000000000000")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.SearchGlobal(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconcile(t *testing.T) {
	svc, reports, _ := newBlacklistFixture()
	report := submitTestReport(t, svc)

	// Produce a stuck approval: entry published, status update lost
	reports.markErr = errors.New("lock wait timeout")
	_, err := svc.Approve(context.Background(), adminProfile(), report.ID)
	var partial *domain.PartialApprovalError
	require.ErrorAs(t, err, &partial)

	// The outage clears; reconciliation finishes the approval
	reports.markErr = nil
	fixed, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, models.ReportApproved, reports.reports[report.ID].Status)

	// Idempotent: a second pass finds nothing
	fixed, err = svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fixed)
}
