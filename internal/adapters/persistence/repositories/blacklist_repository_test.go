package repositories

import (
	"context"
	"fmt"
	"testing"

	"asperda-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedReport(t *testing.T, repo BlacklistReportRepository) *models.BlacklistReport {
	t.Helper()
	report := &models.BlacklistReport{
		ReportedByCompanyID: 1,
		TargetName:          "Budi Santoso",
		TargetNIK:           "3201011503880001",
		Reason:              "Vehicle not returned on time",
		Status:              models.ReportPending,
	}
	require.NoError(t, repo.Create(context.Background(), report))
	return report
}

func TestMarkReviewedIsConditional(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewBlacklistReportRepository(db)
	ctx := context.Background()

	report := seedReport(t, repo)
	reviewer := uint(42)

	// First review wins
	rows, err := repo.MarkReviewed(ctx, report.ID, models.ReportApproved, &reviewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// Second review of the same report affects zero rows
	rows, err = repo.MarkReviewed(ctx, report.ID, models.ReportRejected, &reviewer)
	require.NoError(t, err)
	assert.Zero(t, rows)

	// The first outcome stands
	got, err := repo.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, reviewer, *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)
}

func TestGlobalEntryUniquePerReport(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewGlobalBlacklistRepository(db)
	ctx := context.Background()

	entry := &models.GlobalBlacklist{
		ReportID:            7,
		FullName:            "Budi Santoso",
		NIK:                 "3201011503880001",
		ReportedByCompanyID: 1,
	}
	require.NoError(t, repo.Create(ctx, entry))

	// A concurrent approval inserting for the same report must fail on the
	// unique index, not silently create a second row.
	dup := &models.GlobalBlacklist{
		ReportID:            7,
		FullName:            "Budi Santoso",
		NIK:                 "3201011503880001",
		ReportedByCompanyID: 1,
	}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestListPendingWithGlobalEntry(t *testing.T) {
	db := setupRepoDB(t)
	reportRepo := NewBlacklistReportRepository(db)
	globalRepo := NewGlobalBlacklistRepository(db)
	ctx := context.Background()

	// A fully approved report, a clean pending report, and a stuck one
	approved := seedReport(t, reportRepo)
	reviewer := uint(1)
	_, err := reportRepo.MarkReviewed(ctx, approved.ID, models.ReportApproved, &reviewer)
	require.NoError(t, err)
	require.NoError(t, globalRepo.Create(ctx, &models.GlobalBlacklist{
		ReportID: approved.ID, FullName: "A", NIK: "1", ReportedByCompanyID: 1,
	}))

	seedReport(t, reportRepo)

	stuck := seedReport(t, reportRepo)
	require.NoError(t, globalRepo.Create(ctx, &models.GlobalBlacklist{
		ReportID: stuck.ID, FullName: "B", NIK: "2", ReportedByCompanyID: 1,
	}))

	found, err := reportRepo.ListPendingWithGlobalEntry(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stuck.ID, found[0].ID)
}
