package services

import (
	"context"
	"fmt"
	"testing"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
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

func seedCompany(t *testing.T, db *gorm.DB, name string, dpcID uint, status string) *models.Company {
	t.Helper()
	company := &models.Company{
		Name:             name,
		DpcID:            dpcID,
		MembershipStatus: status,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func dpcAdminProfile(companyID, dpcID uint) domain.Profile {
	return domain.Profile{UserID: 2, Role: domain.RoleDpcAdmin, CompanyID: &companyID, DpcID: &dpcID}
}

func TestMemberList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMemberService(repositories.NewCompanyRepository(db))
	ctx := context.Background()

	seedCompany(t, db, "Bandung Rent A", 1, models.MembershipPending)
	seedCompany(t, db, "Bandung Rent B", 1, models.MembershipActive)
	seedCompany(t, db, "Denpasar Rent", 2, models.MembershipPending)

	t.Run("super admin sees every region", func(t *testing.T) {
		out, err := svc.List(ctx, adminProfile(), &ListInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), out.Total)
	})

	t.Run("dpc admin sees only its region", func(t *testing.T) {
		out, err := svc.List(ctx, dpcAdminProfile(1, 1), &ListInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), out.Total)
		for _, c := range out.Companies {
			assert.Equal(t, uint(1), c.DpcID)
		}
	})

	t.Run("status filter applies inside the scope", func(t *testing.T) {
		out, err := svc.List(ctx, dpcAdminProfile(1, 1), &ListInput{Status: models.MembershipPending})
		require.NoError(t, err)
		assert.Equal(t, int64(1), out.Total)
	})

	t.Run("tenant roles cannot list members", func(t *testing.T) {
		_, err := svc.List(ctx, tenantProfile(1), &ListInput{})
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestMemberApproval(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMemberService(repositories.NewCompanyRepository(db))
	ctx := context.Background()

	pending := seedCompany(t, db, "Yogya Trans", 1, models.MembershipPending)

	t.Run("pending company becomes active", func(t *testing.T) {
		company, err := svc.Approve(ctx, adminProfile(), pending.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MembershipActive, company.MembershipStatus)
	})

	t.Run("approving twice is an invalid transition", func(t *testing.T) {
		_, err := svc.Approve(ctx, adminProfile(), pending.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("active company can be deactivated", func(t *testing.T) {
		company, err := svc.Deactivate(ctx, adminProfile(), pending.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MembershipInactive, company.MembershipStatus)
	})

	t.Run("inactive company cannot be deactivated again", func(t *testing.T) {
		_, err := svc.Deactivate(ctx, adminProfile(), pending.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestMemberRegionIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMemberService(repositories.NewCompanyRepository(db))
	ctx := context.Background()

	other := seedCompany(t, db, "Denpasar Wheels", 2, models.MembershipPending)

	// A region admin probing another region's ID reads not-found, never a
	// permission hint that the ID exists.
	_, err := svc.GetByID(ctx, dpcAdminProfile(1, 1), other.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	_, err = svc.Approve(ctx, dpcAdminProfile(1, 1), other.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	// The platform admin still reaches it
	company, err := svc.GetByID(ctx, adminProfile(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, company.ID)
}

func TestMemberVerify(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMemberService(repositories.NewCompanyRepository(db))

	company := seedCompany(t, db, "Bandung Prima", 1, models.MembershipActive)
	verified, err := svc.Verify(context.Background(), adminProfile(), company.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}
