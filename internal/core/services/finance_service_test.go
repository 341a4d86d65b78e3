package services

import (
	"context"
	"testing"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(repositories.NewFinanceRepository(db), nil)
	ctx := context.Background()

	t.Run("record lands in the caller's tenant", func(t *testing.T) {
		record, err := svc.Create(ctx, tenantProfile(5), &CreateRecordInput{
			Type:   models.FinanceIncome,
			Title:  "Avanza weekly rental",
			Amount: 2450000,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, uint(5), record.CompanyID)
		assert.Equal(t, models.FinancePaid, record.Status, "status defaults to paid")
		assert.False(t, record.RecordDate.IsZero())
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, tenantProfile(5), &CreateRecordInput{
			Type: "transfer", Title: "x", Amount: 1,
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidRecordType)
	})

	t.Run("admins have no tenant ledger", func(t *testing.T) {
		_, err := svc.Create(ctx, adminProfile(), &CreateRecordInput{
			Type: models.FinanceIncome, Title: "x", Amount: 1,
		}, nil)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestFinanceListIsTenantScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(repositories.NewFinanceRepository(db), nil)
	ctx := context.Background()

	mustCreate := func(companyID uint, typ string, amount float64) {
		t.Helper()
		_, err := svc.Create(ctx, tenantProfile(companyID), &CreateRecordInput{
			Type: typ, Title: "entry", Amount: amount,
		}, nil)
		require.NoError(t, err)
	}

	mustCreate(5, models.FinanceIncome, 1000000)
	mustCreate(5, models.FinanceExpense, 400000)
	mustCreate(9, models.FinanceIncome, 9999999)

	out, err := svc.List(ctx, tenantProfile(5), &RecordListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	for _, record := range out.Records {
		assert.Equal(t, uint(5), record.CompanyID)
	}

	out, err = svc.List(ctx, tenantProfile(5), &RecordListInput{Type: models.FinanceExpense})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)

	summary, err := svc.GetSummary(ctx, tenantProfile(5))
	require.NoError(t, err)
	assert.Equal(t, float64(1000000), summary.TotalIncome)
	assert.Equal(t, float64(400000), summary.TotalExpense)
	assert.Equal(t, float64(600000), summary.Balance)
}

func TestFinanceDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFinanceService(repositories.NewFinanceRepository(db), nil)
	ctx := context.Background()

	record, err := svc.Create(ctx, tenantProfile(5), &CreateRecordInput{
		Type: models.FinanceExpense, Title: "Oil change", Amount: 350000,
	}, nil)
	require.NoError(t, err)

	// Another tenant's record reads as not found
	err = svc.Delete(ctx, tenantProfile(9), record.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, svc.Delete(ctx, tenantProfile(5), record.ID))

	out, err := svc.List(ctx, tenantProfile(5), &RecordListInput{})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
}
