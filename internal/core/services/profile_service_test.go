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

func TestProfileResolve(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repositories.NewUserRepository(db))
	ctx := context.Background()

	company := seedCompany(t, db, "Bandung Rent", 7, models.MembershipActive)
	user := &models.User{
		FullName:  "Siti Rahma",
		Email:     "siti@bandungrent.id",
		Password:  "hashed",
		Role:      string(domain.RoleOwner),
		CompanyID: &company.ID,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	t.Run("resolves role, tenant, and region", func(t *testing.T) {
		profile, err := svc.Resolve(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOwner, profile.Role)
		require.NotNil(t, profile.CompanyID)
		assert.Equal(t, company.ID, *profile.CompanyID)
		require.NotNil(t, profile.DpcID)
		assert.Equal(t, uint(7), *profile.DpcID)
	})

	t.Run("unknown user is unauthenticated, not a backend failure", func(t *testing.T) {
		_, err := svc.Resolve(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("deactivated account is unauthenticated", func(t *testing.T) {
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		_, err := svc.Resolve(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
