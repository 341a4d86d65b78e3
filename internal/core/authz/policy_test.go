package authz

import (
	"testing"

	"asperda-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestAuthorizeMembers(t *testing.T) {
	t.Run("super admin sees all tenants", func(t *testing.T) {
		scope, err := Authorize(domain.Profile{Role: domain.RoleSuperAdmin}, ResourceMembers)
		require.NoError(t, err)
		assert.True(t, scope.All)
	})

	t.Run("dpc admin is scoped to own region", func(t *testing.T) {
		p := domain.Profile{Role: domain.RoleDpcAdmin, CompanyID: uintPtr(4), DpcID: uintPtr(7)}
		scope, err := Authorize(p, ResourceMembers)
		require.NoError(t, err)
		assert.False(t, scope.All)
		require.NotNil(t, scope.DpcID)
		assert.Equal(t, uint(7), *scope.DpcID)
	})

	t.Run("dpc admin without a company is denied", func(t *testing.T) {
		_, err := Authorize(domain.Profile{Role: domain.RoleDpcAdmin}, ResourceMembers)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("all non-admin roles are denied", func(t *testing.T) {
		for _, role := range []domain.Role{
			domain.RoleOwner, domain.RoleAdmin, domain.RoleDriver,
			domain.RoleMitra, domain.RolePartner,
		} {
			p := domain.Profile{Role: role, CompanyID: uintPtr(1)}
			_, err := Authorize(p, ResourceMembers)
			assert.ErrorIs(t, err, domain.ErrAccessDenied, "role %s", role)
		}
	})
}

func TestAuthorizeBlacklistReports(t *testing.T) {
	scope, err := Authorize(domain.Profile{Role: domain.RoleSuperAdmin}, ResourceBlacklistReports)
	require.NoError(t, err)
	assert.True(t, scope.All)

	// Row narrowing for DPC admins is the persistence layer's job; the core
	// only marks the scope as delegated.
	p := domain.Profile{Role: domain.RoleDpcAdmin, CompanyID: uintPtr(2), DpcID: uintPtr(3)}
	scope, err = Authorize(p, ResourceBlacklistReports)
	require.NoError(t, err)
	assert.True(t, scope.Delegated)
	assert.False(t, scope.All)

	_, err = Authorize(domain.Profile{Role: domain.RoleOwner, CompanyID: uintPtr(1)}, ResourceBlacklistReports)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestAuthorizeDpcRegions(t *testing.T) {
	_, err := Authorize(domain.Profile{Role: domain.RoleSuperAdmin}, ResourceDpcRegions)
	assert.NoError(t, err)

	for _, role := range []domain.Role{domain.RoleDpcAdmin, domain.RoleOwner, domain.RoleAdmin} {
		p := domain.Profile{Role: role, CompanyID: uintPtr(1), DpcID: uintPtr(1)}
		_, err := Authorize(p, ResourceDpcRegions)
		assert.ErrorIs(t, err, domain.ErrAccessDenied, "role %s", role)
	}
}

func TestAuthorizeFinanceRecords(t *testing.T) {
	t.Run("tenant roles see own company only", func(t *testing.T) {
		for _, role := range []domain.Role{
			domain.RoleOwner, domain.RoleAdmin, domain.RoleDriver,
			domain.RoleMitra, domain.RolePartner,
		} {
			p := domain.Profile{Role: role, CompanyID: uintPtr(9)}
			scope, err := Authorize(p, ResourceFinanceRecords)
			require.NoError(t, err, "role %s", role)
			require.NotNil(t, scope.CompanyID)
			assert.Equal(t, uint(9), *scope.CompanyID)
		}
	})

	t.Run("platform admins have no tenant ledger", func(t *testing.T) {
		_, err := Authorize(domain.Profile{Role: domain.RoleSuperAdmin}, ResourceFinanceRecords)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)

		p := domain.Profile{Role: domain.RoleDpcAdmin, CompanyID: uintPtr(1), DpcID: uintPtr(1)}
		_, err = Authorize(p, ResourceFinanceRecords)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("tenant role without a company is denied", func(t *testing.T) {
		_, err := Authorize(domain.Profile{Role: domain.RoleOwner}, ResourceFinanceRecords)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestAuthorizeUnknownResource(t *testing.T) {
	_, err := Authorize(domain.Profile{Role: domain.RoleSuperAdmin}, Resource("vehicles"))
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}
