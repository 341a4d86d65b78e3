// Package authz resolves which rows a caller may see for a resource kind.
//
// The whole policy lives in one declarative table (role x resource -> scope
// builder) so adding a role or resource is a table edit. The returned Scope
// is a request-shaping predicate only: the backing store keeps enforcing its
// own row-level policy as the authoritative second layer, and the core never
// assumes its filter alone is sufficient.
package authz

import (
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Resource identifies a kind of record the caller wants to read or write.
type Resource string

const (
	ResourceMembers          Resource = "members"
	ResourceBlacklistReports Resource = "blacklist_reports"
	ResourceDpcRegions       Resource = "dpc_regions"
	ResourceFinanceRecords   Resource = "finance_records"
)

// Scope is the predicate to apply to the backing query. Zero rows under an
// applied scope is a valid successful outcome, distinct from AccessDenied.
type Scope struct {
	// All leaves the query unrestricted.
	All bool
	// DpcID restricts to companies of one region (column dpc_id).
	DpcID *uint
	// CompanyID restricts to one tenant's rows (column company_id).
	CompanyID *uint
	// Delegated marks the row-level narrowing as the persistence layer's
	// documented responsibility; the core applies no filter of its own.
	Delegated bool
}

// Apply narrows tx according to the scope.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	if s.All || s.Delegated {
		return tx
	}
	if s.DpcID != nil {
		tx = tx.Where("dpc_id = ?", *s.DpcID)
	}
	if s.CompanyID != nil {
		tx = tx.Where("company_id = ?", *s.CompanyID)
	}
	return tx
}

type builder func(p domain.Profile) (Scope, error)

func allowAll(domain.Profile) (Scope, error) {
	return Scope{All: true}, nil
}

// ownRegion scopes to the region of the caller's own company.
func ownRegion(p domain.Profile) (Scope, error) {
	if p.DpcID == nil {
		return Scope{}, domain.ErrAccessDenied
	}
	return Scope{DpcID: p.DpcID}, nil
}

// delegated passes through; the store narrows rows server-side.
func delegated(domain.Profile) (Scope, error) {
	return Scope{Delegated: true}, nil
}

// ownCompany scopes to the caller's own tenant.
func ownCompany(p domain.Profile) (Scope, error) {
	if p.CompanyID == nil {
		return Scope{}, domain.ErrAccessDenied
	}
	return Scope{CompanyID: p.CompanyID}, nil
}

// policy is the visibility matrix. A missing cell means AccessDenied.
var policy = map[Resource]map[domain.Role]builder{
	ResourceMembers: {
		domain.RoleSuperAdmin: allowAll,
		domain.RoleDpcAdmin:   ownRegion,
	},
	ResourceBlacklistReports: {
		domain.RoleSuperAdmin: allowAll,
		domain.RoleDpcAdmin:   delegated,
	},
	ResourceDpcRegions: {
		domain.RoleSuperAdmin: allowAll,
	},
	ResourceFinanceRecords: {
		domain.RoleOwner:   ownCompany,
		domain.RoleAdmin:   ownCompany,
		domain.RoleDriver:  ownCompany,
		domain.RoleMitra:   ownCompany,
		domain.RolePartner: ownCompany,
	},
}

// Authorize returns the scope predicate for the caller on the resource, or
// domain.ErrAccessDenied when the role has no visibility at all.
func Authorize(p domain.Profile, r Resource) (Scope, error) {
	rules, ok := policy[r]
	if !ok {
		return Scope{}, domain.ErrAccessDenied
	}
	build, ok := rules[p.Role]
	if !ok {
		return Scope{}, domain.ErrAccessDenied
	}
	return build(p)
}

// TenantScope is the own-company rule for tenant-scoped resources that sit
// outside the matrix (seasonal rates share finance visibility).
func TenantScope(p domain.Profile) (Scope, error) {
	return ownCompany(p)
}
