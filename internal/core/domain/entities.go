package domain

// Role represents a caller role in the system
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleDpcAdmin   Role = "DPC_ADMIN"
	RoleOwner      Role = "OWNER"
	RoleAdmin      Role = "ADMIN"
	RoleDriver     Role = "DRIVER"
	RoleMitra      Role = "MITRA"
	RolePartner    Role = "PARTNER"
)

// Profile represents a resolved caller identity: who is asking, with which
// role, and for which tenant. CompanyID and DpcID are nil for platform-level
// accounts (SUPER_ADMIN) that are not bound to a member company.
type Profile struct {
	UserID    uint
	Role      Role
	CompanyID *uint
	DpcID     *uint
}

// IsTenant reports whether the caller belongs to a member company.
func (p Profile) IsTenant() bool {
	return p.CompanyID != nil
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
