package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone     string         `gorm:"size:20" json:"phone"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'OWNER'" json:"role"`
	CompanyID *uint          `gorm:"index" json:"company_id"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	CompanyID   *uint     `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.Company != nil {
		resp.CompanyName = u.Company.Name
	}
	return resp
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Association Tables
// ============================================================

// Membership status
const (
	MembershipPending  = "PENDING"
	MembershipActive   = "ACTIVE"
	MembershipInactive = "INACTIVE"
)

// DpcRegion represents dpc_regions table (regional chapters)
type DpcRegion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Province  string         `gorm:"size:100;not null" json:"province"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DpcRegion) TableName() string {
	return "dpc_regions"
}

// Company represents companies table (a rental-business member, the tenant)
type Company struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"size:150;not null" json:"name"`
	DpcID            uint           `gorm:"not null;index" json:"dpc_id"`
	MembershipStatus string         `gorm:"size:20;not null;default:'PENDING';index" json:"membership_status"`
	IsVerified       bool           `gorm:"default:false" json:"is_verified"`
	Address          string         `gorm:"type:text" json:"address"`
	Phone            string         `gorm:"size:20" json:"phone"`
	Email            string         `gorm:"size:100" json:"email"`
	FleetSize        int            `gorm:"default:0" json:"fleet_size"`
	EstablishedYear  int            `json:"established_year"`
	LogoURL          string         `gorm:"size:255" json:"logo_url"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Dpc *DpcRegion `gorm:"foreignKey:DpcID" json:"dpc,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyResponse DTO
type CompanyResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	DpcID            uint      `json:"dpc_id"`
	DpcName          string    `json:"dpc_name,omitempty"`
	MembershipStatus string    `json:"membership_status"`
	IsVerified       bool      `json:"is_verified"`
	Address          string    `json:"address,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	FleetSize        int       `json:"fleet_size"`
	EstablishedYear  int       `json:"established_year,omitempty"`
	LogoURL          string    `json:"logo_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (c *Company) ToResponse() *CompanyResponse {
	resp := &CompanyResponse{
		ID:               c.ID,
		Name:             c.Name,
		DpcID:            c.DpcID,
		MembershipStatus: c.MembershipStatus,
		IsVerified:       c.IsVerified,
		Address:          c.Address,
		Phone:            c.Phone,
		Email:            c.Email,
		FleetSize:        c.FleetSize,
		EstablishedYear:  c.EstablishedYear,
		LogoURL:          c.LogoURL,
		CreatedAt:        c.CreatedAt,
	}
	if c.Dpc != nil {
		resp.DpcName = c.Dpc.Name
	}
	return resp
}

// ============================================================
// Blacklist Tables
// ============================================================

// Report status (monotonic: pending -> approved | rejected)
const (
	ReportPending  = "pending"
	ReportApproved = "approved"
	ReportRejected = "rejected"
)

// BlacklistReport represents blacklist_reports table: a tenant's accusation
// against a third party, pending review before cross-tenant publication.
type BlacklistReport struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ReportedByCompanyID uint       `gorm:"not null;index" json:"reported_by_company_id"`
	TargetName          string     `gorm:"size:100;not null" json:"target_name"`
	TargetNIK           string     `gorm:"size:20;not null;index" json:"target_nik"`
	TargetPhone         string     `gorm:"size:20" json:"target_phone"`
	Reason              string     `gorm:"type:text;not null" json:"reason"`
	EvidenceURL         string     `gorm:"size:255" json:"evidence_url"`
	Status              string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy          *uint      `json:"reviewed_by"`
	ReviewedAt          *time.Time `json:"reviewed_at"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Reporter *Company `gorm:"foreignKey:ReportedByCompanyID" json:"reporter,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (BlacklistReport) TableName() string {
	return "blacklist_reports"
}

func (r *BlacklistReport) IsTerminal() bool {
	return r.Status != ReportPending
}

// GlobalBlacklist represents global_blacklist table: the published,
// cross-tenant registry. Rows exist only as the side effect of approving a
// report and are immutable afterward. The unique index on ReportID keeps the
// report-to-entry mapping 1:1 even under concurrent approvals.
type GlobalBlacklist struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ReportID            uint      `gorm:"uniqueIndex;not null" json:"report_id"`
	FullName            string    `gorm:"size:100;not null" json:"full_name"`
	NIK                 string    `gorm:"size:20;not null;index" json:"nik"`
	Phone               string    `gorm:"size:20" json:"phone"`
	Reason              string    `gorm:"type:text" json:"reason"`
	EvidenceURL         string    `gorm:"size:255" json:"evidence_url"`
	ReportedByCompanyID uint      `gorm:"not null" json:"reported_by_company_id"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (GlobalBlacklist) TableName() string {
	return "global_blacklist"
}

// ============================================================
// Finance Tables
// ============================================================

// Finance record type and status
const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"

	FinancePaid    = "paid"
	FinancePending = "pending"
)

// FinanceRecord represents finance_records table. CompanyID is immutable and
// always the creating caller's tenant.
type FinanceRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	Type        string         `gorm:"size:10;not null" json:"type"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      string         `gorm:"size:10;not null;default:'paid'" json:"status"`
	ProofURL    string         `gorm:"size:255" json:"proof_url"`
	RecordedBy  uint           `gorm:"not null" json:"recorded_by"`
	RecordDate  time.Time      `gorm:"type:date;not null" json:"record_date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Recorder *User    `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
}

func (FinanceRecord) TableName() string {
	return "finance_records"
}

// SeasonalRate represents seasonal_rates table: a tenant's pricing rule for
// a date range (high season, holidays).
type SeasonalRate struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CompanyID  uint           `gorm:"not null;index" json:"company_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	StartDate  time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time      `gorm:"type:date;not null" json:"end_date"`
	Multiplier float64        `gorm:"type:decimal(5,2);not null" json:"multiplier"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SeasonalRate) TableName() string {
	return "seasonal_rates"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&DpcRegion{},
		&Company{},
		&BlacklistReport{},
		&GlobalBlacklist{},
		&FinanceRecord{},
		&SeasonalRate{},
	)
}
