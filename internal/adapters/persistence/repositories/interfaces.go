package repositories

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// CompanyRepository defines company (tenant) repository interface
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	List(ctx context.Context, scope authz.Scope, status string, offset, limit int) ([]*models.Company, int64, error)
	Update(ctx context.Context, company *models.Company) error
	CountByDpcID(ctx context.Context, dpcID uint) (int64, error)
}

// BlacklistReportRepository defines blacklist report repository interface.
// MarkReviewed is conditional on status = pending and returns the number of
// rows affected so callers can detect a lost race.
type BlacklistReportRepository interface {
	Create(ctx context.Context, report *models.BlacklistReport) error
	GetByID(ctx context.Context, id uint) (*models.BlacklistReport, error)
	List(ctx context.Context, scope authz.Scope, status string, offset, limit int) ([]*models.BlacklistReport, int64, error)
	ListByCompany(ctx context.Context, companyID uint, offset, limit int) ([]*models.BlacklistReport, int64, error)
	MarkReviewed(ctx context.Context, id uint, status string, reviewerID *uint) (int64, error)
	ListPendingWithGlobalEntry(ctx context.Context) ([]*models.BlacklistReport, error)
}

// GlobalBlacklistRepository defines global blacklist repository interface.
// Entries are immutable once published; Delete exists only to compensate an
// insert whose source report turned out to be already reviewed, and is never
// exposed through the API.
type GlobalBlacklistRepository interface {
	Create(ctx context.Context, entry *models.GlobalBlacklist) error
	GetByReportID(ctx context.Context, reportID uint) (*models.GlobalBlacklist, error)
	List(ctx context.Context, offset, limit int) ([]*models.GlobalBlacklist, int64, error)
	SearchByNIK(ctx context.Context, nik string) ([]*models.GlobalBlacklist, error)
	Delete(ctx context.Context, id uint) error
}
