package repositories

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"

	"gorm.io/gorm"
)

// companyRepository implements CompanyRepository with GORM
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Create creates a new company
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// GetByID gets a company by ID with its region
func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).
		Preload("Dpc").
		First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List lists companies within the caller's scope, optionally by membership
// status, with pagination
func (r *companyRepository) List(ctx context.Context, scope authz.Scope, status string, offset, limit int) ([]*models.Company, int64, error) {
	var companies []*models.Company
	var total int64

	query := scope.Apply(r.db.WithContext(ctx).Model(&models.Company{}))
	if status != "" {
		query = query.Where("membership_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Dpc").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&companies).Error

	return companies, total, err
}

// Update updates a company
func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// CountByDpcID counts companies in a region
func (r *companyRepository) CountByDpcID(ctx context.Context, dpcID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("dpc_id = ?", dpcID).
		Count(&count).Error
	return count, err
}
