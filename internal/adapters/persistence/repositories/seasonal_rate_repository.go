package repositories

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeasonalRateRepository handles seasonal rate data access
type SeasonalRateRepository struct {
	db *gorm.DB
}

// NewSeasonalRateRepository creates a new seasonal rate repository
func NewSeasonalRateRepository(db *gorm.DB) *SeasonalRateRepository {
	return &SeasonalRateRepository{db: db}
}

// Create creates a new rate rule
func (r *SeasonalRateRepository) Create(ctx context.Context, rate *models.SeasonalRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

// GetByID gets a rate rule by ID
func (r *SeasonalRateRepository) GetByID(ctx context.Context, id uint) (*models.SeasonalRate, error) {
	var rate models.SeasonalRate
	err := r.db.WithContext(ctx).First(&rate, id).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListByCompany lists a tenant's rate rules
func (r *SeasonalRateRepository) ListByCompany(ctx context.Context, companyID uint) ([]*models.SeasonalRate, error) {
	var rates []*models.SeasonalRate
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_date ASC").
		Find(&rates).Error
	return rates, err
}

// Update updates a rate rule
func (r *SeasonalRateRepository) Update(ctx context.Context, rate *models.SeasonalRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// Delete soft deletes a rate rule
func (r *SeasonalRateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SeasonalRate{}, id).Error
}
