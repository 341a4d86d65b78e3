package repositories

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DpcRepository handles DPC region data access
type DpcRepository struct {
	db *gorm.DB
}

// NewDpcRepository creates a new DPC region repository
func NewDpcRepository(db *gorm.DB) *DpcRepository {
	return &DpcRepository{db: db}
}

// Create creates a new region
func (r *DpcRepository) Create(ctx context.Context, region *models.DpcRegion) error {
	return r.db.WithContext(ctx).Create(region).Error
}

// GetByID gets a region by ID
func (r *DpcRepository) GetByID(ctx context.Context, id uint) (*models.DpcRegion, error) {
	var region models.DpcRegion
	err := r.db.WithContext(ctx).First(&region, id).Error
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// List lists all regions ordered by name
func (r *DpcRepository) List(ctx context.Context) ([]*models.DpcRegion, error) {
	var regions []*models.DpcRegion
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&regions).Error
	return regions, err
}

// Delete soft deletes a region
func (r *DpcRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DpcRegion{}, id).Error
}
