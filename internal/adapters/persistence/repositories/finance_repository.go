package repositories

import (
	"context"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/authz"

	"gorm.io/gorm"
)

// FinanceRepository handles finance record data access
type FinanceRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

// Create creates a new finance record
func (r *FinanceRepository) Create(ctx context.Context, record *models.FinanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID gets a record by ID
func (r *FinanceRepository) GetByID(ctx context.Context, id uint) (*models.FinanceRecord, error) {
	var record models.FinanceRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List lists records within the caller's scope, optionally by type
func (r *FinanceRepository) List(ctx context.Context, scope authz.Scope, recordType string, offset, limit int) ([]*models.FinanceRecord, int64, error) {
	var records []*models.FinanceRecord
	var total int64

	query := scope.Apply(r.db.WithContext(ctx).Model(&models.FinanceRecord{}))
	if recordType != "" {
		query = query.Where("type = ?", recordType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("record_date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error

	return records, total, err
}

// Delete soft deletes a record
func (r *FinanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FinanceRecord{}, id).Error
}

// SumByType sums record amounts of one type within the caller's scope
func (r *FinanceRepository) SumByType(ctx context.Context, scope authz.Scope, recordType string) (float64, error) {
	var total float64
	err := scope.Apply(r.db.WithContext(ctx).Model(&models.FinanceRecord{})).
		Where("type = ?", recordType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
