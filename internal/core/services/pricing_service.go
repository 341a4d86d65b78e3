package services

import (
	"context"
	"errors"
	"time"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// Pricing service errors
var (
	ErrRateNotFound     = errors.New("seasonal rate not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")
)

// PricingService handles tenant seasonal pricing rules. Visibility follows
// the tenant ledger rule: own company only.
type PricingService struct {
	rateRepo          *repositories.SeasonalRateRepository
	defaultMultiplier float64
}

// NewPricingService creates a new pricing service
func NewPricingService(rateRepo *repositories.SeasonalRateRepository, defaultMultiplier float64) *PricingService {
	return &PricingService{
		rateRepo:          rateRepo,
		defaultMultiplier: defaultMultiplier,
	}
}

// CreateRateInput represents seasonal rate input
type CreateRateInput struct {
	Name       string    `json:"name" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	Multiplier float64   `json:"multiplier,omitempty"`
}

// Create creates a rate rule for the caller's tenant. A zero multiplier
// falls back to the association-wide default from configuration.
func (s *PricingService) Create(ctx context.Context, profile domain.Profile, input *CreateRateInput) (*models.SeasonalRate, error) {
	scope, err := authz.TenantScope(profile)
	if err != nil {
		return nil, err
	}

	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}

	multiplier := input.Multiplier
	if multiplier <= 0 {
		multiplier = s.defaultMultiplier
	}

	rate := &models.SeasonalRate{
		CompanyID:  *scope.CompanyID,
		Name:       input.Name,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Multiplier: multiplier,
		IsActive:   true,
	}

	if err := s.rateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}

	return rate, nil
}

// List lists the caller tenant's rate rules
func (s *PricingService) List(ctx context.Context, profile domain.Profile) ([]*models.SeasonalRate, error) {
	scope, err := authz.TenantScope(profile)
	if err != nil {
		return nil, err
	}

	return s.rateRepo.ListByCompany(ctx, *scope.CompanyID)
}

// UpdateRateInput represents seasonal rate update input
type UpdateRateInput struct {
	Name       *string    `json:"name,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Multiplier *float64   `json:"multiplier,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

// Update updates a rate rule belonging to the caller's tenant
func (s *PricingService) Update(ctx context.Context, profile domain.Profile, id uint, input *UpdateRateInput) (*models.SeasonalRate, error) {
	rate, err := s.getOwned(ctx, profile, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		rate.Name = *input.Name
	}
	if input.StartDate != nil {
		rate.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		rate.EndDate = *input.EndDate
	}
	if !rate.EndDate.After(rate.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.Multiplier != nil && *input.Multiplier > 0 {
		rate.Multiplier = *input.Multiplier
	}
	if input.IsActive != nil {
		rate.IsActive = *input.IsActive
	}

	if err := s.rateRepo.Update(ctx, rate); err != nil {
		return nil, err
	}

	return rate, nil
}

// Delete removes a rate rule belonging to the caller's tenant
func (s *PricingService) Delete(ctx context.Context, profile domain.Profile, id uint) error {
	if _, err := s.getOwned(ctx, profile, id); err != nil {
		return err
	}
	return s.rateRepo.Delete(ctx, id)
}

// getOwned loads a rate and checks tenant ownership
func (s *PricingService) getOwned(ctx context.Context, profile domain.Profile, id uint) (*models.SeasonalRate, error) {
	scope, err := authz.TenantScope(profile)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}

	if rate.CompanyID != *scope.CompanyID {
		return nil, ErrRateNotFound
	}

	return rate, nil
}
