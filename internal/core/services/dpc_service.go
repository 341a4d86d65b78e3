package services

import (
	"context"
	"errors"
	"log"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// DpcService handles regional chapter administration. Listing is public to
// authenticated users (registration needs it); writes are policy-gated.
type DpcService struct {
	dpcRepo     *repositories.DpcRepository
	companyRepo repositories.CompanyRepository
}

// NewDpcService creates a new DPC region service
func NewDpcService(dpcRepo *repositories.DpcRepository, companyRepo repositories.CompanyRepository) *DpcService {
	return &DpcService{
		dpcRepo:     dpcRepo,
		companyRepo: companyRepo,
	}
}

// List lists all regions
func (s *DpcService) List(ctx context.Context) ([]*models.DpcRegion, error) {
	return s.dpcRepo.List(ctx)
}

// CreateRegionInput represents region creation input
type CreateRegionInput struct {
	Name     string `json:"name" validate:"required"`
	Province string `json:"province" validate:"required"`
}

// Create creates a new region (super admin only)
func (s *DpcService) Create(ctx context.Context, profile domain.Profile, input *CreateRegionInput) (*models.DpcRegion, error) {
	if _, err := authz.Authorize(profile, authz.ResourceDpcRegions); err != nil {
		return nil, err
	}

	region := &models.DpcRegion{
		Name:     input.Name,
		Province: input.Province,
	}

	if err := s.dpcRepo.Create(ctx, region); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}

	log.Printf("✅ DPC region created: %s (%s)", region.Name, region.Province)
	return region, nil
}

// Delete removes a region (super admin only). A region with member
// companies cannot be deleted: every company must keep exactly one region.
func (s *DpcService) Delete(ctx context.Context, profile domain.Profile, id uint) error {
	if _, err := authz.Authorize(profile, authz.ResourceDpcRegions); err != nil {
		return err
	}

	if _, err := s.dpcRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	count, err := s.companyRepo.CountByDpcID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrRegionNotEmpty
	}

	return s.dpcRepo.Delete(ctx, id)
}
