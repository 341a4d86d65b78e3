package services

import (
	"context"
	"errors"
	"fmt"

	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ProfileService resolves an authenticated caller to its Profile: role plus
// tenant (company) and region affiliation. Callers cache the result for the
// duration of one logical operation (the auth middleware stores it in the
// request locals); role does not change mid-operation.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Resolve looks up the caller's profile. A missing or deactivated account
// maps to ErrUnauthenticated ("log in again"); a backend failure is wrapped
// and surfaced as-is ("retry"), so the two stay distinguishable.
func (s *ProfileService) Resolve(ctx context.Context, userID uint) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	profile := &domain.Profile{
		UserID:    user.ID,
		Role:      domain.Role(user.Role),
		CompanyID: user.CompanyID,
	}
	if user.Company != nil {
		dpcID := user.Company.DpcID
		profile.DpcID = &dpcID
	}

	return profile, nil
}
