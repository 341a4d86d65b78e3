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

// Member service errors
var (
	ErrCompanyNotFound = errors.New("company not found")
)

// MemberService handles member (company) administration: scoped listing and
// the membership status transitions performed by admins.
type MemberService struct {
	companyRepo repositories.CompanyRepository
}

// NewMemberService creates a new member service
func NewMemberService(companyRepo repositories.CompanyRepository) *MemberService {
	return &MemberService{companyRepo: companyRepo}
}

// ListInput represents member list input
type ListInput struct {
	Status string
	Page   int
	Limit  int
}

// ListOutput represents member list output
type ListOutput struct {
	Companies  []*models.CompanyResponse `json:"companies"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// List lists member companies visible to the caller. The scope predicate
// shapes the query; the store's own row policy remains the second layer.
func (s *MemberService) List(ctx context.Context, profile domain.Profile, input *ListInput) (*ListOutput, error) {
	scope, err := authz.Authorize(profile, authz.ResourceMembers)
	if err != nil {
		return nil, err
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	offset := (input.Page - 1) * input.Limit

	companies, total, err := s.companyRepo.List(ctx, scope, input.Status, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, c.ToResponse())
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Companies:  responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets a member company visible to the caller
func (s *MemberService) GetByID(ctx context.Context, profile domain.Profile, id uint) (*models.Company, error) {
	company, err := s.getInScope(ctx, profile, id)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Approve moves a PENDING company to ACTIVE
func (s *MemberService) Approve(ctx context.Context, profile domain.Profile, id uint) (*models.Company, error) {
	company, err := s.getInScope(ctx, profile, id)
	if err != nil {
		return nil, err
	}

	if company.MembershipStatus != models.MembershipPending {
		return nil, domain.ErrInvalidTransition
	}

	company.MembershipStatus = models.MembershipActive
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	log.Printf("✅ Company approved: %s (ID %d)", company.Name, company.ID)
	return company, nil
}

// Deactivate moves an ACTIVE company to INACTIVE
func (s *MemberService) Deactivate(ctx context.Context, profile domain.Profile, id uint) (*models.Company, error) {
	company, err := s.getInScope(ctx, profile, id)
	if err != nil {
		return nil, err
	}

	if company.MembershipStatus != models.MembershipActive {
		return nil, domain.ErrInvalidTransition
	}

	company.MembershipStatus = models.MembershipInactive
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	log.Printf("🛑 Company deactivated: %s (ID %d)", company.Name, company.ID)
	return company, nil
}

// Verify marks a company's documents as verified
func (s *MemberService) Verify(ctx context.Context, profile domain.Profile, id uint) (*models.Company, error) {
	company, err := s.getInScope(ctx, profile, id)
	if err != nil {
		return nil, err
	}

	company.IsVerified = true
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// getInScope loads a company and checks it falls inside the caller's member
// scope. A company outside the scope reads as not found, not as denied, so
// regional admins cannot probe other regions' IDs.
func (s *MemberService) getInScope(ctx context.Context, profile domain.Profile, id uint) (*models.Company, error) {
	scope, err := authz.Authorize(profile, authz.ResourceMembers)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	if !scope.All && scope.DpcID != nil && company.DpcID != *scope.DpcID {
		return nil, ErrCompanyNotFound
	}

	return company, nil
}
