package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/core/authz"
	"asperda-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finance service errors
var (
	ErrRecordNotFound    = errors.New("finance record not found")
	ErrInvalidRecordType = errors.New("invalid record type")
)

// FinanceService handles the tenant-scoped ledger. CompanyID is always taken
// from the caller's resolved profile, never from the request, so a record can
// only ever land in the creating caller's tenant.
type FinanceService struct {
	financeRepo *repositories.FinanceRepository
	storage     FileStorage
}

// NewFinanceService creates a new finance service
func NewFinanceService(financeRepo *repositories.FinanceRepository, storage FileStorage) *FinanceService {
	return &FinanceService{
		financeRepo: financeRepo,
		storage:     storage,
	}
}

// CreateRecordInput represents create record input
type CreateRecordInput struct {
	Type        string    `json:"type" validate:"required,oneof=income expense"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Status      string    `json:"status,omitempty"`
	RecordDate  time.Time `json:"record_date"`
}

// ProofFile is an optional attachment for a ledger entry
type ProofFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Create creates a ledger entry for the caller's tenant. The proof upload is
// best-effort: a storage failure logs a warning and the record still saves.
func (s *FinanceService) Create(ctx context.Context, profile domain.Profile, input *CreateRecordInput, proof *ProofFile) (*models.FinanceRecord, error) {
	scope, err := authz.Authorize(profile, authz.ResourceFinanceRecords)
	if err != nil {
		return nil, err
	}

	if input.Type != models.FinanceIncome && input.Type != models.FinanceExpense {
		return nil, ErrInvalidRecordType
	}

	status := input.Status
	if status == "" {
		status = models.FinancePaid
	}
	if status != models.FinancePaid && status != models.FinancePending {
		return nil, domain.ErrInvalidInput
	}

	recordDate := input.RecordDate
	if recordDate.IsZero() {
		recordDate = time.Now()
	}

	record := &models.FinanceRecord{
		CompanyID:   *scope.CompanyID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Amount:      input.Amount,
		Status:      status,
		RecordedBy:  profile.UserID,
		RecordDate:  recordDate,
	}

	if proof != nil && s.storage != nil {
		objectName := fmt.Sprintf("finance/%d/%s-%s", record.CompanyID, uuid.New().String(), proof.Name)
		url, err := s.storage.Upload(ctx, objectName, proof.Data, proof.ContentType)
		if err != nil {
			log.Printf("⚠️ Proof upload failed, saving record without attachment: %v", err)
		} else {
			record.ProofURL = url
		}
	}

	if err := s.financeRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// RecordListInput represents record list input
type RecordListInput struct {
	Type  string
	Page  int
	Limit int
}

// RecordListOutput represents record list output
type RecordListOutput struct {
	Records []*models.FinanceRecord `json:"records"`
	Total   int64                   `json:"total"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
}

// List lists the caller tenant's ledger entries
func (s *FinanceService) List(ctx context.Context, profile domain.Profile, input *RecordListInput) (*RecordListOutput, error) {
	scope, err := authz.Authorize(profile, authz.ResourceFinanceRecords)
	if err != nil {
		return nil, err
	}

	if input.Type != "" && input.Type != models.FinanceIncome && input.Type != models.FinanceExpense {
		return nil, ErrInvalidRecordType
	}

	normalizePage(&input.Page, &input.Limit)
	offset := (input.Page - 1) * input.Limit

	records, total, err := s.financeRepo.List(ctx, scope, input.Type, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	return &RecordListOutput{
		Records: records,
		Total:   total,
		Page:    input.Page,
		Limit:   input.Limit,
	}, nil
}

// Summary represents ledger totals for a tenant
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// GetSummary sums the caller tenant's ledger
func (s *FinanceService) GetSummary(ctx context.Context, profile domain.Profile) (*Summary, error) {
	scope, err := authz.Authorize(profile, authz.ResourceFinanceRecords)
	if err != nil {
		return nil, err
	}

	income, err := s.financeRepo.SumByType(ctx, scope, models.FinanceIncome)
	if err != nil {
		return nil, err
	}
	expense, err := s.financeRepo.SumByType(ctx, scope, models.FinanceExpense)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income - expense,
	}, nil
}

// Delete removes a ledger entry belonging to the caller's tenant. A record
// of another tenant reads as not found.
func (s *FinanceService) Delete(ctx context.Context, profile domain.Profile, id uint) error {
	scope, err := authz.Authorize(profile, authz.ResourceFinanceRecords)
	if err != nil {
		return err
	}

	record, err := s.financeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if record.CompanyID != *scope.CompanyID {
		return ErrRecordNotFound
	}

	return s.financeRepo.Delete(ctx, id)
}
