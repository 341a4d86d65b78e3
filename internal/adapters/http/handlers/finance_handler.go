package handlers

import (
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/pagination"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FinanceHandler handles tenant ledger endpoints
type FinanceHandler struct {
	financeService *services.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// CreateRecordRequest represents ledger entry request body
type CreateRecordRequest struct {
	Type        string  `json:"type" form:"type"`
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Amount      float64 `json:"amount" form:"amount"`
	Status      string  `json:"status" form:"status"`
	RecordDate  string  `json:"record_date" form:"record_date"`
}

// Create handles ledger entry creation
// @Summary Create finance record
// @Description Create an income or expense entry for the caller's company, with optional proof file
// @Tags Finance
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /finance [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	var req CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Type == "" {
		return response.BadRequest(c, "Record type is required")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}

	input := &services.CreateRecordInput{
		Type:        strings.TrimSpace(req.Type),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Status:      strings.TrimSpace(req.Status),
	}

	if req.RecordDate != "" {
		recordDate, err := time.Parse("2006-01-02", req.RecordDate)
		if err != nil {
			return response.BadRequest(c, "Record date must be YYYY-MM-DD")
		}
		input.RecordDate = recordDate
	}

	record, err := h.financeService.Create(c.Context(), profile, input, h.readProof(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecordType) {
			return response.BadRequest(c, "Record type must be income or expense")
		}
		return mapDomainError(c, err, "Failed to create record")
	}

	return response.Created(c, "Record created successfully", record)
}

// List handles ledger listing
// @Summary List finance records
// @Description List the caller company's ledger entries
// @Tags Finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type query string false "Record type filter (income or expense)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /finance [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	params := pagination.GetParams(c)
	input := &services.RecordListInput{
		Type:  c.Query("type"),
		Page:  params.Page,
		Limit: params.Limit,
	}

	result, err := h.financeService.List(c.Context(), profile, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecordType) {
			return response.BadRequest(c, "Record type must be income or expense")
		}
		return mapDomainError(c, err, "Failed to list records")
	}

	return response.Success(c, "Records retrieved successfully", result)
}

// GetSummary handles ledger totals
// @Summary Get finance summary
// @Description Sum the caller company's income, expense, and balance
// @Tags Finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /finance/summary [get]
func (h *FinanceHandler) GetSummary(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	summary, err := h.financeService.GetSummary(c.Context(), profile)
	if err != nil {
		return mapDomainError(c, err, "Failed to get summary")
	}

	return response.Success(c, "Summary retrieved successfully", summary)
}

// Delete handles ledger entry deletion
// @Summary Delete finance record
// @Description Delete a ledger entry belonging to the caller's company
// @Tags Finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /finance/{id} [delete]
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid record ID")
	}

	if err := h.financeService.Delete(c.Context(), profile, uint(id)); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return response.NotFound(c, "Record not found")
		}
		return mapDomainError(c, err, "Failed to delete record")
	}

	return response.Success(c, "Record deleted successfully", nil)
}

// readProof extracts the optional proof attachment from the request
func (h *FinanceHandler) readProof(c *fiber.Ctx) *services.ProofFile {
	fileHeader, err := c.FormFile("proof")
	if err != nil {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("⚠️ Could not open proof upload: %v", err)
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("⚠️ Could not read proof upload: %v", err)
		return nil
	}

	return &services.ProofFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
}
