package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/core/services"
	"asperda-backend/internal/pkg/pagination"
	"asperda-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BlacklistHandler handles blacklist report and registry endpoints
type BlacklistHandler struct {
	blacklistService *services.BlacklistService
	storage          services.FileStorage
}

// NewBlacklistHandler creates a new blacklist handler
func NewBlacklistHandler(blacklistService *services.BlacklistService, storage services.FileStorage) *BlacklistHandler {
	return &BlacklistHandler{
		blacklistService: blacklistService,
		storage:          storage,
	}
}

// SubmitReportRequest represents report submission request body
type SubmitReportRequest struct {
	TargetName  string `json:"target_name" form:"target_name"`
	TargetNIK   string `json:"target_nik" form:"target_nik"`
	TargetPhone string `json:"target_phone" form:"target_phone"`
	Reason      string `json:"reason" form:"reason"`
}

// Submit handles report submission
// @Summary Submit blacklist report
// @Description Submit a problem-renter report on behalf of the caller's company, with optional evidence file
// @Tags Blacklist
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /blacklist/reports [post]
func (h *BlacklistHandler) Submit(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	var req SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TargetName == "" {
		return response.BadRequest(c, "Target name is required")
	}
	if req.TargetNIK == "" {
		return response.BadRequest(c, "Target NIK is required")
	}
	if req.Reason == "" {
		return response.BadRequest(c, "Reason is required")
	}

	input := &services.SubmitInput{
		TargetName:  strings.TrimSpace(req.TargetName),
		TargetNIK:   strings.TrimSpace(req.TargetNIK),
		TargetPhone: strings.TrimSpace(req.TargetPhone),
		Reason:      strings.TrimSpace(req.Reason),
	}

	// Evidence upload is best-effort: the report is accepted without it
	input.EvidenceURL = h.uploadEvidence(c, profile.UserID)

	report, err := h.blacklistService.Submit(c.Context(), profile, input)
	if err != nil {
		return mapDomainError(c, err, "Failed to submit report")
	}

	return response.Created(c, "Report submitted for review", report)
}

// ListForReview handles scoped review listing
// @Summary List blacklist reports for review
// @Description List reports visible to the reviewing admin
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Report status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /blacklist/reports [get]
func (h *BlacklistHandler) ListForReview(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	params := pagination.GetParams(c)
	input := &services.ReportListInput{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	result, err := h.blacklistService.ListForReview(c.Context(), profile, input)
	if err != nil {
		return mapDomainError(c, err, "Failed to list reports")
	}

	return response.Success(c, "Reports retrieved successfully", result)
}

// ListMine handles the caller tenant's own reports
// @Summary List my submitted reports
// @Description List reports submitted by the caller's company
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /blacklist/reports/my [get]
func (h *BlacklistHandler) ListMine(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	params := pagination.GetParams(c)
	input := &services.ReportListInput{
		Page:  params.Page,
		Limit: params.Limit,
	}

	result, err := h.blacklistService.ListMine(c.Context(), profile, input)
	if err != nil {
		return mapDomainError(c, err, "Failed to list reports")
	}

	return response.Success(c, "Reports retrieved successfully", result)
}

// Approve handles report approval
// @Summary Approve blacklist report
// @Description Publish a pending report to the cross-tenant registry
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Success 202 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blacklist/reports/{id}/approve [put]
func (h *BlacklistHandler) Approve(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid report ID")
	}

	entry, err := h.blacklistService.Approve(c.Context(), profile, uint(id))
	if err != nil {
		var partial *domain.PartialApprovalError
		if errors.As(err, &partial) {
			// The registry entry exists; only the source report status is
			// stale. Reconciliation finishes it, so this is not a failure
			// the caller should retry.
			log.Printf("⚠️ %v", partial)
			return c.Status(fiber.StatusAccepted).JSON(response.Response{
				Success: true,
				Message: "Report published to registry; status update pending and will complete automatically",
				Data: fiber.Map{
					"report_id": partial.ReportID,
					"entry_id":  partial.GlobalID,
				},
			})
		}
		if errors.Is(err, services.ErrReportNotFound) {
			return response.NotFound(c, "Report not found")
		}
		return mapDomainError(c, err, "Failed to approve report")
	}

	return response.Success(c, "Report approved and published", entry)
}

// Reject handles report rejection
// @Summary Reject blacklist report
// @Description Mark a pending report rejected without publishing
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /blacklist/reports/{id}/reject [put]
func (h *BlacklistHandler) Reject(c *fiber.Ctx) error {
	profile, err := requireProfile(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid report ID")
	}

	report, err := h.blacklistService.Reject(c.Context(), profile, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return response.NotFound(c, "Report not found")
		}
		return mapDomainError(c, err, "Failed to reject report")
	}

	return response.Success(c, "Report rejected", report)
}

// ListGlobal handles registry listing
// @Summary List global blacklist
// @Description List the published cross-tenant registry
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /blacklist/global [get]
func (h *BlacklistHandler) ListGlobal(c *fiber.Ctx) error {
	if _, err := requireProfile(c); err != nil {
		return err
	}

	params := pagination.GetParams(c)
	result, err := h.blacklistService.ListGlobal(c.Context(), params.Page, params.Limit)
	if err != nil {
		return mapDomainError(c, err, "Failed to list registry")
	}

	return response.Success(c, "Registry retrieved successfully", result)
}

// SearchGlobal handles registry search by NIK
// @Summary Search global blacklist
// @Description Find published entries by national ID number
// @Tags Blacklist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param nik query string true "National ID number"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /blacklist/global/search [get]
func (h *BlacklistHandler) SearchGlobal(c *fiber.Ctx) error {
	if _, err := requireProfile(c); err != nil {
		return err
	}

	nik := strings.TrimSpace(c.Query("nik"))
	if nik == "" {
		return response.BadRequest(c, "NIK is required")
	}

	entries, err := h.blacklistService.SearchGlobal(c.Context(), nik)
	if err != nil {
		return mapDomainError(c, err, "Failed to search registry")
	}

	return response.Success(c, "Search completed", fiber.Map{
		"entries": entries,
		"found":   len(entries) > 0,
	})
}

// uploadEvidence stores the optional evidence attachment and returns its URL,
// or "" when no file was sent or the upload failed.
func (h *BlacklistHandler) uploadEvidence(c *fiber.Ctx, userID uint) string {
	if h.storage == nil {
		return ""
	}

	fileHeader, err := c.FormFile("evidence")
	if err != nil {
		return ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("⚠️ Could not open evidence upload: %v", err)
		return ""
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("⚠️ Could not read evidence upload: %v", err)
		return ""
	}

	objectName := fmt.Sprintf("evidence/%d/%s-%s", userID, uuid.New().String(), fileHeader.Filename)
	url, err := h.storage.Upload(c.Context(), objectName, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("⚠️ Evidence upload failed, accepting report without attachment: %v", err)
		return ""
	}

	return url
}
