package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type leadService interface {
	CreateEnquiry(ctx context.Context, partner *entities.PartnerProfile, input *entities.CreateEnquiryInput) (*entities.PartnerLead, error)
	ApplyPhase(ctx context.Context, partnerID, leadID uuid.UUID, phase entities.SubmissionPhase) (*entities.PartnerLead, error)
	ListForPartner(ctx context.Context, partnerID uuid.UUID, page, limit int) ([]*entities.PartnerLead, utils.PaginationMeta, error)
	ExportLeads(ctx context.Context, partnerID uuid.UUID) ([]byte, error)
}

// LeadHandler handles customer submissions and the partner's lead inbox
type LeadHandler struct {
	leadUsecase leadService
	partners    partnerLookup
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadUsecase leadService, partners partnerLookup) *LeadHandler {
	return &LeadHandler{leadUsecase: leadUsecase, partners: partners}
}

// CreateEnquiry starts a lead for the partner serving this host
// POST /api/leads
func (h *LeadHandler) CreateEnquiry(c *gin.Context) {
	var input entities.CreateEnquiryInput
	if !bindJSON(c, &input) {
		return
	}

	partner, _ := middleware.GetTenant(c)
	lead, err := h.leadUsecase.CreateEnquiry(c.Request.Context(), partner, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, lead)
}

// UpdateEnquiry adds enquiry answers to a lead
// PATCH /api/leads/:id/enquiry
func (h *LeadHandler) UpdateEnquiry(c *gin.Context) {
	var phase entities.EnquiryPhase
	h.applyPhase(c, &phase, func() entities.SubmissionPhase { return phase })
}

// UpdateSurvey records the survey booking of a lead
// PATCH /api/leads/:id/survey
func (h *LeadHandler) UpdateSurvey(c *gin.Context) {
	var phase entities.SurveyPhase
	h.applyPhase(c, &phase, func() entities.SubmissionPhase { return phase })
}

// UpdatePayment records a payment attempt of a lead
// PATCH /api/leads/:id/payment
func (h *LeadHandler) UpdatePayment(c *gin.Context) {
	var phase entities.PaymentPhase
	h.applyPhase(c, &phase, func() entities.SubmissionPhase { return phase })
}

// applyPhase binds into dst and then applies the phase built by get.
func (h *LeadHandler) applyPhase(c *gin.Context, dst interface{}, get func() entities.SubmissionPhase) {
	leadID, ok := uuidParam(c, "id", "lead ID")
	if !ok {
		return
	}
	partner, ok := middleware.GetTenant(c)
	if !ok {
		response.Error(c, domainerrors.NotFound("no partner serves this host"))
		return
	}
	if !bindJSON(c, dst) {
		return
	}

	lead, err := h.leadUsecase.ApplyPhase(c.Request.Context(), partner.ID, leadID, get())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"lead_id":       lead.ID,
		"progress_step": lead.ProgressStep,
	})
}

// ListLeads lists the partner's leads, newest first
// GET /api/partner/leads?page=&limit=
func (h *LeadHandler) ListLeads(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	leads, meta, err := h.leadUsecase.ListForPartner(c.Request.Context(), partnerID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, leads, meta)
}

// ExportLeads downloads the partner's leads as a spreadsheet
// GET /api/partner/leads/export
func (h *LeadHandler) ExportLeads(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	data, err := h.leadUsecase.ExportLeads(c.Request.Context(), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leads.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
