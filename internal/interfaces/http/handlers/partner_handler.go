package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/snippet"
)

type partnerService interface {
	Onboard(ctx context.Context, userID uuid.UUID, input *entities.CreatePartnerInput) (*entities.PartnerProfile, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, input *entities.UpdatePartnerSettingsInput) (*entities.PartnerProfile, error)
	Snippets(ctx context.Context, userID uuid.UUID) (*snippet.Rendered, error)
	PublicSnippets(partner *entities.PartnerProfile) (*snippet.Rendered, error)
	SetCustomDomain(ctx context.Context, userID uuid.UUID, rawDomain string) (*entities.DomainVerificationRecord, error)
	VerifyCustomDomain(ctx context.Context, userID uuid.UUID) (*entities.DomainVerificationRecord, error)
	ListPartners(ctx context.Context, status string) ([]*entities.PartnerProfile, error)
	UpdatePartnerStatus(ctx context.Context, partnerID uuid.UUID, status entities.PartnerStatus) (*entities.PartnerProfile, error)
}

// PartnerHandler handles partner profile endpoints
type PartnerHandler struct {
	partnerUsecase partnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerUsecase partnerService) *PartnerHandler {
	return &PartnerHandler{partnerUsecase: partnerUsecase}
}

// Resolve returns the public branding of the partner serving this host
// GET /api/partner/resolve
func (h *PartnerHandler) Resolve(c *gin.Context) {
	partner, ok := middleware.GetTenant(c)
	if !ok {
		response.Error(c, domainerrors.NotFound("no partner serves this host"))
		return
	}

	snippets, err := h.partnerUsecase.PublicSnippets(partner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"partner":  partner.Branding(),
		"snippets": snippets,
	})
}

// Onboard creates the partner profile of the signed-in user
// POST /api/partner/onboard
func (h *PartnerHandler) Onboard(c *gin.Context) {
	var input entities.CreatePartnerInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerUsecase.Onboard(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, partner)
}

// GetSettings returns the partner's settings
// GET /api/partner/settings
func (h *PartnerHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerUsecase.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, partner)
}

// UpdateSettings applies a partial settings update
// PUT /api/partner/settings
func (h *PartnerHandler) UpdateSettings(c *gin.Context) {
	var input entities.UpdatePartnerSettingsInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	partner, err := h.partnerUsecase.UpdateSettings(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, partner)
}

// Snippets returns the partner's code snippets as sandboxed frames
// GET /api/partner/snippets
func (h *PartnerHandler) Snippets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	snippets, err := h.partnerUsecase.Snippets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, snippets)
}

// SetDomain binds a custom domain and returns the TXT record to publish
// POST /api/partner/domain
func (h *PartnerHandler) SetDomain(c *gin.Context) {
	var input entities.SetCustomDomainInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.partnerUsecase.SetCustomDomain(c.Request.Context(), userID, input.Domain)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// VerifyDomain checks the custom domain's TXT record
// POST /api/partner/domain/verify
func (h *PartnerHandler) VerifyDomain(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.partnerUsecase.VerifyCustomDomain(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// ListPartners lists partners for moderation
// GET /api/admin/partners?status=
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	partners, err := h.partnerUsecase.ListPartners(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"partners": partners})
}

// UpdatePartnerStatus moderates a partner
// PUT /api/admin/partners/:id/status
func (h *PartnerHandler) UpdatePartnerStatus(c *gin.Context) {
	partnerID, ok := uuidParam(c, "id", "partner ID")
	if !ok {
		return
	}

	var input entities.UpdatePartnerStatusInput
	if !bindJSON(c, &input) {
		return
	}

	partner, err := h.partnerUsecase.UpdatePartnerStatus(c.Request.Context(), partnerID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, partner)
}
