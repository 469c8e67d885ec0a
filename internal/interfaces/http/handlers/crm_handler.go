package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/internal/usecases"
	"homequote.backend/pkg/logger"
)

// CRMSettingsPage is where the CRM OAuth flow lands the partner.
const CRMSettingsPage = "/partner/settings"

type crmService interface {
	ConnectURL(ctx context.Context, partnerID uuid.UUID) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*entities.CRMIntegration, error)
	CustomFields(ctx context.Context, partnerID uuid.UUID) ([]entities.CRMCustomField, error)
	Pipelines(ctx context.Context, partnerID uuid.UUID) ([]entities.CRMPipeline, error)
	FieldMappings(ctx context.Context, partnerID uuid.UUID) ([]*entities.CRMFieldMapping, error)
	SaveFieldMappings(ctx context.Context, partnerID uuid.UUID, input *entities.SaveFieldMappingsInput) error
}

// CRMHandler handles the CRM connection of a partner
type CRMHandler struct {
	crm       crmService
	partners  partnerLookup
	publicURL string
}

// NewCRMHandler creates a new CRM handler
func NewCRMHandler(crm crmService, partners partnerLookup, publicURL string) *CRMHandler {
	return &CRMHandler{crm: crm, partners: partners, publicURL: publicURL}
}

// Connect returns the provider authorization URL
// GET /api/crm/connect
func (h *CRMHandler) Connect(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	authURL, err := h.crm.ConnectURL(c.Request.Context(), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": authURL})
}

// Callback finishes the provider OAuth flow and redirects to the settings page
// GET /auth/crm/callback?code=&state=&error=
func (h *CRMHandler) Callback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		h.settingsRedirect(c, "ghl_error", providerErr)
		return
	}
	code := c.Query("code")
	if code == "" {
		h.settingsRedirect(c, "ghl_error", "no_code")
		return
	}

	if _, err := h.crm.HandleCallback(c.Request.Context(), code, c.Query("state")); err != nil {
		reason := "server_error"
		if errors.Is(err, usecases.ErrCRMInvalidState) || errors.Is(err, usecases.ErrCRMTokenExchange) {
			reason = err.Error()
		} else {
			logger.Error(c.Request.Context(), "crm callback failed", zap.Error(err))
		}
		h.settingsRedirect(c, "ghl_error", reason)
		return
	}

	h.settingsRedirect(c, "ghl_success", "true")
}

func (h *CRMHandler) settingsRedirect(c *gin.Context, key, value string) {
	q := url.Values{}
	q.Set(key, value)
	c.Redirect(http.StatusFound, h.publicURL+CRMSettingsPage+"?"+q.Encode())
}

// CustomFields lists the CRM custom fields
// GET /api/crm/custom-fields
func (h *CRMHandler) CustomFields(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	fields, err := h.crm.CustomFields(c.Request.Context(), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if fields == nil {
		fields = []entities.CRMCustomField{}
	}

	response.Success(c, http.StatusOK, gin.H{"customFields": fields})
}

// Pipelines lists the CRM pipelines
// GET /api/crm/pipelines
func (h *CRMHandler) Pipelines(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	pipelines, err := h.crm.Pipelines(c.Request.Context(), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if pipelines == nil {
		pipelines = []entities.CRMPipeline{}
	}

	response.Success(c, http.StatusOK, gin.H{"pipelines": pipelines})
}

// FieldMappings returns the saved lead-to-CRM field mappings
// GET /api/crm/field-mappings
func (h *CRMHandler) FieldMappings(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	mappings, err := h.crm.FieldMappings(c.Request.Context(), partnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mappings": mappings})
}

// SaveFieldMappings upserts lead-to-CRM field mappings
// PUT /api/crm/field-mappings
func (h *CRMHandler) SaveFieldMappings(c *gin.Context) {
	partnerID, ok := currentPartnerID(c, h.partners)
	if !ok {
		return
	}

	var input entities.SaveFieldMappingsInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.crm.SaveFieldMappings(c.Request.Context(), partnerID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
