package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/interfaces/http/response"
)

type postcodeService interface {
	Lookup(ctx context.Context, raw string) (*entities.PostcodeLookup, error)
}

// PostcodeHandler proxies postcode lookups
type PostcodeHandler struct {
	postcodes postcodeService
}

// NewPostcodeHandler creates a new postcode handler
func NewPostcodeHandler(postcodes postcodeService) *PostcodeHandler {
	return &PostcodeHandler{postcodes: postcodes}
}

// Lookup resolves a UK postcode
// GET /api/postcode/lookup?postcode=
func (h *PostcodeHandler) Lookup(c *gin.Context) {
	result, err := h.postcodes.Lookup(c.Request.Context(), c.Query("postcode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
