package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/kanda"
)

type kandaRequest struct {
	Payload      json.RawMessage `json:"payload"`
	EnterpriseID string          `json:"enterpriseId"`
}

// KandaHandler signs finance application requests
type KandaHandler struct {
	sign func(payload []byte, enterpriseID string) (string, error)
}

// NewKandaHandler creates a new Kanda handler
func NewKandaHandler() *KandaHandler {
	return &KandaHandler{sign: kanda.Sign}
}

// GenerateRequest returns the signed request token as plain text
// POST /api/kanda/generate-request
func (h *KandaHandler) GenerateRequest(c *gin.Context) {
	var req kandaRequest
	if !bindJSON(c, &req) {
		return
	}

	payload := bytes.TrimSpace(req.Payload)
	// clients may send the payload already serialized as a JSON string
	if len(payload) > 0 && payload[0] == '"' {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			response.Error(c, domainerrors.BadRequest("payload must be JSON"))
			return
		}
		payload = []byte(inner)
	}

	token, err := h.sign(payload, req.EnterpriseID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	c.String(http.StatusOK, token)
}
