package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
)

func newTestRouter(pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	return r
}

func withUser(userID uuid.UUID, role string, partnerID *uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, role)
		if partnerID != nil {
			c.Set(middleware.PartnerIDKey, *partnerID)
		}
		c.Next()
	}
}

func withTenant(partner *entities.PartnerProfile) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.TenantKey, partner)
		c.Next()
	}
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

type stubPartnerLookup struct {
	partner *entities.PartnerProfile
	calls   int
}

func (s *stubPartnerLookup) GetSettings(context.Context, uuid.UUID) (*entities.PartnerProfile, error) {
	s.calls++
	if s.partner == nil {
		return nil, domainerrors.ErrNotFound
	}
	return s.partner, nil
}
