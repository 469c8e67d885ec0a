package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

type stubSessions struct {
	sessions map[string]*redis.SessionData
	err      error
}

func (s stubSessions) GetSession(_ context.Context, id string) (*redis.SessionData, error) {
	if s.err != nil {
		return nil, s.err
	}
	if data, ok := s.sessions[id]; ok {
		return data, nil
	}
	return nil, redis.ErrNil
}

func newAuthRouter(svc *jwt.JWTService, sessions SessionReader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(svc, sessions)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		partnerID, hasPartner := GetPartnerID(c)
		ctxPartner, _ := c.Request.Context().Value(logger.PartnerIDKey).(string)
		c.JSON(http.StatusOK, gin.H{
			"userId":     userID.String(),
			"role":       role,
			"partnerId":  partnerID.String(),
			"hasPartner": hasPartner,
			"ctxPartner": ctxPartner,
		})
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	userID, partnerID := uuid.New(), uuid.New()
	pair, err := svc.GenerateTokenPair(jwt.Identity{UserID: userID, Email: "p@x.test", Role: "partner", PartnerID: &partnerID})
	require.NoError(t, err)

	r := newAuthRouter(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"role":"partner"`)
	assert.Contains(t, w.Body.String(), `"hasPartner":true`)
	assert.Contains(t, w.Body.String(), `"ctxPartner":"`+partnerID.String()+`"`)
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(jwt.Identity{UserID: userID, Role: "partner"})
	require.NoError(t, err)

	r := newAuthRouter(svc, stubSessions{sessions: map[string]*redis.SessionData{
		"sess-1": {UserID: userID.String(), Role: "partner", AccessToken: pair.AccessToken},
	}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), `"hasPartner":false`)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	expiredSvc := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	expired, err := expiredSvc.GenerateTokenPair(jwt.Identity{UserID: uuid.New(), Role: "partner"})
	require.NoError(t, err)
	live, err := svc.GenerateTokenPair(jwt.Identity{UserID: uuid.New(), Role: "partner"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		prepare  func(req *http.Request)
		sessions SessionReader
		message  string
	}{
		{name: "no credentials", prepare: func(*http.Request) {}, message: "authentication required"},
		{
			name:    "garbage bearer",
			prepare: func(req *http.Request) { req.Header.Set(AuthorizationHeader, BearerPrefix+"not-a-jwt") },
			message: "invalid token",
		},
		{
			name:    "expired bearer",
			prepare: func(req *http.Request) { req.Header.Set(AuthorizationHeader, BearerPrefix+expired.AccessToken) },
			message: "token has expired",
		},
		{
			name:    "refresh token as bearer",
			prepare: func(req *http.Request) { req.Header.Set(AuthorizationHeader, BearerPrefix+live.RefreshToken) },
			message: "invalid token",
		},
		{
			name: "unknown session",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "missing"})
			},
			sessions: stubSessions{},
			message:  "authentication required",
		},
		{
			name: "session store down",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
			},
			sessions: stubSessions{err: errors.New("redis down")},
			message:  "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(svc, tt.sessions)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
		})
	}
}

func TestRequireRole(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", time.Minute, time.Hour)
	partner, err := svc.GenerateTokenPair(jwt.Identity{UserID: uuid.New(), Role: "partner"})
	require.NoError(t, err)
	admin, err := svc.GenerateTokenPair(jwt.Identity{UserID: uuid.New(), Role: "admin"})
	require.NoError(t, err)

	r := newAuthRouter(svc, nil, RequireAdmin())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+partner.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+admin.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_MissingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequirePartner(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContextGetters_WrongTypes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, "not-a-uuid")
	c.Set(UserRoleKey, 7)
	c.Set(PartnerIDKey, "nope")

	_, ok = GetUserID(c)
	assert.False(t, ok)
	_, ok = GetUserRole(c)
	assert.False(t, ok)
	_, ok = GetPartnerID(c)
	assert.False(t, ok)
}
