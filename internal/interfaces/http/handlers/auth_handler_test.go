package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/usecases"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/redis"
)

type stubAuth struct {
	gotCode, gotVerifier, gotRedirect string
	gotRefresh                        string
	result                            *usecases.AuthResult
	err                               error
}

func (s *stubAuth) Callback(_ context.Context, code, verifier, redirectTo string) (*usecases.AuthResult, error) {
	s.gotCode, s.gotVerifier, s.gotRedirect = code, verifier, redirectTo
	return s.result, s.err
}

func (s *stubAuth) RefreshToken(_ context.Context, token string) (*jwt.TokenPair, error) {
	s.gotRefresh = token
	if s.err != nil {
		return nil, s.err
	}
	return &jwt.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}, nil
}

func (s *stubAuth) Me(_ context.Context, userID uuid.UUID) (*entities.UserProfile, *entities.PartnerProfile, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return &entities.UserProfile{UserID: userID, Role: entities.UserRolePartner}, &entities.PartnerProfile{CompanyName: "Acme"}, nil
}

type memorySessions struct {
	data      map[string]*redis.SessionData
	createErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: map[string]*redis.SessionData{}}
}

func (m *memorySessions) CreateSession(_ context.Context, id string, data *redis.SessionData, _ time.Duration) error {
	if m.createErr != nil {
		return m.createErr
	}
	cpy := *data
	m.data[id] = &cpy
	return nil
}

func (m *memorySessions) GetSession(_ context.Context, id string) (*redis.SessionData, error) {
	if d, ok := m.data[id]; ok {
		cpy := *d
		return &cpy, nil
	}
	return nil, redis.ErrNil
}

func (m *memorySessions) DeleteSession(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func newAuthHandlerForTest(auth *stubAuth, sessions *memorySessions) *AuthHandler {
	h := NewAuthHandler(auth, sessions, time.Hour, "https://app.homequote.test", true)
	h.newSessionID = func() (string, error) { return "sess-1", nil }
	return h
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Callback_Success(t *testing.T) {
	userID := uuid.New()
	auth := &stubAuth{result: &usecases.AuthResult{
		Identity: jwt.Identity{UserID: userID, Role: "partner"},
		Tokens:   &jwt.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		Location: usecases.PartnerHome,
	}}
	sessions := newMemorySessions()
	h := newAuthHandlerForTest(auth, sessions)
	r := newTestRouter()
	r.GET("/auth/callback", h.Callback)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c-1&redirect_to=/partner/leads", nil)
	req.AddCookie(&http.Cookie{Name: CodeVerifierCookie, Value: "verifier-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://app.homequote.test/partner", w.Header().Get("Location"))
	assert.Equal(t, "c-1", auth.gotCode)
	assert.Equal(t, "verifier-1", auth.gotVerifier)
	assert.Equal(t, "/partner/leads", auth.gotRedirect)

	session := sessions.data["sess-1"]
	require.NotNil(t, session)
	assert.Equal(t, userID.String(), session.UserID)
	assert.Equal(t, "at", session.AccessToken)

	cookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "sess-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	verifier := findCookie(w, CodeVerifierCookie)
	require.NotNil(t, verifier)
	assert.True(t, verifier.MaxAge < 0)
}

func TestAuthHandler_Callback_Failures(t *testing.T) {
	okResult := &usecases.AuthResult{
		Identity: jwt.Identity{UserID: uuid.New(), Role: "admin"},
		Tokens:   &jwt.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		Location: usecases.AdminHome,
	}
	tests := []struct {
		name     string
		auth     *stubAuth
		sessions *memorySessions
	}{
		{name: "exchange failed", auth: &stubAuth{err: domainerrors.BadGateway("exchange failed", nil)}, sessions: newMemorySessions()},
		{name: "missing code", auth: &stubAuth{err: domainerrors.BadRequest("code is required")}, sessions: newMemorySessions()},
		{name: "session store down", auth: &stubAuth{result: okResult}, sessions: &memorySessions{data: map[string]*redis.SessionData{}, createErr: errors.New("redis down")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandlerForTest(tt.auth, tt.sessions)
			r := newTestRouter()
			r.GET("/auth/callback", h.Callback)

			w := doRequest(r, http.MethodGet, "/auth/callback?code=x", nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "https://app.homequote.test"+usecases.LoginFailedPage, w.Header().Get("Location"))
			assert.Nil(t, findCookie(w, middleware.SessionCookieName))
		})
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("from body", func(t *testing.T) {
		auth := &stubAuth{}
		h := newAuthHandlerForTest(auth, newMemorySessions())
		r := newTestRouter()
		r.POST("/auth/refresh", h.RefreshToken)

		w := doRequest(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"rt-body"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rt-body", auth.gotRefresh)
		assert.Contains(t, w.Body.String(), "new-at")
	})

	t.Run("from session cookie rotates tokens", func(t *testing.T) {
		auth := &stubAuth{}
		sessions := newMemorySessions()
		sessions.data["sess-9"] = &redis.SessionData{UserID: "u", AccessToken: "old-at", RefreshToken: "old-rt"}
		h := newAuthHandlerForTest(auth, sessions)
		r := newTestRouter()
		r.POST("/auth/refresh", h.RefreshToken)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-9"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "old-rt", auth.gotRefresh)
		assert.Equal(t, "new-at", sessions.data["sess-9"].AccessToken)
		assert.Equal(t, "new-rt", sessions.data["sess-9"].RefreshToken)
	})

	t.Run("no token", func(t *testing.T) {
		h := newAuthHandlerForTest(&stubAuth{}, newMemorySessions())
		r := newTestRouter()
		r.POST("/auth/refresh", h.RefreshToken)

		w := doRequest(r, http.MethodPost, "/auth/refresh", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		h := newAuthHandlerForTest(&stubAuth{err: domainerrors.ErrUnauthorized}, newMemorySessions())
		r := newTestRouter()
		r.POST("/auth/refresh", h.RefreshToken)

		w := doRequest(r, http.MethodPost, "/auth/refresh", `{"refreshToken":"garbage"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	userID := uuid.New()
	h := newAuthHandlerForTest(&stubAuth{}, newMemorySessions())

	r := newTestRouter(withUser(userID, "partner", nil))
	r.GET("/auth/me", h.Me)
	w := doRequest(r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "Acme")

	anonymous := newTestRouter()
	anonymous.GET("/auth/me", h.Me)
	w = doRequest(anonymous, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := newMemorySessions()
	sessions.data["sess-1"] = &redis.SessionData{UserID: "u"}
	h := newAuthHandlerForTest(&stubAuth{}, sessions)
	r := newTestRouter()
	r.POST("/auth/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessions.data)
	cookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.MaxAge < 0)
}
