package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/internal/usecases"
	"homequote.backend/pkg/crypto"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

// CodeVerifierCookie holds the PKCE verifier the browser created before sign-in.
const CodeVerifierCookie = "hq_code_verifier"

type authService interface {
	Callback(ctx context.Context, code, codeVerifier, redirectTo string) (*usecases.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	Me(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, *entities.PartnerProfile, error)
}

type sessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthHandler handles sign-in callbacks and browser sessions
type AuthHandler struct {
	authUsecase   authService
	sessions      sessionStore
	sessionTTL    time.Duration
	publicURL     string
	secureCookies bool
	newSessionID  func() (string, error)
}

// NewAuthHandler creates a new auth handler. Redirects are built on publicURL.
func NewAuthHandler(authUsecase authService, sessions sessionStore, sessionTTL time.Duration, publicURL string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		sessions:      sessions,
		sessionTTL:    sessionTTL,
		publicURL:     publicURL,
		secureCookies: secureCookies,
		newSessionID:  func() (string, error) { return crypto.GenerateRandomToken(32) },
	}
}

// Callback completes the identity provider sign-in
// GET /auth/callback?code=&redirect_to=
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	verifier, _ := c.Cookie(CodeVerifierCookie)

	result, err := h.authUsecase.Callback(ctx, c.Query("code"), verifier, c.Query("redirect_to"))
	if err != nil {
		logger.Warn(ctx, "auth callback failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.publicURL+usecases.LoginFailedPage)
		return
	}

	sessionID, err := h.newSessionID()
	if err == nil {
		err = h.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
			UserID:       result.Identity.UserID.String(),
			Role:         result.Identity.Role,
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
		}, h.sessionTTL)
	}
	if err != nil {
		logger.Error(ctx, "failed to create session", zap.Error(err))
		c.Redirect(http.StatusFound, h.publicURL+usecases.LoginFailedPage)
		return
	}

	h.setCookie(c, middleware.SessionCookieName, sessionID, int(h.sessionTTL.Seconds()))
	h.setCookie(c, CodeVerifierCookie, "", -1)
	c.Redirect(http.StatusFound, h.publicURL+result.Location)
}

// RefreshToken issues a new token pair from a refresh token or the session cookie
// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	// the body is optional for cookie sessions
	_ = c.ShouldBindJSON(&input)

	token := input.RefreshToken
	sessionID, _ := c.Cookie(middleware.SessionCookieName)
	var session *redis.SessionData
	if token == "" && sessionID != "" {
		if s, err := h.sessions.GetSession(ctx, sessionID); err == nil && s != nil {
			session = s
			token = s.RefreshToken
		}
	}
	if token == "" {
		response.Error(c, domainerrors.Unauthorized("refresh token required"))
		return
	}

	pair, err := h.authUsecase.RefreshToken(ctx, token)
	if err != nil {
		response.Error(c, err)
		return
	}

	if session != nil {
		session.AccessToken = pair.AccessToken
		session.RefreshToken = pair.RefreshToken
		if err := h.sessions.CreateSession(ctx, sessionID, session, h.sessionTTL); err != nil {
			logger.Warn(ctx, "failed to rotate session tokens", zap.Error(err))
		}
	}

	response.Success(c, http.StatusOK, pair)
}

// Me returns the signed-in user
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, partner, err := h.authUsecase.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":    profile,
		"partner": partner,
	})
}

// Logout ends the browser session
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.SessionCookieName); err == nil && sessionID != "" {
		if err := h.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete session", zap.Error(err))
		}
	}
	h.setCookie(c, middleware.SessionCookieName, "", -1)

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.secureCookies, true)
}
