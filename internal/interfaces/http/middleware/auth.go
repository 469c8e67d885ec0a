package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionCookieName holds the browser session id
	SessionCookieName = "hq_session"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// PartnerIDKey is the context key for the signed-in partner's id
	PartnerIDKey = "partnerId"
)

// SessionReader loads browser sessions created at sign-in.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts a Bearer access token or, for browsers, the
// session cookie whose Redis entry holds the access token.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = sessionToken(c, sessions)
		}
		if tokenString == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "token has expired")
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		if claims.PartnerID != nil {
			c.Set(PartnerIDKey, *claims.PartnerID)
			ctx := context.WithValue(c.Request.Context(), logger.PartnerIDKey, claims.PartnerID.String())
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}

func sessionToken(c *gin.Context, sessions SessionReader) string {
	if sessions == nil {
		return ""
	}
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return ""
	}
	session, err := sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil || session == nil {
		if err != nil && !redis.IsNil(err) {
			logger.Warn(c.Request.Context(), "session lookup failed", zap.Error(err))
		}
		return ""
	}
	return session.AccessToken
}

func abortUnauthorized(c *gin.Context, message string) {
	response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, message)
	c.Abort()
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// GetPartnerID gets the partner id carried by the access token
func GetPartnerID(c *gin.Context) (uuid.UUID, bool) {
	partnerID, exists := c.Get(PartnerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := partnerID.(uuid.UUID)
	return id, ok
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abortUnauthorized(c, "user role not found")
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.ErrorWithError(c, http.StatusForbidden, domainerrors.CodeForbidden, "insufficient permissions")
		c.Abort()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequirePartner creates a middleware that requires partner role
func RequirePartner() gin.HandlerFunc {
	return RequireRole("partner")
}
