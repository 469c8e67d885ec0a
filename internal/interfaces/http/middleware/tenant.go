package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/logger"
)

const (
	// ForwardedHostHeader carries the customer-facing host behind a proxy
	ForwardedHostHeader = "X-Forwarded-Host"
	// TenantKey is the context key for the partner serving the request
	TenantKey = "tenant"
)

// TenantResolver maps a request host to its partner.
type TenantResolver interface {
	ResolvePartner(ctx context.Context, hostname string) (*entities.PartnerProfile, error)
}

// TenantMiddleware resolves the partner for the request host. Hosts that
// match no partner pass through without a tenant; resolution failures abort.
func TenantMiddleware(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		partner, err := resolver.ResolvePartner(c.Request.Context(), RequestHost(c))
		switch {
		case err == nil:
			c.Set(TenantKey, partner)
			ctx := context.WithValue(c.Request.Context(), logger.PartnerIDKey, partner.ID.String())
			c.Request = c.Request.WithContext(ctx)
		case errors.Is(err, domainerrors.ErrNotFound):
		default:
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireTenant rejects requests whose host resolved to no partner.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetTenant(c); !ok {
			response.Error(c, domainerrors.NotFound("no partner serves this host"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetTenant gets the resolved partner from context
func GetTenant(c *gin.Context) (*entities.PartnerProfile, bool) {
	v, exists := c.Get(TenantKey)
	if !exists {
		return nil, false
	}
	partner, ok := v.(*entities.PartnerProfile)
	return partner, ok && partner != nil
}

// RequestHost prefers the first X-Forwarded-Host value over Host.
func RequestHost(c *gin.Context) string {
	if fwd := c.GetHeader(ForwardedHostHeader); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.Request.Host
}
