package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/response"
	"homequote.backend/pkg/logger"
)

// PartnerAccounts loads the partner profile owned by a signed-in user.
type PartnerAccounts interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error)
}

// RejectSuspendedPartner blocks suspended partners from the partner and CRM
// surfaces. Users who have not onboarded yet pass so they can create a profile.
// Must run after AuthMiddleware.
func RejectSuspendedPartner(accounts PartnerAccounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		partner, err := accounts.GetSettings(c.Request.Context(), userID)
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
		case err != nil:
			response.Error(c, err)
			c.Abort()
			return
		case partner.Status == entities.PartnerStatusSuspended:
			logger.Warn(c.Request.Context(), "suspended partner rejected",
				zap.String("partner_id", partner.ID.String()),
				zap.String("path", c.Request.URL.Path),
			)
			response.ErrorWithError(c, http.StatusForbidden, domainerrors.CodeForbidden, "partner account is suspended")
			c.Abort()
			return
		}
		c.Next()
	}
}
