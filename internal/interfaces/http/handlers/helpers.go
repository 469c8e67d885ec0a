package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
)

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
	}
	return userID, ok
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+label))
		return uuid.Nil, false
	}
	return id, true
}

type partnerLookup interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error)
}

// currentPartnerID prefers the partner id carried by the access token. Tokens
// issued before onboarding have none, so the profile is looked up by user.
func currentPartnerID(c *gin.Context, lookup partnerLookup) (uuid.UUID, bool) {
	if partnerID, ok := middleware.GetPartnerID(c); ok {
		return partnerID, true
	}
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	partner, err := lookup.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return uuid.Nil, false
	}
	return partner.ID, true
}
