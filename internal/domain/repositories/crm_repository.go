package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
)

// CRMIntegrationRepository defines CRM integration operations
type CRMIntegrationRepository interface {
	Upsert(ctx context.Context, integration *entities.CRMIntegration) error
	GetByPartner(ctx context.Context, partnerID uuid.UUID, provider string) (*entities.CRMIntegration, error)
	UpdateTokens(ctx context.Context, id uuid.UUID, sealedAccess, sealedRefresh string, expiresAt time.Time) error
	UpsertFieldMapping(ctx context.Context, mapping *entities.CRMFieldMapping) error
	ListFieldMappings(ctx context.Context, partnerID uuid.UUID) ([]*entities.CRMFieldMapping, error)
}
