package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/infrastructure/models"
)

// CRMIntegrationRepository implements CRM integration operations
type CRMIntegrationRepository struct {
	db *gorm.DB
}

// NewCRMIntegrationRepository creates a new CRM integration repository
func NewCRMIntegrationRepository(db *gorm.DB) *CRMIntegrationRepository {
	return &CRMIntegrationRepository{db: db}
}

// Upsert stores the integration, replacing tokens of an existing (partner, provider) row
func (r *CRMIntegrationRepository) Upsert(ctx context.Context, integration *entities.CRMIntegration) error {
	if integration.ID == uuid.Nil {
		integration.ID = uuid.New()
	}
	now := time.Now()
	integration.CreatedAt, integration.UpdatedAt = now, now

	m := &models.CRMIntegration{
		ID:           integration.ID,
		PartnerID:    integration.PartnerID,
		Provider:     integration.Provider,
		LocationID:   integration.LocationID,
		AccessToken:  integration.SealedAccessToken,
		RefreshToken: integration.SealedRefreshToken,
		ExpiresAt:    integration.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "partner_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"location_id", "access_token", "refresh_token", "expires_at", "updated_at"}),
	}).Create(m).Error
}

// GetByPartner gets a partner's integration for a provider
func (r *CRMIntegrationRepository) GetByPartner(ctx context.Context, partnerID uuid.UUID, provider string) (*entities.CRMIntegration, error) {
	var m models.CRMIntegration
	err := GetDB(ctx, r.db).
		Where("partner_id = ? AND provider = ?", partnerID, provider).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &entities.CRMIntegration{
		ID:                 m.ID,
		PartnerID:          m.PartnerID,
		Provider:           m.Provider,
		LocationID:         m.LocationID,
		SealedAccessToken:  m.AccessToken,
		SealedRefreshToken: m.RefreshToken,
		ExpiresAt:          m.ExpiresAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

// UpdateTokens stores refreshed tokens
func (r *CRMIntegrationRepository) UpdateTokens(ctx context.Context, id uuid.UUID, sealedAccess, sealedRefresh string, expiresAt time.Time) error {
	result := GetDB(ctx, r.db).Model(&models.CRMIntegration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_token":  sealedAccess,
			"refresh_token": sealedRefresh,
			"expires_at":    expiresAt,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpsertFieldMapping stores one lead-key mapping
func (r *CRMIntegrationRepository) UpsertFieldMapping(ctx context.Context, mapping *entities.CRMFieldMapping) error {
	mapping.UpdatedAt = time.Now()
	m := &models.CRMFieldMapping{
		PartnerID:  mapping.PartnerID,
		LeadKey:    mapping.LeadKey,
		CRMFieldID: mapping.CRMFieldID,
		UpdatedAt:  mapping.UpdatedAt,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "partner_id"}, {Name: "lead_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"crm_field_id", "updated_at"}),
	}).Create(m).Error
}

// ListFieldMappings lists a partner's mappings by lead key
func (r *CRMIntegrationRepository) ListFieldMappings(ctx context.Context, partnerID uuid.UUID) ([]*entities.CRMFieldMapping, error) {
	var rows []models.CRMFieldMapping
	if err := GetDB(ctx, r.db).Where("partner_id = ?", partnerID).Order("lead_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.CRMFieldMapping, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entities.CRMFieldMapping{
			PartnerID:  m.PartnerID,
			LeadKey:    m.LeadKey,
			CRMFieldID: m.CRMFieldID,
			UpdatedAt:  m.UpdatedAt,
		})
	}
	return out, nil
}
