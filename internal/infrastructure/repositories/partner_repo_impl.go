package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/infrastructure/models"
)

// ambiguityProbe is enough rows to tell one match from many.
const ambiguityProbe = 2

// PartnerRepository implements partner profile operations
type PartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository creates a new partner repository
func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// Create creates a partner profile
func (r *PartnerRepository) Create(ctx context.Context, partner *entities.PartnerProfile) error {
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	if partner.Status == "" {
		partner.Status = entities.PartnerStatusPending
	}
	now := time.Now()
	partner.CreatedAt, partner.UpdatedAt = now, now

	m := r.toModel(partner)
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a partner by ID
func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerProfile, error) {
	var m models.PartnerProfile
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets the partner owned by a user
func (r *PartnerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error) {
	var m models.PartnerProfile
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// FindActiveByCustomDomains finds active partners by verified custom domain
func (r *PartnerRepository) FindActiveByCustomDomains(ctx context.Context, hosts []string) ([]*entities.PartnerProfile, error) {
	if len(hosts) == 0 {
		return nil, nil
	}
	var rows []models.PartnerProfile
	err := GetDB(ctx, r.db).
		Where("status = ? AND domain_verified = ? AND custom_domain IN ?", string(entities.PartnerStatusActive), true, hosts).
		Limit(ambiguityProbe).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(rows), nil
}

// FindActiveBySubdomain finds active partners by platform subdomain
func (r *PartnerRepository) FindActiveBySubdomain(ctx context.Context, subdomain string) ([]*entities.PartnerProfile, error) {
	var rows []models.PartnerProfile
	err := GetDB(ctx, r.db).
		Where("status = ? AND subdomain = ?", string(entities.PartnerStatusActive), subdomain).
		Limit(ambiguityProbe).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(rows), nil
}

// List lists partners, optionally filtered by status
func (r *PartnerRepository) List(ctx context.Context, status entities.PartnerStatus) ([]*entities.PartnerProfile, error) {
	var rows []models.PartnerProfile
	query := GetDB(ctx, r.db).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toEntities(rows), nil
}

// UpdateSettings writes only the settings present in input
func (r *PartnerRepository) UpdateSettings(ctx context.Context, id uuid.UUID, input *entities.UpdatePartnerSettingsInput) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.CompanyName != nil {
		updates["company_name"] = *input.CompanyName
	}
	if input.CompanyColor != nil {
		updates["company_color"] = nullableString(*input.CompanyColor)
	}
	if input.LogoURL != nil {
		updates["logo_url"] = nullableString(*input.LogoURL)
	}
	if input.HeaderCode != nil {
		updates["header_code"] = *input.HeaderCode
	}
	if input.BodyCode != nil {
		updates["body_code"] = *input.BodyCode
	}
	if input.FooterCode != nil {
		updates["footer_code"] = *input.FooterCode
	}
	return r.update(ctx, id, updates)
}

// UpdateStatus sets moderation status
func (r *PartnerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PartnerStatus) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
}

// SetCustomDomain binds an unverified custom domain
func (r *PartnerRepository) SetCustomDomain(ctx context.Context, id uuid.UUID, domain, verificationToken string) error {
	return r.update(ctx, id, map[string]interface{}{
		"custom_domain":             nullableString(domain),
		"domain_verified":           false,
		"domain_verification_token": nullableString(verificationToken),
		"updated_at":                time.Now(),
	})
}

// MarkDomainVerified flags the custom domain as verified
func (r *PartnerRepository) MarkDomainVerified(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, map[string]interface{}{
		"domain_verified": true,
		"updated_at":      time.Now(),
	})
}

func (r *PartnerRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.PartnerProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PartnerRepository) toEntities(rows []models.PartnerProfile) []*entities.PartnerProfile {
	out := make([]*entities.PartnerProfile, 0, len(rows))
	for i := range rows {
		out = append(out, r.toEntity(&rows[i]))
	}
	return out
}

func (r *PartnerRepository) toEntity(m *models.PartnerProfile) *entities.PartnerProfile {
	return &entities.PartnerProfile{
		ID:                      m.ID,
		UserID:                  m.UserID,
		CompanyName:             m.CompanyName,
		Subdomain:               m.Subdomain,
		CustomDomain:            null.StringFromPtr(m.CustomDomain),
		DomainVerified:          m.DomainVerified,
		DomainVerificationToken: null.StringFromPtr(m.DomainVerificationToken),
		Status:                  entities.PartnerStatus(m.Status),
		CompanyColor:            null.StringFromPtr(m.CompanyColor),
		LogoURL:                 null.StringFromPtr(m.LogoURL),
		HeaderCode:              m.HeaderCode,
		BodyCode:                m.BodyCode,
		FooterCode:              m.FooterCode,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func (r *PartnerRepository) toModel(e *entities.PartnerProfile) *models.PartnerProfile {
	return &models.PartnerProfile{
		ID:                      e.ID,
		UserID:                  e.UserID,
		CompanyName:             e.CompanyName,
		Subdomain:               e.Subdomain,
		CustomDomain:            e.CustomDomain.Ptr(),
		DomainVerified:          e.DomainVerified,
		DomainVerificationToken: e.DomainVerificationToken.Ptr(),
		Status:                  string(e.Status),
		CompanyColor:            e.CompanyColor.Ptr(),
		LogoURL:                 e.LogoURL.Ptr(),
		HeaderCode:              e.HeaderCode,
		BodyCode:                e.BodyCode,
		FooterCode:              e.FooterCode,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
	}
}
