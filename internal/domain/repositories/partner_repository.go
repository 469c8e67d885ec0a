package repositories

import (
	"context"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
)

// PartnerRepository defines partner profile operations
type PartnerRepository interface {
	Create(ctx context.Context, partner *entities.PartnerProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error)
	// FindActiveByCustomDomains returns every active partner with a verified
	// custom domain in hosts. Callers decide what more than one row means.
	FindActiveByCustomDomains(ctx context.Context, hosts []string) ([]*entities.PartnerProfile, error)
	FindActiveBySubdomain(ctx context.Context, subdomain string) ([]*entities.PartnerProfile, error)
	List(ctx context.Context, status entities.PartnerStatus) ([]*entities.PartnerProfile, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, input *entities.UpdatePartnerSettingsInput) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PartnerStatus) error
	SetCustomDomain(ctx context.Context, id uuid.UUID, domain, verificationToken string) error
	MarkDomainVerified(ctx context.Context, id uuid.UUID) error
}

// UserProfileRepository defines user profile operations
type UserProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	Upsert(ctx context.Context, profile *entities.UserProfile) error
}
