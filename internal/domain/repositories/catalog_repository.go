package repositories

import (
	"context"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
)

// ServiceCategoryRepository defines service category lookups
type ServiceCategoryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entities.ServiceCategory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceCategory, error)
	List(ctx context.Context, activeOnly bool) ([]*entities.ServiceCategory, error)
}

// AddonRepository defines addon lookups
type AddonRepository interface {
	// ListActive returns active addons of a category. With a partner id the
	// partner's own addons are returned together with global ones.
	ListActive(ctx context.Context, categoryID uuid.UUID, partnerID *uuid.UUID) ([]*entities.Addon, error)
}

// CategoryFieldRepository defines category field operations
type CategoryFieldRepository interface {
	Create(ctx context.Context, field *entities.CategoryField) error
	ExistsByKey(ctx context.Context, categoryID uuid.UUID, key string) (bool, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.CategoryField, error)
	UpdateDisplayOrder(ctx context.Context, fieldID uuid.UUID, displayOrder int) error
}
