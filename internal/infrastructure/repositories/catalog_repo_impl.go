package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/infrastructure/models"
)

// ServiceCategoryRepository implements service category lookups
type ServiceCategoryRepository struct {
	db *gorm.DB
}

// NewServiceCategoryRepository creates a new service category repository
func NewServiceCategoryRepository(db *gorm.DB) *ServiceCategoryRepository {
	return &ServiceCategoryRepository{db: db}
}

// GetBySlug gets a category by slug
func (r *ServiceCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entities.ServiceCategory, error) {
	var m models.ServiceCategory
	if err := GetDB(ctx, r.db).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toCategoryEntity(&m), nil
}

// GetByID gets a category by ID
func (r *ServiceCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceCategory, error) {
	var m models.ServiceCategory
	if err := GetDB(ctx, r.db).Where("service_category_id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return toCategoryEntity(&m), nil
}

// List lists categories by name
func (r *ServiceCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*entities.ServiceCategory, error) {
	var rows []models.ServiceCategory
	query := GetDB(ctx, r.db).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ServiceCategory, 0, len(rows))
	for i := range rows {
		out = append(out, toCategoryEntity(&rows[i]))
	}
	return out, nil
}

func toCategoryEntity(m *models.ServiceCategory) *entities.ServiceCategory {
	return &entities.ServiceCategory{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// AddonRepository implements addon lookups
type AddonRepository struct {
	db *gorm.DB
}

// NewAddonRepository creates a new addon repository
func NewAddonRepository(db *gorm.DB) *AddonRepository {
	return &AddonRepository{db: db}
}

// ListActive lists active addons of a category. Without a partner only global addons are returned.
func (r *AddonRepository) ListActive(ctx context.Context, categoryID uuid.UUID, partnerID *uuid.UUID) ([]*entities.Addon, error) {
	query := GetDB(ctx, r.db).
		Where("service_category_id = ? AND is_active = ?", categoryID, true).
		Order("display_order ASC, title ASC")
	if partnerID != nil {
		query = query.Where("(partner_id = ? OR partner_id IS NULL)", *partnerID)
	} else {
		query = query.Where("partner_id IS NULL")
	}

	var rows []models.Addon
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.Addon, 0, len(rows))
	for _, m := range rows {
		addon := &entities.Addon{
			ID:                m.ID,
			ServiceCategoryID: m.ServiceCategoryID,
			Title:             m.Title,
			Description:       null.StringFromPtr(m.Description),
			Price:             m.Price,
			ImageURL:          null.StringFromPtr(m.ImageURL),
			DisplayOrder:      m.DisplayOrder,
			IsActive:          m.IsActive,
			CreatedAt:         m.CreatedAt,
		}
		if m.PartnerID != nil {
			addon.PartnerID = uuid.NullUUID{UUID: *m.PartnerID, Valid: true}
		}
		out = append(out, addon)
	}
	return out, nil
}

// CategoryFieldRepository implements category field operations
type CategoryFieldRepository struct {
	db *gorm.DB
}

// NewCategoryFieldRepository creates a new category field repository
func NewCategoryFieldRepository(db *gorm.DB) *CategoryFieldRepository {
	return &CategoryFieldRepository{db: db}
}

// Create creates a category field
func (r *CategoryFieldRepository) Create(ctx context.Context, field *entities.CategoryField) error {
	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}
	field.CreatedAt = time.Now()

	m := &models.CategoryField{
		ID:                field.ID,
		ServiceCategoryID: field.ServiceCategoryID,
		Name:              field.Name,
		Key:               field.Key,
		FieldType:         field.FieldType,
		IsRequired:        field.IsRequired,
		DisplayOrder:      field.DisplayOrder,
		CreatedAt:         field.CreatedAt,
	}
	if len(field.Options) > 0 {
		m.Options = nullableString(string(field.Options))
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// ExistsByKey reports whether the category already has a field with key
func (r *CategoryFieldRepository) ExistsByKey(ctx context.Context, categoryID uuid.UUID, key string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.CategoryField{}).
		Where("service_category_id = ? AND key = ?", categoryID, key).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByCategory lists fields by display order
func (r *CategoryFieldRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.CategoryField, error) {
	var rows []models.CategoryField
	err := GetDB(ctx, r.db).
		Where("service_category_id = ?", categoryID).
		Order("display_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.CategoryField, 0, len(rows))
	for _, m := range rows {
		f := &entities.CategoryField{
			ID:                m.ID,
			ServiceCategoryID: m.ServiceCategoryID,
			Name:              m.Name,
			Key:               m.Key,
			FieldType:         m.FieldType,
			IsRequired:        m.IsRequired,
			DisplayOrder:      m.DisplayOrder,
			CreatedAt:         m.CreatedAt,
		}
		if m.Options != nil {
			f.Options = json.RawMessage(*m.Options)
		}
		out = append(out, f)
	}
	return out, nil
}

// UpdateDisplayOrder moves one field
func (r *CategoryFieldRepository) UpdateDisplayOrder(ctx context.Context, fieldID uuid.UUID, displayOrder int) error {
	result := GetDB(ctx, r.db).Model(&models.CategoryField{}).
		Where("field_id = ?", fieldID).
		Update("display_order", displayOrder)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
