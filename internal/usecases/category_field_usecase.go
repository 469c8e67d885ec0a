package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/utils"
)

// CategoryFieldUsecase manages per-category product attributes
type CategoryFieldUsecase struct {
	categoryRepo repositories.ServiceCategoryRepository
	fieldRepo    repositories.CategoryFieldRepository
}

func NewCategoryFieldUsecase(categoryRepo repositories.ServiceCategoryRepository, fieldRepo repositories.CategoryFieldRepository) *CategoryFieldUsecase {
	return &CategoryFieldUsecase{
		categoryRepo: categoryRepo,
		fieldRepo:    fieldRepo,
	}
}

// CreateField adds a field. Missing attributes and duplicate keys are bad requests.
func (u *CategoryFieldUsecase) CreateField(ctx context.Context, input *entities.CreateCategoryFieldInput) (*entities.CategoryField, error) {
	name := strings.TrimSpace(input.Name)
	key := strings.TrimSpace(input.Key)
	fieldType := strings.TrimSpace(input.FieldType)
	if strings.TrimSpace(input.ServiceCategoryID) == "" || name == "" || key == "" || fieldType == "" {
		return nil, domainerrors.BadRequest("service_category_id, name, key and field_type are required")
	}
	categoryID, err := uuid.Parse(strings.TrimSpace(input.ServiceCategoryID))
	if err != nil {
		return nil, domainerrors.BadRequest("invalid service_category_id")
	}
	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("unknown service_category_id")
		}
		return nil, err
	}

	exists, err := u.fieldRepo.ExistsByKey(ctx, categoryID, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.BadRequest("a field with this key already exists for the category")
	}

	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		existing, err := u.fieldRepo.ListByCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		displayOrder = len(existing)
	}

	field := &entities.CategoryField{
		ID:                utils.GenerateUUIDv7(),
		ServiceCategoryID: categoryID,
		Name:              name,
		Key:               key,
		FieldType:         fieldType,
		IsRequired:        input.IsRequired,
		Options:           input.Options,
		DisplayOrder:      displayOrder,
	}
	if err := u.fieldRepo.Create(ctx, field); err != nil {
		// lost a race with a concurrent insert of the same key
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.BadRequest("a field with this key already exists for the category")
		}
		return nil, err
	}
	return field, nil
}

// ListFields returns the fields of a category ordered by display order.
func (u *CategoryFieldUsecase) ListFields(ctx context.Context, categoryID string) ([]*entities.CategoryField, error) {
	id, err := uuid.Parse(strings.TrimSpace(categoryID))
	if err != nil {
		return nil, domainerrors.BadRequest("valid service_category_id is required")
	}
	fields, err := u.fieldRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []*entities.CategoryField{}
	}
	return fields, nil
}

// Reorder applies display orders one by one without a transaction. The first
// failure aborts the batch as an internal error and earlier writes remain.
func (u *CategoryFieldUsecase) Reorder(ctx context.Context, input *entities.ReorderCategoryFieldsInput) error {
	if len(input.Updates) == 0 {
		return domainerrors.BadRequest("updates must not be empty")
	}
	for _, update := range input.Updates {
		if update.FieldID == uuid.Nil {
			return domainerrors.BadRequest("every update needs a field_id")
		}
	}

	for i, update := range input.Updates {
		if err := u.fieldRepo.UpdateDisplayOrder(ctx, update.FieldID, update.DisplayOrder); err != nil {
			logger.Error(ctx, "category field reorder aborted",
				zap.Int("applied", i),
				zap.Int("total", len(input.Updates)),
				zap.String("field_id", update.FieldID.String()),
				zap.Error(err),
			)
			return domainerrors.InternalError(err)
		}
	}
	return nil
}
