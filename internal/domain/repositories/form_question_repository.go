package repositories

import (
	"context"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
)

// FormQuestionRepository defines form question operations
type FormQuestionRepository interface {
	// ListByCategory returns all questions of a category including inactive and deleted ones.
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.FormQuestion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.FormQuestion, error)
	Create(ctx context.Context, question *entities.FormQuestion) error
	Update(ctx context.Context, question *entities.FormQuestion) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
