package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/infrastructure/models"
)

// FormQuestionRepository implements form question operations
type FormQuestionRepository struct {
	db *gorm.DB
}

// NewFormQuestionRepository creates a new form question repository
func NewFormQuestionRepository(db *gorm.DB) *FormQuestionRepository {
	return &FormQuestionRepository{db: db}
}

// ListByCategory lists every question of a category in form order
func (r *FormQuestionRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.FormQuestion, error) {
	var rows []models.FormQuestion
	err := GetDB(ctx, r.db).
		Where("service_category_id = ?", categoryID).
		Order("step_number ASC, display_order_in_step ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.FormQuestion, 0, len(rows))
	for i := range rows {
		q, err := r.toEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// GetByID gets a question by ID
func (r *FormQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FormQuestion, error) {
	var m models.FormQuestion
	if err := GetDB(ctx, r.db).Where("question_id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m)
}

// Create creates a question
func (r *FormQuestionRepository) Create(ctx context.Context, question *entities.FormQuestion) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	now := time.Now()
	question.CreatedAt, question.UpdatedAt = now, now

	m, err := r.toModel(question)
	if err != nil {
		return err
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// Update replaces the authorable fields of a question
func (r *FormQuestionRepository) Update(ctx context.Context, question *entities.FormQuestion) error {
	m, err := r.toModel(question)
	if err != nil {
		return err
	}
	question.UpdatedAt = time.Now()

	result := GetDB(ctx, r.db).Model(&models.FormQuestion{}).
		Where("question_id = ? AND is_deleted = ?", question.ID, false).
		Updates(map[string]interface{}{
			"step_number":               m.StepNumber,
			"display_order_in_step":     m.DisplayOrderInStep,
			"question_text":             m.QuestionText,
			"is_multiple_choice":        m.IsMultipleChoice,
			"allow_multiple_selections": m.AllowMultipleSelections,
			"answer_options":            m.AnswerOptions,
			"is_required":               m.IsRequired,
			"status":                    m.Status,
			"conditional_display":       m.ConditionalDisplay,
			"updated_at":                question.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete flags a question as deleted
func (r *FormQuestionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.FormQuestion{}).
		Where("question_id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *FormQuestionRepository) toEntity(m *models.FormQuestion) (*entities.FormQuestion, error) {
	q := &entities.FormQuestion{
		ID:                      m.ID,
		ServiceCategoryID:       m.ServiceCategoryID,
		StepNumber:              m.StepNumber,
		DisplayOrderInStep:      m.DisplayOrderInStep,
		QuestionText:            m.QuestionText,
		IsMultipleChoice:        m.IsMultipleChoice,
		AllowMultipleSelections: m.AllowMultipleSelections,
		IsRequired:              m.IsRequired,
		Status:                  entities.QuestionStatus(m.Status),
		IsDeleted:               m.IsDeleted,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
	if m.AnswerOptions != nil && *m.AnswerOptions != "" {
		if err := json.Unmarshal([]byte(*m.AnswerOptions), &q.AnswerOptions); err != nil {
			return nil, err
		}
	}
	if m.ConditionalDisplay != nil && *m.ConditionalDisplay != "" && *m.ConditionalDisplay != "null" {
		var cd entities.ConditionalDisplay
		if err := json.Unmarshal([]byte(*m.ConditionalDisplay), &cd); err != nil {
			return nil, err
		}
		q.ConditionalDisplay = &cd
	}
	return q, nil
}

func (r *FormQuestionRepository) toModel(q *entities.FormQuestion) (*models.FormQuestion, error) {
	m := &models.FormQuestion{
		ID:                      q.ID,
		ServiceCategoryID:       q.ServiceCategoryID,
		StepNumber:              q.StepNumber,
		DisplayOrderInStep:      q.DisplayOrderInStep,
		QuestionText:            q.QuestionText,
		IsMultipleChoice:        q.IsMultipleChoice,
		AllowMultipleSelections: q.AllowMultipleSelections,
		IsRequired:              q.IsRequired,
		Status:                  string(q.Status),
		IsDeleted:               q.IsDeleted,
		CreatedAt:               q.CreatedAt,
		UpdatedAt:               q.UpdatedAt,
	}
	if q.IsMultipleChoice {
		raw, err := json.Marshal(q.AnswerOptions)
		if err != nil {
			return nil, err
		}
		m.AnswerOptions = nullableString(string(raw))
	}
	if q.ConditionalDisplay != nil {
		raw, err := json.Marshal(q.ConditionalDisplay)
		if err != nil {
			return nil, err
		}
		m.ConditionalDisplay = nullableString(string(raw))
	}
	return m, nil
}
