package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/utils"
)

// FormUsecase serves the customer quote form and the admin question bank
type FormUsecase struct {
	categoryRepo repositories.ServiceCategoryRepository
	questionRepo repositories.FormQuestionRepository
}

func NewFormUsecase(categoryRepo repositories.ServiceCategoryRepository, questionRepo repositories.FormQuestionRepository) *FormUsecase {
	return &FormUsecase{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
	}
}

func (u *FormUsecase) activeCategory(ctx context.Context, slug string) (*entities.ServiceCategory, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domainerrors.BadRequest("categorySlug is required")
	}
	category, err := u.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, domainerrors.ErrNotFound
	}
	return category, nil
}

// ListQuestions returns the live questions of a category in display order.
func (u *FormUsecase) ListQuestions(ctx context.Context, slug string) ([]*entities.FormQuestion, error) {
	category, err := u.activeCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	all, err := u.questionRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	live := make([]*entities.FormQuestion, 0, len(all))
	for _, q := range sortQuestions(all) {
		if q.IsLive() {
			live = append(live, q)
		}
	}
	return live, nil
}

// VisibleSteps evaluates conditional display for the answers given so far.
func (u *FormUsecase) VisibleSteps(ctx context.Context, slug string, answers entities.Answers) ([]entities.StepQuestions, error) {
	category, err := u.activeCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	all, err := u.questionRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return GroupBySteps(VisibleQuestions(all, answers)), nil
}

// ValidateStep checks whether the customer may advance past step.
func (u *FormUsecase) ValidateStep(ctx context.Context, slug string, step int, answers entities.Answers) (*entities.StepValidationResult, error) {
	if step < 1 {
		return nil, domainerrors.BadRequest("step must be a positive number")
	}
	category, err := u.activeCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	all, err := u.questionRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	result := ValidateAnswers(all, answers, step)
	return &result, nil
}

// AdminListQuestions returns every non-deleted question of a category, inactive ones included.
func (u *FormUsecase) AdminListQuestions(ctx context.Context, categoryID uuid.UUID) ([]*entities.FormQuestion, error) {
	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	all, err := u.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.FormQuestion, 0, len(all))
	for _, q := range sortQuestions(all) {
		if !q.IsDeleted {
			out = append(out, q)
		}
	}
	return out, nil
}

// CreateQuestion adds a question to the bank after checking its dependency.
func (u *FormUsecase) CreateQuestion(ctx context.Context, input *entities.FormQuestionInput) (*entities.FormQuestion, error) {
	if input.ServiceCategoryID == uuid.Nil {
		return nil, domainerrors.BadRequest("service_category_id is required")
	}
	if _, err := u.categoryRepo.GetByID(ctx, input.ServiceCategoryID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("unknown service_category_id")
		}
		return nil, err
	}

	question := &entities.FormQuestion{ID: utils.GenerateUUIDv7()}
	if err := applyQuestionInput(question, input); err != nil {
		return nil, err
	}
	question.ServiceCategoryID = input.ServiceCategoryID

	all, err := u.questionRepo.ListByCategory(ctx, question.ServiceCategoryID)
	if err != nil {
		return nil, err
	}
	if err := ValidateDependency(question, all); err != nil {
		return nil, err
	}

	if err := u.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion replaces a question's content. The category never changes,
// and questions that depend on this one must stay on later steps.
func (u *FormUsecase) UpdateQuestion(ctx context.Context, id uuid.UUID, input *entities.FormQuestionInput) (*entities.FormQuestion, error) {
	question, err := u.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question.IsDeleted {
		return nil, domainerrors.ErrNotFound
	}
	if err := applyQuestionInput(question, input); err != nil {
		return nil, err
	}

	all, err := u.questionRepo.ListByCategory(ctx, question.ServiceCategoryID)
	if err != nil {
		return nil, err
	}
	if err := ValidateDependency(question, all); err != nil {
		return nil, err
	}
	for _, q := range all {
		if q.IsDeleted || q.ConditionalDisplay == nil || q.ConditionalDisplay.DependentOnQuestionID != question.ID {
			continue
		}
		if q.StepNumber <= question.StepNumber {
			return nil, fmt.Errorf("%w: question %s depends on this one and must stay on a later step", domainerrors.ErrInvalidDependency, q.ID)
		}
	}

	if err := u.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion soft-deletes a question. Questions gated on it become hidden.
func (u *FormUsecase) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return u.questionRepo.SoftDelete(ctx, id)
}

func applyQuestionInput(q *entities.FormQuestion, input *entities.FormQuestionInput) error {
	if input.StepNumber < 1 {
		return domainerrors.BadRequest("step_number must be at least 1")
	}
	text := strings.TrimSpace(input.QuestionText)
	if text == "" {
		return domainerrors.BadRequest("question_text is required")
	}

	status := input.Status
	if status == "" {
		status = entities.QuestionStatusActive
	}
	if status != entities.QuestionStatusActive && status != entities.QuestionStatusInactive {
		return domainerrors.BadRequest("status must be active or inactive")
	}

	var options []string
	if input.IsMultipleChoice {
		for _, opt := range input.AnswerOptions {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		if len(options) == 0 {
			return domainerrors.BadRequest("answer_options are required for multiple-choice questions")
		}
	}
	if input.AllowMultipleSelections && !input.IsMultipleChoice {
		return domainerrors.BadRequest("allow_multiple_selections requires a multiple-choice question")
	}

	var cond *entities.ConditionalDisplay
	if input.ConditionalDisplay != nil {
		c := *input.ConditionalDisplay
		c.LogicalOperator = entities.LogicalOperator(strings.ToUpper(strings.TrimSpace(string(c.LogicalOperator))))
		if c.LogicalOperator == "" {
			c.LogicalOperator = entities.LogicalOperatorOr
		}
		cond = &c
	}

	q.StepNumber = input.StepNumber
	q.DisplayOrderInStep = input.DisplayOrderInStep
	q.QuestionText = text
	q.IsMultipleChoice = input.IsMultipleChoice
	q.AllowMultipleSelections = input.AllowMultipleSelections
	q.AnswerOptions = options
	q.IsRequired = input.IsRequired
	q.Status = status
	q.ConditionalDisplay = cond
	return nil
}
