package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/usecases"
)

func boilersCategory() *entities.ServiceCategory {
	return &entities.ServiceCategory{ID: testCategoryID, Name: "Boilers", Slug: "boilers", IsActive: true}
}

func TestFormUsecase_ListQuestionsSkipsDeadQuestions(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	live := question(1, 0)
	dead := question(1, 1, func(q *entities.FormQuestion) { q.IsDeleted = true })
	categories.On("GetBySlug", mock.Anything, "boilers").Return(boilersCategory(), nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{dead, live}, nil)

	got, err := uc.ListQuestions(context.Background(), "boilers")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{live.ID}, ids(got))
}

func TestFormUsecase_InactiveCategoryIsNotFound(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	uc := usecases.NewFormUsecase(categories, new(MockFormQuestionRepository))

	inactive := boilersCategory()
	inactive.IsActive = false
	categories.On("GetBySlug", mock.Anything, "boilers").Return(inactive, nil)

	_, err := uc.ListQuestions(context.Background(), "boilers")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = uc.ListQuestions(context.Background(), " ")
	assert.Equal(t, 400, domainerrors.From(err).Status)
}

func TestFormUsecase_VisibleStepsAndValidateStep(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	q1 := question(1, 0, required, choices("Yes", "No"))
	q2 := question(2, 0, required, dependsOn(q1, entities.LogicalOperatorOr, "Yes"))
	categories.On("GetBySlug", mock.Anything, "boilers").Return(boilersCategory(), nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{q1, q2}, nil)

	answers := entities.Answers{q1.ID.String(): entities.SingleAnswer("Yes")}
	steps, err := uc.VisibleSteps(context.Background(), "boilers", answers)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	result, err := uc.ValidateStep(context.Background(), "boilers", 2, answers)
	require.NoError(t, err)
	assert.False(t, result.Complete)
	assert.Equal(t, []string{q2.ID.String()}, result.Missing)

	_, err = uc.ValidateStep(context.Background(), "boilers", 0, answers)
	assert.Equal(t, 400, domainerrors.From(err).Status)
}

func TestFormUsecase_CreateQuestion(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	q1 := question(1, 0, choices("Yes", "No"))
	categories.On("GetByID", mock.Anything, testCategoryID).Return(boilersCategory(), nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{q1}, nil)
	questions.On("Create", mock.Anything, mock.AnythingOfType("*entities.FormQuestion")).Return(nil).Once()

	created, err := uc.CreateQuestion(context.Background(), &entities.FormQuestionInput{
		ServiceCategoryID: testCategoryID,
		StepNumber:        2,
		QuestionText:      "  Which fuel?  ",
		ConditionalDisplay: &entities.ConditionalDisplay{
			DependentOnQuestionID: q1.ID,
			ShowWhenAnswerEquals:  []string{"Yes"},
			LogicalOperator:       "and",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Which fuel?", created.QuestionText)
	assert.Equal(t, entities.QuestionStatusActive, created.Status)
	assert.Equal(t, entities.LogicalOperatorAnd, created.ConditionalDisplay.LogicalOperator)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestFormUsecase_CreateQuestionValidation(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	q1 := question(2, 0)
	categories.On("GetByID", mock.Anything, testCategoryID).Return(boilersCategory(), nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{q1}, nil)

	inputs := []*entities.FormQuestionInput{
		{StepNumber: 1, QuestionText: "no category"},
		{ServiceCategoryID: testCategoryID, StepNumber: 0, QuestionText: "bad step"},
		{ServiceCategoryID: testCategoryID, StepNumber: 1, QuestionText: "   "},
		{ServiceCategoryID: testCategoryID, StepNumber: 1, QuestionText: "mc", IsMultipleChoice: true},
		{ServiceCategoryID: testCategoryID, StepNumber: 1, QuestionText: "multi", AllowMultipleSelections: true},
		{ServiceCategoryID: testCategoryID, StepNumber: 2, QuestionText: "same step", ConditionalDisplay: &entities.ConditionalDisplay{
			DependentOnQuestionID: q1.ID, ShowWhenAnswerEquals: []string{"x"},
		}},
	}
	for i, in := range inputs {
		_, err := uc.CreateQuestion(context.Background(), in)
		assert.Equal(t, 400, domainerrors.From(err).Status, i)
	}
	questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFormUsecase_UpdateQuestionKeepsDependentsLater(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	q1 := question(1, 0, choices("Yes", "No"))
	q2 := question(2, 0, dependsOn(q1, entities.LogicalOperatorOr, "Yes"))
	questions.On("GetByID", mock.Anything, q1.ID).Return(q1, nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{q1, q2}, nil)

	_, err := uc.UpdateQuestion(context.Background(), q1.ID, &entities.FormQuestionInput{
		StepNumber:       2,
		QuestionText:     "moved",
		IsMultipleChoice: true,
		AnswerOptions:    []string{"Yes", "No"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDependency)
	questions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFormUsecase_UpdateAndDelete(t *testing.T) {
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(new(MockServiceCategoryRepository), questions)

	q := question(1, 0)
	questions.On("GetByID", mock.Anything, q.ID).Return(q, nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{q}, nil)
	questions.On("Update", mock.Anything, q).Return(nil).Once()
	questions.On("SoftDelete", mock.Anything, q.ID).Return(nil).Once()

	updated, err := uc.UpdateQuestion(context.Background(), q.ID, &entities.FormQuestionInput{
		StepNumber:   1,
		QuestionText: "renamed",
		Status:       entities.QuestionStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.QuestionText)
	assert.Equal(t, entities.QuestionStatusInactive, updated.Status)

	require.NoError(t, uc.DeleteQuestion(context.Background(), q.ID))
	questions.AssertExpectations(t)
}

func TestFormUsecase_AdminListQuestions(t *testing.T) {
	categories := new(MockServiceCategoryRepository)
	questions := new(MockFormQuestionRepository)
	uc := usecases.NewFormUsecase(categories, questions)

	inactive := question(1, 0, func(q *entities.FormQuestion) { q.Status = entities.QuestionStatusInactive })
	deleted := question(1, 1, func(q *entities.FormQuestion) { q.IsDeleted = true })
	categories.On("GetByID", mock.Anything, testCategoryID).Return(boilersCategory(), nil)
	questions.On("ListByCategory", mock.Anything, testCategoryID).Return([]*entities.FormQuestion{inactive, deleted}, nil)

	got, err := uc.AdminListQuestions(context.Background(), testCategoryID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{inactive.ID}, ids(got))
}
