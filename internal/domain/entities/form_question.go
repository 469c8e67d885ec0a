package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuestionStatus represents question publication status
type QuestionStatus string

const (
	QuestionStatusActive   QuestionStatus = "active"
	QuestionStatusInactive QuestionStatus = "inactive"
)

// LogicalOperator combines multi-select answers against show_when_answer_equals
type LogicalOperator string

const (
	LogicalOperatorAnd LogicalOperator = "AND"
	LogicalOperatorOr  LogicalOperator = "OR"
)

// ConditionalDisplay gates a question on an earlier question's answer.
type ConditionalDisplay struct {
	DependentOnQuestionID uuid.UUID       `json:"dependent_on_question_id"`
	ShowWhenAnswerEquals  []string        `json:"show_when_answer_equals"`
	LogicalOperator       LogicalOperator `json:"logical_operator,omitempty"`
}

// FormQuestion represents one question of a category's quote form
type FormQuestion struct {
	ID                      uuid.UUID           `json:"question_id"`
	ServiceCategoryID       uuid.UUID           `json:"service_category_id"`
	StepNumber              int                 `json:"step_number"`
	DisplayOrderInStep      int                 `json:"display_order_in_step"`
	QuestionText            string              `json:"question_text"`
	IsMultipleChoice        bool                `json:"is_multiple_choice"`
	AllowMultipleSelections bool                `json:"allow_multiple_selections"`
	AnswerOptions           []string            `json:"answer_options,omitempty"`
	IsRequired              bool                `json:"is_required"`
	Status                  QuestionStatus      `json:"status"`
	IsDeleted               bool                `json:"is_deleted"`
	ConditionalDisplay      *ConditionalDisplay `json:"conditional_display"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// IsLive reports whether the question may be shown at all.
func (q *FormQuestion) IsLive() bool {
	return !q.IsDeleted && q.Status == QuestionStatusActive
}

// HasOption reports whether value is one of the question's answer options.
func (q *FormQuestion) HasOption(value string) bool {
	for _, opt := range q.AnswerOptions {
		if opt == value {
			return true
		}
	}
	return false
}

// FormQuestionInput represents admin input for creating or replacing a question
type FormQuestionInput struct {
	ServiceCategoryID       uuid.UUID           `json:"service_category_id"`
	StepNumber              int                 `json:"step_number" binding:"required,min=1"`
	DisplayOrderInStep      int                 `json:"display_order_in_step"`
	QuestionText            string              `json:"question_text" binding:"required"`
	IsMultipleChoice        bool                `json:"is_multiple_choice"`
	AllowMultipleSelections bool                `json:"allow_multiple_selections"`
	AnswerOptions           []string            `json:"answer_options"`
	IsRequired              bool                `json:"is_required"`
	Status                  QuestionStatus      `json:"status"`
	ConditionalDisplay      *ConditionalDisplay `json:"conditional_display"`
}

// StepQuestions groups visible questions of one step.
type StepQuestions struct {
	StepNumber int             `json:"step_number"`
	Questions  []*FormQuestion `json:"questions"`
}

// StepValidationResult reports whether a step can be advanced.
type StepValidationResult struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
	Invalid  []string `json:"invalid,omitempty"`
}
