package models

import (
	"time"

	"github.com/google/uuid"
)

type FormQuestion struct {
	ID                      uuid.UUID `gorm:"column:question_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceCategoryID       uuid.UUID `gorm:"type:uuid;not null;index"`
	StepNumber              int       `gorm:"not null"`
	DisplayOrderInStep      int       `gorm:"not null;default:0"`
	QuestionText            string    `gorm:"type:text;not null"`
	IsMultipleChoice        bool      `gorm:"not null;default:false"`
	AllowMultipleSelections bool      `gorm:"not null;default:false"`
	AnswerOptions           *string   `gorm:"type:jsonb"`
	IsRequired              bool      `gorm:"not null;default:false"`
	Status                  string    `gorm:"type:varchar(20);not null;default:'active'"`
	IsDeleted               bool      `gorm:"not null;default:false"`
	ConditionalDisplay      *string   `gorm:"type:jsonb"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (FormQuestion) TableName() string {
	return "form_questions"
}
