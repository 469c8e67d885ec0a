package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStep tracks how far a customer has advanced
type ProgressStep string

const (
	ProgressStepEnquiry   ProgressStep = "enquiry"
	ProgressStepSurvey    ProgressStep = "survey"
	ProgressStepPayment   ProgressStep = "payment"
	ProgressStepCompleted ProgressStep = "completed"
)

// Rank orders steps; unknown steps rank below enquiry.
func (s ProgressStep) Rank() int {
	switch s {
	case ProgressStepEnquiry:
		return 1
	case ProgressStepSurvey:
		return 2
	case ProgressStepPayment:
		return 3
	case ProgressStepCompleted:
		return 4
	}
	return 0
}

// LeadStatus represents the partner's sales status for a lead
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusWon        LeadStatus = "won"
	LeadStatusLost       LeadStatus = "lost"
)

// PartnerLead is one customer enquiry for a partner
type PartnerLead struct {
	ID                uuid.UUID          `json:"lead_id"`
	PartnerID         uuid.UUID          `json:"partner_id"`
	ServiceCategoryID uuid.NullUUID      `json:"service_category_id"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone"`
	Postcode          string             `json:"postcode"`
	FormAnswers       SubmissionDocument `json:"form_answers"`
	ProgressStep      ProgressStep       `json:"progress_step"`
	Status            LeadStatus         `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// CreateEnquiryInput starts a lead from the customer quote form
type CreateEnquiryInput struct {
	CategorySlug string  `json:"category_slug" binding:"required"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone"`
	Postcode     string  `json:"postcode" binding:"required"`
	Message      string  `json:"message"`
	Answers      Answers `json:"answers"`
}
