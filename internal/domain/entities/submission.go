package entities

import "time"

// SubmissionPhase is one partial update to a lead's form_answers document.
// The set of phases is closed: EnquiryPhase, SurveyPhase and PaymentPhase.
type SubmissionPhase interface {
	PhaseName() string
	// Step is the progress step the lead reaches once the phase is applied.
	Step() ProgressStep
	submissionPhase()
}

// EnquiryPhase adds or corrects enquiry answers.
type EnquiryPhase struct {
	Answers Answers `json:"answers"`
	Message string  `json:"message,omitempty"`
}

func (EnquiryPhase) PhaseName() string  { return "enquiry" }
func (EnquiryPhase) Step() ProgressStep { return ProgressStepEnquiry }
func (EnquiryPhase) submissionPhase()   {}

// SurveyPhase records the home survey booking.
type SurveyPhase struct {
	PreferredDate string  `json:"preferred_date,omitempty"`
	PropertyType  string  `json:"property_type,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Answers       Answers `json:"answers,omitempty"`
}

func (SurveyPhase) PhaseName() string  { return "survey" }
func (SurveyPhase) Step() ProgressStep { return ProgressStepSurvey }
func (SurveyPhase) submissionPhase()   {}

// PaymentOutcome is the customer-reported result of a payment attempt
type PaymentOutcome string

const (
	PaymentOutcomePending   PaymentOutcome = "pending"
	PaymentOutcomeSucceeded PaymentOutcome = "succeeded"
	PaymentOutcomeFailed    PaymentOutcome = "failed"
)

// PaymentPhase records a deposit payment.
type PaymentPhase struct {
	PaymentIntentID string         `json:"payment_intent_id" binding:"required"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	Outcome         PaymentOutcome `json:"outcome" binding:"required"`
}

func (PaymentPhase) PhaseName() string { return "payment" }

func (p PaymentPhase) Step() ProgressStep {
	if p.Outcome == PaymentOutcomeSucceeded {
		return ProgressStepCompleted
	}
	return ProgressStepPayment
}

func (PaymentPhase) submissionPhase() {}

// EnquiryDetails is the non-answer part of an enquiry
type EnquiryDetails struct {
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SurveyDetails is the stored survey booking
type SurveyDetails struct {
	PreferredDate string    `json:"preferred_date,omitempty"`
	PropertyType  string    `json:"property_type,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// PaymentDetails is the latest payment attempt
type PaymentDetails struct {
	PaymentIntentID string         `json:"payment_intent_id"`
	Amount          int64          `json:"amount"`
	Currency        string         `json:"currency"`
	Outcome         PaymentOutcome `json:"outcome"`
	RecordedAt      time.Time      `json:"recorded_at"`
}

// PhaseRecord is one entry of the document's append-only history.
type PhaseRecord struct {
	Phase     string    `json:"phase"`
	AppliedAt time.Time `json:"applied_at"`
}

// SubmissionDocument is the typed form_answers document of a lead.
type SubmissionDocument struct {
	Answers Answers         `json:"answers,omitempty"`
	Enquiry *EnquiryDetails `json:"enquiry,omitempty"`
	Survey  *SurveyDetails  `json:"survey,omitempty"`
	Payment *PaymentDetails `json:"payment,omitempty"`
	History []PhaseRecord   `json:"history,omitempty"`
}
