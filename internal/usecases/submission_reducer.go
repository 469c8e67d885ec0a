package usecases

import (
	"fmt"
	"strings"
	"time"

	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
)

// FoldSubmission applies one phase to a lead's form_answers document and
// returns the new document and progress step. Each phase owns its own key of
// the document, answers are merged by question id, and the progress step only
// moves forward. The input document is not modified.
func FoldSubmission(doc entities.SubmissionDocument, current entities.ProgressStep, phase entities.SubmissionPhase, at time.Time) (entities.SubmissionDocument, entities.ProgressStep, error) {
	next := cloneDocument(doc)

	switch p := phase.(type) {
	case entities.EnquiryPhase:
		next.Answers = next.Answers.Merge(p.Answers)
		details := entities.EnquiryDetails{Message: strings.TrimSpace(p.Message), SubmittedAt: at}
		if next.Enquiry != nil && details.Message == "" {
			details.Message = next.Enquiry.Message
		}
		next.Enquiry = &details

	case entities.SurveyPhase:
		if len(p.Answers) > 0 {
			next.Answers = next.Answers.Merge(p.Answers)
		}
		next.Survey = &entities.SurveyDetails{
			PreferredDate: strings.TrimSpace(p.PreferredDate),
			PropertyType:  strings.TrimSpace(p.PropertyType),
			Notes:         strings.TrimSpace(p.Notes),
			SubmittedAt:   at,
		}

	case entities.PaymentPhase:
		if strings.TrimSpace(p.PaymentIntentID) == "" {
			return doc, current, domainerrors.BadRequest("payment_intent_id is required")
		}
		switch p.Outcome {
		case entities.PaymentOutcomePending, entities.PaymentOutcomeSucceeded, entities.PaymentOutcomeFailed:
		default:
			return doc, current, domainerrors.BadRequest("outcome must be pending, succeeded or failed")
		}
		if p.Amount < 0 {
			return doc, current, domainerrors.BadRequest("amount must not be negative")
		}
		if next.Payment != nil && next.Payment.Outcome == entities.PaymentOutcomeSucceeded {
			return doc, current, fmt.Errorf("%w: payment already succeeded", domainerrors.ErrInvalidTransition)
		}
		next.Payment = &entities.PaymentDetails{
			PaymentIntentID: p.PaymentIntentID,
			Amount:          p.Amount,
			Currency:        strings.ToLower(p.Currency),
			Outcome:         p.Outcome,
			RecordedAt:      at,
		}

	default:
		return doc, current, fmt.Errorf("%w: unknown submission phase", domainerrors.ErrBadRequest)
	}

	next.History = append(next.History, entities.PhaseRecord{Phase: phase.PhaseName(), AppliedAt: at})

	step := current
	if phase.Step().Rank() > current.Rank() {
		step = phase.Step()
	}
	return next, step, nil
}

func cloneDocument(doc entities.SubmissionDocument) entities.SubmissionDocument {
	out := entities.SubmissionDocument{
		Answers: entities.Answers{}.Merge(doc.Answers),
		History: append([]entities.PhaseRecord(nil), doc.History...),
	}
	if doc.Enquiry != nil {
		e := *doc.Enquiry
		out.Enquiry = &e
	}
	if doc.Survey != nil {
		s := *doc.Survey
		out.Survey = &s
	}
	if doc.Payment != nil {
		p := *doc.Payment
		out.Payment = &p
	}
	return out
}
