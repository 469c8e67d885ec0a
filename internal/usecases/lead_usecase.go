package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/events"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/metrics"
	"homequote.backend/pkg/utils"
)

// LeadUsecase handles the customer submission flow and partner lead views
type LeadUsecase struct {
	leadRepo     repositories.LeadRepository
	categoryRepo repositories.ServiceCategoryRepository
	questionRepo repositories.FormQuestionRepository
	uow          repositories.UnitOfWork
	emitter      events.Emitter
	now          func() time.Time
}

func NewLeadUsecase(
	leadRepo repositories.LeadRepository,
	categoryRepo repositories.ServiceCategoryRepository,
	questionRepo repositories.FormQuestionRepository,
	uow repositories.UnitOfWork,
	emitter events.Emitter,
) *LeadUsecase {
	if emitter == nil {
		emitter = events.Nop{}
	}
	return &LeadUsecase{
		leadRepo:     leadRepo,
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
		uow:          uow,
		emitter:      emitter,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateEnquiry starts a lead for the partner serving the request.
func (u *LeadUsecase) CreateEnquiry(ctx context.Context, partner *entities.PartnerProfile, input *entities.CreateEnquiryInput) (*entities.PartnerLead, error) {
	if partner == nil {
		return nil, domainerrors.ErrNotFound
	}
	if !partner.IsActive() {
		return nil, domainerrors.ErrPartnerNotActive
	}

	category, err := u.categoryRepo.GetBySlug(ctx, strings.TrimSpace(input.CategorySlug))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("unknown category_slug")
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, domainerrors.BadRequest("category is not accepting enquiries")
	}

	if len(input.Answers) > 0 {
		questions, err := u.questionRepo.ListByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		for _, q := range VisibleQuestions(questions, input.Answers) {
			if answer, ok := input.Answers.For(q.ID); ok && !answer.IsEmpty() && !answerAllowed(q, answer) {
				return nil, domainerrors.BadRequest("answer to question " + q.ID.String() + " is not one of its options")
			}
		}
	}

	now := u.now()
	doc, step, err := FoldSubmission(entities.SubmissionDocument{}, entities.ProgressStepEnquiry, entities.EnquiryPhase{
		Answers: input.Answers,
		Message: input.Message,
	}, now)
	if err != nil {
		return nil, err
	}

	lead := &entities.PartnerLead{
		ID:                utils.GenerateUUIDv7(),
		PartnerID:         partner.ID,
		ServiceCategoryID: uuid.NullUUID{UUID: category.ID, Valid: true},
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:             strings.TrimSpace(input.Phone),
		Postcode:          NormalizePostcode(input.Postcode),
		FormAnswers:       doc,
		ProgressStep:      step,
		Status:            entities.LeadStatusNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	metrics.LeadTransitionsTotal.WithLabelValues(entities.EnquiryPhase{}.PhaseName()).Inc()
	u.emitter.Emit(ctx, events.Event{
		Name:      events.LeadCreated,
		PartnerID: partner.ID.String(),
		Payload: map[string]interface{}{
			"lead_id":       lead.ID.String(),
			"category_slug": category.Slug,
			"progress_step": string(lead.ProgressStep),
		},
	})
	return lead, nil
}

// ApplyPhase folds a later submission phase into a lead of partner. The read,
// merge and write happen under a row lock so concurrent phases never drop
// each other's keys.
func (u *LeadUsecase) ApplyPhase(ctx context.Context, partnerID, leadID uuid.UUID, phase entities.SubmissionPhase) (*entities.PartnerLead, error) {
	var updated *entities.PartnerLead
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lead, err := u.leadRepo.GetByIDForUpdate(txCtx, leadID)
		if err != nil {
			return err
		}
		// leads of other partners are indistinguishable from missing ones
		if lead.PartnerID != partnerID {
			return domainerrors.ErrNotFound
		}

		doc, step, err := FoldSubmission(lead.FormAnswers, lead.ProgressStep, phase, u.now())
		if err != nil {
			return err
		}
		if err := u.leadRepo.UpdateSubmission(txCtx, lead.ID, doc, step); err != nil {
			return err
		}

		lead.FormAnswers = doc
		lead.ProgressStep = step
		updated = lead
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LeadTransitionsTotal.WithLabelValues(phase.PhaseName()).Inc()
	u.emitter.Emit(ctx, events.Event{
		Name:      events.LeadPhaseApplied,
		PartnerID: partnerID.String(),
		Payload: map[string]interface{}{
			"lead_id":       leadID.String(),
			"phase":         phase.PhaseName(),
			"progress_step": string(updated.ProgressStep),
		},
	})
	return updated, nil
}

// ListForPartner returns one page of the partner's leads, newest first.
func (u *LeadUsecase) ListForPartner(ctx context.Context, partnerID uuid.UUID, page, limit int) ([]*entities.PartnerLead, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	leads, total, err := u.leadRepo.ListByPartner(ctx, partnerID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	if leads == nil {
		leads = []*entities.PartnerLead{}
	}
	return leads, utils.CalculateMeta(total, params), nil
}

// NormalizePostcode upper-cases a UK postcode and puts exactly one space
// before the inward code.
func NormalizePostcode(raw string) string {
	compact := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(compact) < 5 {
		return compact
	}
	return compact[:len(compact)-3] + " " + compact[len(compact)-3:]
}
