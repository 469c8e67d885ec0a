package repositories

import (
	"context"

	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
)

// LeadRepository defines partner lead operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entities.PartnerLead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error)
	// GetByIDForUpdate locks the row for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*entities.PartnerLead, int64, error)
	// UpdateSubmission writes only form_answers and progress_step.
	UpdateSubmission(ctx context.Context, id uuid.UUID, doc entities.SubmissionDocument, step entities.ProgressStep) error
}
