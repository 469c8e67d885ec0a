package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/infrastructure/models"
)

// LeadRepository implements partner lead operations
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a lead
func (r *LeadRepository) Create(ctx context.Context, lead *entities.PartnerLead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.ProgressStep == "" {
		lead.ProgressStep = entities.ProgressStepEnquiry
	}
	if lead.Status == "" {
		lead.Status = entities.LeadStatusNew
	}
	now := time.Now()
	lead.CreatedAt, lead.UpdatedAt = now, now

	doc, err := json.Marshal(lead.FormAnswers)
	if err != nil {
		return err
	}
	m := &models.PartnerLead{
		ID:           lead.ID,
		PartnerID:    lead.PartnerID,
		FirstName:    lead.FirstName,
		LastName:     lead.LastName,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Postcode:     lead.Postcode,
		FormAnswers:  string(doc),
		ProgressStep: string(lead.ProgressStep),
		Status:       string(lead.Status),
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
	}
	if lead.ServiceCategoryID.Valid {
		id := lead.ServiceCategoryID.UUID
		m.ServiceCategoryID = &id
	}
	return translateError(GetDB(ctx, r.db).Create(m).Error)
}

// GetByID gets a lead by ID
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error) {
	return r.get(GetDB(ctx, r.db), id)
}

// GetByIDForUpdate gets a lead and locks its row
func (r *LeadRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error) {
	return r.get(GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *LeadRepository) get(db *gorm.DB, id uuid.UUID) (*entities.PartnerLead, error) {
	var m models.PartnerLead
	if err := db.Where("lead_id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m)
}

// ListByPartner lists a partner's leads, newest first
func (r *LeadRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*entities.PartnerLead, int64, error) {
	var total int64
	base := GetDB(ctx, r.db).Model(&models.PartnerLead{}).Where("partner_id = ?", partnerID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PartnerLead
	query := GetDB(ctx, r.db).Where("partner_id = ?", partnerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.PartnerLead, 0, len(rows))
	for i := range rows {
		lead, err := r.toEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, lead)
	}
	return out, total, nil
}

// UpdateSubmission writes the folded document and progress step
func (r *LeadRepository) UpdateSubmission(ctx context.Context, id uuid.UUID, doc entities.SubmissionDocument, step entities.ProgressStep) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	result := GetDB(ctx, r.db).Model(&models.PartnerLead{}).
		Where("lead_id = ?", id).
		Updates(map[string]interface{}{
			"form_answers":  string(raw),
			"progress_step": string(step),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *LeadRepository) toEntity(m *models.PartnerLead) (*entities.PartnerLead, error) {
	lead := &entities.PartnerLead{
		ID:           m.ID,
		PartnerID:    m.PartnerID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		Postcode:     m.Postcode,
		ProgressStep: entities.ProgressStep(m.ProgressStep),
		Status:       entities.LeadStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.ServiceCategoryID != nil {
		lead.ServiceCategoryID = uuid.NullUUID{UUID: *m.ServiceCategoryID, Valid: true}
	}
	if m.FormAnswers != "" {
		if err := json.Unmarshal([]byte(m.FormAnswers), &lead.FormAnswers); err != nil {
			return nil, err
		}
	}
	return lead, nil
}
