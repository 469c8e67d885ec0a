package models

import (
	"time"

	"github.com/google/uuid"
)

type CRMIntegration struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PartnerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partner_integrations_partner_provider"`
	Provider     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_partner_integrations_partner_provider"`
	LocationID   string    `gorm:"type:varchar(64);not null"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null"`
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CRMIntegration) TableName() string {
	return "partner_integrations"
}

type CRMFieldMapping struct {
	PartnerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeadKey    string    `gorm:"type:varchar(100);primaryKey"`
	CRMFieldID string    `gorm:"column:crm_field_id;type:varchar(100);not null"`
	UpdatedAt  time.Time
}

func (CRMFieldMapping) TableName() string {
	return "crm_field_mappings"
}
