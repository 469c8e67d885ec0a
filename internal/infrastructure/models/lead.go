package models

import (
	"time"

	"github.com/google/uuid"
)

type PartnerLead struct {
	ID                uuid.UUID  `gorm:"column:lead_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PartnerID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceCategoryID *uuid.UUID `gorm:"type:uuid"`
	FirstName         string     `gorm:"type:varchar(255);not null"`
	LastName          string     `gorm:"type:varchar(255)"`
	Email             string     `gorm:"type:varchar(255);not null"`
	Phone             string     `gorm:"type:varchar(50)"`
	Postcode          string     `gorm:"type:varchar(16)"`
	FormAnswers       string     `gorm:"type:jsonb;not null;default:'{}'"`
	ProgressStep      string     `gorm:"type:varchar(20);not null;default:'enquiry'"`
	Status            string     `gorm:"type:varchar(20);not null;default:'new'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (PartnerLead) TableName() string {
	return "partner_leads"
}
