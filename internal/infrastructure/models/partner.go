package models

import (
	"time"

	"github.com/google/uuid"
)

type PartnerProfile struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName             string    `gorm:"type:varchar(255);not null"`
	Subdomain               string    `gorm:"type:varchar(63);not null"`
	CustomDomain            *string   `gorm:"type:varchar(255)"`
	DomainVerified          bool      `gorm:"not null;default:false"`
	DomainVerificationToken *string   `gorm:"type:varchar(64)"`
	Status                  string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CompanyColor            *string   `gorm:"type:varchar(7)"`
	LogoURL                 *string   `gorm:"type:text"`
	HeaderCode              string    `gorm:"type:text;not null;default:''"`
	BodyCode                string    `gorm:"type:text;not null;default:''"`
	FooterCode              string    `gorm:"type:text;not null;default:''"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (PartnerProfile) TableName() string {
	return "partner_profiles"
}

type UserProfile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'partner'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
