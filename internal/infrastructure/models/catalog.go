package models

import (
	"time"

	"github.com/google/uuid"
)

type ServiceCategory struct {
	ID        uuid.UUID `gorm:"column:service_category_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Slug      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (ServiceCategory) TableName() string {
	return "service_categories"
}

type Addon struct {
	ID                uuid.UUID  `gorm:"column:addon_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceCategoryID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID         *uuid.UUID `gorm:"type:uuid;index"`
	Title             string     `gorm:"type:varchar(255);not null"`
	Description       *string    `gorm:"type:text"`
	Price             float64    `gorm:"type:decimal(10,2);not null;default:0"`
	ImageURL          *string    `gorm:"type:text"`
	DisplayOrder      int        `gorm:"not null;default:0"`
	IsActive          bool       `gorm:"not null;default:true"`
	CreatedAt         time.Time
}

func (Addon) TableName() string {
	return "addons"
}

type CategoryField struct {
	ID                uuid.UUID `gorm:"column:field_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceCategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_fields_category_key"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Key               string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_fields_category_key"`
	FieldType         string    `gorm:"type:varchar(50);not null"`
	IsRequired        bool      `gorm:"not null;default:false"`
	Options           *string   `gorm:"type:jsonb"`
	DisplayOrder      int       `gorm:"not null;default:0"`
	CreatedAt         time.Time
}

func (CategoryField) TableName() string {
	return "category_fields"
}
