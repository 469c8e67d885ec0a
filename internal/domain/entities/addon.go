package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Addon is an optional extra offered with a quote. A null PartnerID means the
// addon is global to the category.
type Addon struct {
	ID                uuid.UUID     `json:"addon_id"`
	ServiceCategoryID uuid.UUID     `json:"service_category_id"`
	PartnerID         uuid.NullUUID `json:"partner_id"`
	Title             string        `json:"title"`
	Description       null.String   `json:"description"`
	Price             float64       `json:"price"`
	ImageURL          null.String   `json:"image_url"`
	DisplayOrder      int           `json:"display_order"`
	IsActive          bool          `json:"is_active"`
	CreatedAt         time.Time     `json:"created_at"`
}
