package entities

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategory is a line of business such as boilers or solar.
type ServiceCategory struct {
	ID        uuid.UUID `json:"service_category_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
