package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CategoryField is a custom product attribute defined per service category.
type CategoryField struct {
	ID                uuid.UUID       `json:"field_id"`
	ServiceCategoryID uuid.UUID       `json:"service_category_id"`
	Name              string          `json:"name"`
	Key               string          `json:"key"`
	FieldType         string          `json:"field_type"`
	IsRequired        bool            `json:"is_required"`
	Options           json.RawMessage `json:"options,omitempty"`
	DisplayOrder      int             `json:"display_order"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateCategoryFieldInput represents input for creating a category field
type CreateCategoryFieldInput struct {
	ServiceCategoryID string          `json:"service_category_id"`
	Name              string          `json:"name"`
	Key               string          `json:"key"`
	FieldType         string          `json:"field_type"`
	IsRequired        bool            `json:"is_required"`
	Options           json.RawMessage `json:"options"`
	DisplayOrder      *int            `json:"display_order"`
}

// FieldOrderUpdate moves one field
type FieldOrderUpdate struct {
	FieldID      uuid.UUID `json:"field_id"`
	DisplayOrder int       `json:"display_order"`
}

// ReorderCategoryFieldsInput represents a reorder batch
type ReorderCategoryFieldsInput struct {
	Updates []FieldOrderUpdate `json:"updates"`
}
