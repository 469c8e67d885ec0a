package entities

import (
	"time"

	"github.com/google/uuid"
)

// CRMProviderGHL is the GoHighLevel provider key
const CRMProviderGHL = "ghl"

// CRMIntegration is a partner's connected CRM account. Tokens are stored sealed.
type CRMIntegration struct {
	ID                 uuid.UUID `json:"id"`
	PartnerID          uuid.UUID `json:"partner_id"`
	Provider           string    `json:"provider"`
	LocationID         string    `json:"location_id"`
	SealedAccessToken  string    `json:"-"`
	SealedRefreshToken string    `json:"-"`
	ExpiresAt          time.Time `json:"expires_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CRMFieldMapping maps a lead attribute to a CRM custom field
type CRMFieldMapping struct {
	PartnerID  uuid.UUID `json:"-"`
	LeadKey    string    `json:"lead_key"`
	CRMFieldID string    `json:"crm_field_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SaveFieldMappingsInput represents a field-mapping batch
type SaveFieldMappingsInput struct {
	Mappings []CRMFieldMapping `json:"mappings"`
}

// CRMCustomField is a custom field defined in the CRM location
type CRMCustomField struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FieldKey string `json:"field_key"`
	DataType string `json:"data_type"`
}

// CRMPipelineStage is one stage of a CRM pipeline
type CRMPipelineStage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CRMPipeline is a CRM opportunity pipeline
type CRMPipeline struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Stages []CRMPipelineStage `json:"stages"`
}

// CRMTokenSet is a decrypted OAuth token set
type CRMTokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	LocationID   string
}
