package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PartnerStatus represents partner moderation status
type PartnerStatus string

const (
	PartnerStatusPending   PartnerStatus = "pending"
	PartnerStatusActive    PartnerStatus = "active"
	PartnerStatusSuspended PartnerStatus = "suspended"
)

// Valid reports whether s is a known status.
func (s PartnerStatus) Valid() bool {
	switch s {
	case PartnerStatusPending, PartnerStatusActive, PartnerStatusSuspended:
		return true
	}
	return false
}

// CanTransitionTo reports whether admin moderation may move a partner from s to next.
// Partners are never deleted, so there is no terminal state.
func (s PartnerStatus) CanTransitionTo(next PartnerStatus) bool {
	switch s {
	case PartnerStatusPending:
		return next == PartnerStatusActive || next == PartnerStatusSuspended
	case PartnerStatusActive:
		return next == PartnerStatusSuspended
	case PartnerStatusSuspended:
		return next == PartnerStatusActive
	}
	return false
}

// PartnerProfile represents a tenant
type PartnerProfile struct {
	ID                      uuid.UUID     `json:"id"`
	UserID                  uuid.UUID     `json:"user_id"`
	CompanyName             string        `json:"company_name"`
	Subdomain               string        `json:"subdomain"`
	CustomDomain            null.String   `json:"custom_domain"`
	DomainVerified          bool          `json:"domain_verified"`
	DomainVerificationToken null.String   `json:"-"`
	Status                  PartnerStatus `json:"status"`
	CompanyColor            null.String   `json:"company_color"`
	LogoURL                 null.String   `json:"logo_url"`
	HeaderCode              string        `json:"header_code"`
	BodyCode                string        `json:"body_code"`
	FooterCode              string        `json:"footer_code"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

// PartnerBranding is the public view of a partner served to customer pages.
type PartnerBranding struct {
	ID           uuid.UUID   `json:"id"`
	CompanyName  string      `json:"company_name"`
	Subdomain    string      `json:"subdomain"`
	CompanyColor null.String `json:"company_color"`
	LogoURL      null.String `json:"logo_url"`
}

// Branding returns the public fields of the partner.
func (p *PartnerProfile) Branding() PartnerBranding {
	return PartnerBranding{
		ID:           p.ID,
		CompanyName:  p.CompanyName,
		Subdomain:    p.Subdomain,
		CompanyColor: p.CompanyColor,
		LogoURL:      p.LogoURL,
	}
}

// IsActive reports whether the partner can serve customers.
func (p *PartnerProfile) IsActive() bool {
	return p.Status == PartnerStatusActive
}

// UpdatePartnerSettingsInput is a partial update; nil fields are left unchanged.
type UpdatePartnerSettingsInput struct {
	CompanyName  *string `json:"company_name"`
	CompanyColor *string `json:"company_color"`
	LogoURL      *string `json:"logo_url"`
	HeaderCode   *string `json:"header_code"`
	BodyCode     *string `json:"body_code"`
	FooterCode   *string `json:"footer_code"`
}

// SetCustomDomainInput represents input for binding a custom domain
type SetCustomDomainInput struct {
	Domain string `json:"domain" binding:"required"`
}

// DomainVerificationRecord tells the partner which DNS record proves domain ownership.
type DomainVerificationRecord struct {
	Domain     string `json:"domain"`
	RecordType string `json:"record_type"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Verified   bool   `json:"verified"`
}

// UpdatePartnerStatusInput represents admin moderation input
type UpdatePartnerStatusInput struct {
	Status PartnerStatus `json:"status" binding:"required"`
}

// CreatePartnerInput represents partner onboarding input
type CreatePartnerInput struct {
	CompanyName string `json:"company_name" binding:"required"`
	Subdomain   string `json:"subdomain" binding:"required"`
}
