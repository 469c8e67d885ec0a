// Package events defines the analytics side channel. Emission is fire-and-forget
// with at-most-once delivery: callers never wait for or observe the outcome.
package events

import (
	"context"
	"time"
)

// Event names
const (
	LeadCreated          = "lead_created"
	LeadPhaseApplied     = "lead_phase_applied"
	PaymentIntentCreated = "payment_intent_created"
	CRMConnected         = "crm_connected"
	PartnerStatusChanged = "partner_status_changed"
	DomainVerified       = "domain_verified"
)

// Event is one analytics event
type Event struct {
	Name       string                 `json:"event"`
	PartnerID  string                 `json:"partner_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Emitter publishes analytics events. Emit must not block on delivery and never returns an error.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Nop discards events
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}
