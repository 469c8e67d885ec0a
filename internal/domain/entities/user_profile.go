package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRolePartner UserRole = "partner"
)

// UserProfile maps an identity-provider user to a platform role.
type UserProfile struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderSession is what the identity provider returns for an exchanged code.
type ProviderSession struct {
	UserID       uuid.UUID
	Email        string
	AccessToken  string
	RefreshToken string
}

// AuthRedirect is the outcome of an auth callback.
type AuthRedirect struct {
	Location  string
	SessionID string
}
