package usecases

import (
	"context"

	"homequote.backend/internal/domain/entities"
)

// PaymentGateway creates card payment intents.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, secretKey string, amount int64, currency, idempotencyKey string) (string, error)
}

// PostcodeLookupService resolves UK postcodes.
type PostcodeLookupService interface {
	Lookup(ctx context.Context, postcode string) (*entities.PostcodeLookup, error)
}

// IdentityProvider redeems OAuth authorization codes issued by the hosted sign-in page.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*entities.ProviderSession, error)
}

// CRMProvider is the CRM OAuth and read API.
type CRMProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*entities.CRMTokenSet, error)
	Refresh(ctx context.Context, refreshToken, locationID string) (*entities.CRMTokenSet, error)
	ListCustomFields(ctx context.Context, accessToken, locationID string) ([]entities.CRMCustomField, error)
	ListPipelines(ctx context.Context, accessToken, locationID string) ([]entities.CRMPipeline, error)
}

// OAuthStateStore keeps single-use OAuth state values.
type OAuthStateStore interface {
	Save(ctx context.Context, state, value string) error
	Consume(ctx context.Context, state string) (string, error)
}

// TokenSealer encrypts credentials at rest.
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// DomainVerifier checks DNS ownership proofs for custom domains.
type DomainVerifier interface {
	RecordName(domain string) string
	Verify(ctx context.Context, domain, token string) (bool, error)
}
