package usecases_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/domain/events"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) Create(ctx context.Context, partner *entities.PartnerProfile) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartnerProfile), args.Error(1)
}

func (m *MockPartnerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartnerProfile), args.Error(1)
}

func (m *MockPartnerRepository) FindActiveByCustomDomains(ctx context.Context, hosts []string) ([]*entities.PartnerProfile, error) {
	args := m.Called(ctx, hosts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PartnerProfile), args.Error(1)
}

func (m *MockPartnerRepository) FindActiveBySubdomain(ctx context.Context, subdomain string) ([]*entities.PartnerProfile, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PartnerProfile), args.Error(1)
}

func (m *MockPartnerRepository) List(ctx context.Context, status entities.PartnerStatus) ([]*entities.PartnerProfile, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PartnerProfile), args.Error(1)
}

func (m *MockPartnerRepository) UpdateSettings(ctx context.Context, id uuid.UUID, input *entities.UpdatePartnerSettingsInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PartnerStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPartnerRepository) SetCustomDomain(ctx context.Context, id uuid.UUID, domain, token string) error {
	args := m.Called(ctx, id, domain, token)
	return args.Error(0)
}

func (m *MockPartnerRepository) MarkDomainVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Mock ServiceCategoryRepository
type MockServiceCategoryRepository struct {
	mock.Mock
}

func (m *MockServiceCategoryRepository) GetBySlug(ctx context.Context, slug string) (*entities.ServiceCategory, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServiceCategory), args.Error(1)
}

func (m *MockServiceCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServiceCategory), args.Error(1)
}

func (m *MockServiceCategoryRepository) List(ctx context.Context, activeOnly bool) ([]*entities.ServiceCategory, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ServiceCategory), args.Error(1)
}

// Mock AddonRepository
type MockAddonRepository struct {
	mock.Mock
}

func (m *MockAddonRepository) ListActive(ctx context.Context, categoryID uuid.UUID, partnerID *uuid.UUID) ([]*entities.Addon, error) {
	args := m.Called(ctx, categoryID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Addon), args.Error(1)
}

// Mock CategoryFieldRepository
type MockCategoryFieldRepository struct {
	mock.Mock
}

func (m *MockCategoryFieldRepository) Create(ctx context.Context, field *entities.CategoryField) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockCategoryFieldRepository) ExistsByKey(ctx context.Context, categoryID uuid.UUID, key string) (bool, error) {
	args := m.Called(ctx, categoryID, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryFieldRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.CategoryField, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CategoryField), args.Error(1)
}

func (m *MockCategoryFieldRepository) UpdateDisplayOrder(ctx context.Context, fieldID uuid.UUID, displayOrder int) error {
	args := m.Called(ctx, fieldID, displayOrder)
	return args.Error(0)
}

// Mock FormQuestionRepository
type MockFormQuestionRepository struct {
	mock.Mock
}

func (m *MockFormQuestionRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entities.FormQuestion, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FormQuestion), args.Error(1)
}

func (m *MockFormQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FormQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FormQuestion), args.Error(1)
}

func (m *MockFormQuestionRepository) Create(ctx context.Context, question *entities.FormQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockFormQuestionRepository) Update(ctx context.Context, question *entities.FormQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockFormQuestionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entities.PartnerLead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartnerLead), args.Error(1)
}

func (m *MockLeadRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.PartnerLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PartnerLead), args.Error(1)
}

func (m *MockLeadRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*entities.PartnerLead, int64, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.PartnerLead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) UpdateSubmission(ctx context.Context, id uuid.UUID, doc entities.SubmissionDocument, step entities.ProgressStep) error {
	args := m.Called(ctx, id, doc, step)
	return args.Error(0)
}

// Mock CRMIntegrationRepository
type MockCRMIntegrationRepository struct {
	mock.Mock
}

func (m *MockCRMIntegrationRepository) Upsert(ctx context.Context, integration *entities.CRMIntegration) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockCRMIntegrationRepository) GetByPartner(ctx context.Context, partnerID uuid.UUID, provider string) (*entities.CRMIntegration, error) {
	args := m.Called(ctx, partnerID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CRMIntegration), args.Error(1)
}

func (m *MockCRMIntegrationRepository) UpdateTokens(ctx context.Context, id uuid.UUID, sealedAccess, sealedRefresh string, expiresAt time.Time) error {
	args := m.Called(ctx, id, sealedAccess, sealedRefresh, expiresAt)
	return args.Error(0)
}

func (m *MockCRMIntegrationRepository) UpsertFieldMapping(ctx context.Context, mapping *entities.CRMFieldMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockCRMIntegrationRepository) ListFieldMappings(ctx context.Context, partnerID uuid.UUID) ([]*entities.CRMFieldMapping, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CRMFieldMapping), args.Error(1)
}

// Mock PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, secretKey string, amount int64, currency, idempotencyKey string) (string, error) {
	args := m.Called(ctx, secretKey, amount, currency, idempotencyKey)
	return args.String(0), args.Error(1)
}

// Mock PostcodeLookupService
type MockPostcodeLookup struct {
	mock.Mock
}

func (m *MockPostcodeLookup) Lookup(ctx context.Context, postcode string) (*entities.PostcodeLookup, error) {
	args := m.Called(ctx, postcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PostcodeLookup), args.Error(1)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code, verifier string) (*entities.ProviderSession, error) {
	args := m.Called(ctx, code, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProviderSession), args.Error(1)
}

// Mock CRMProvider
type MockCRMProvider struct {
	mock.Mock
}

func (m *MockCRMProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockCRMProvider) Exchange(ctx context.Context, code string) (*entities.CRMTokenSet, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CRMTokenSet), args.Error(1)
}

func (m *MockCRMProvider) Refresh(ctx context.Context, refreshToken, locationID string) (*entities.CRMTokenSet, error) {
	args := m.Called(ctx, refreshToken, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CRMTokenSet), args.Error(1)
}

func (m *MockCRMProvider) ListCustomFields(ctx context.Context, accessToken, locationID string) ([]entities.CRMCustomField, error) {
	args := m.Called(ctx, accessToken, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CRMCustomField), args.Error(1)
}

func (m *MockCRMProvider) ListPipelines(ctx context.Context, accessToken, locationID string) ([]entities.CRMPipeline, error) {
	args := m.Called(ctx, accessToken, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CRMPipeline), args.Error(1)
}

// Mock OAuthStateStore
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(ctx context.Context, state, value string) error {
	args := m.Called(ctx, state, value)
	return args.Error(0)
}

func (m *MockStateStore) Consume(ctx context.Context, state string) (string, error) {
	args := m.Called(ctx, state)
	return args.String(0), args.Error(1)
}

// Mock DomainVerifier
type MockDomainVerifier struct {
	mock.Mock
}

func (m *MockDomainVerifier) RecordName(domain string) string {
	return "_homequote-verify." + domain
}

func (m *MockDomainVerifier) Verify(ctx context.Context, domain, token string) (bool, error) {
	args := m.Called(ctx, domain, token)
	return args.Bool(0), args.Error(1)
}

// prefixSealer marks sealed values so tests can tell them apart
type prefixSealer struct{}

func (prefixSealer) Seal(plaintext string) (string, error) { return "sealed:" + plaintext, nil }

func (prefixSealer) Open(sealed string) (string, error) {
	return strings.TrimPrefix(sealed, "sealed:"), nil
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEmitter) Emit(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}
