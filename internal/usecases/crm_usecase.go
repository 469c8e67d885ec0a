package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/events"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/crypto"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/redis"
)

// Callback failures, reported back to the settings page as ghl_error values.
var (
	ErrCRMInvalidState  = errors.New("invalid_state")
	ErrCRMTokenExchange = errors.New("token_exchange_failed")
)

// tokens this close to expiry are refreshed before use
const tokenRefreshLeeway = time.Minute

// CRMUsecase connects partners to their CRM and reads its configuration
type CRMUsecase struct {
	provider        CRMProvider
	states          OAuthStateStore
	sealer          TokenSealer
	integrationRepo repositories.CRMIntegrationRepository
	emitter         events.Emitter
	now             func() time.Time
}

func NewCRMUsecase(
	provider CRMProvider,
	states OAuthStateStore,
	sealer TokenSealer,
	integrationRepo repositories.CRMIntegrationRepository,
	emitter events.Emitter,
) *CRMUsecase {
	if emitter == nil {
		emitter = events.Nop{}
	}
	return &CRMUsecase{
		provider:        provider,
		states:          states,
		sealer:          sealer,
		integrationRepo: integrationRepo,
		emitter:         emitter,
		now:             time.Now,
	}
}

// ConnectURL starts the OAuth flow for partnerID.
func (u *CRMUsecase) ConnectURL(ctx context.Context, partnerID uuid.UUID) (string, error) {
	state, err := crypto.GenerateStateToken()
	if err != nil {
		return "", err
	}
	if err := u.states.Save(ctx, state, partnerID.String()); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return u.provider.AuthCodeURL(state), nil
}

// HandleCallback finishes the OAuth flow and stores the sealed tokens.
func (u *CRMUsecase) HandleCallback(ctx context.Context, code, state string) (*entities.CRMIntegration, error) {
	value, err := u.states.Consume(ctx, state)
	if err != nil {
		if !errors.Is(err, redis.ErrStateNotFound) {
			logger.Error(ctx, "oauth state lookup failed", zap.Error(err))
		}
		return nil, ErrCRMInvalidState
	}
	partnerID, err := uuid.Parse(value)
	if err != nil {
		return nil, ErrCRMInvalidState
	}

	tokens, err := u.provider.Exchange(ctx, code)
	if err != nil {
		logger.Warn(ctx, "crm token exchange failed", zap.String("partner_id", partnerID.String()), zap.Error(err))
		return nil, ErrCRMTokenExchange
	}

	integration := &entities.CRMIntegration{
		ID:         uuid.New(),
		PartnerID:  partnerID,
		Provider:   entities.CRMProviderGHL,
		LocationID: tokens.LocationID,
		ExpiresAt:  tokens.ExpiresAt,
	}
	if integration.SealedAccessToken, err = u.sealer.Seal(tokens.AccessToken); err != nil {
		return nil, err
	}
	if integration.SealedRefreshToken, err = u.sealer.Seal(tokens.RefreshToken); err != nil {
		return nil, err
	}
	if err := u.integrationRepo.Upsert(ctx, integration); err != nil {
		return nil, err
	}

	u.emitter.Emit(ctx, events.Event{
		Name:      events.CRMConnected,
		PartnerID: partnerID.String(),
		Payload:   map[string]interface{}{"provider": integration.Provider, "location_id": integration.LocationID},
	})
	return integration, nil
}

// CustomFields lists the custom fields of the partner's CRM location.
func (u *CRMUsecase) CustomFields(ctx context.Context, partnerID uuid.UUID) ([]entities.CRMCustomField, error) {
	token, locationID, err := u.accessToken(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	fields, err := u.provider.ListCustomFields(ctx, token, locationID)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []entities.CRMCustomField{}
	}
	return fields, nil
}

// Pipelines lists the opportunity pipelines of the partner's CRM location.
func (u *CRMUsecase) Pipelines(ctx context.Context, partnerID uuid.UUID) ([]entities.CRMPipeline, error) {
	token, locationID, err := u.accessToken(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	pipelines, err := u.provider.ListPipelines(ctx, token, locationID)
	if err != nil {
		return nil, err
	}
	if pipelines == nil {
		pipelines = []entities.CRMPipeline{}
	}
	return pipelines, nil
}

// FieldMappings returns the partner's lead-key to CRM field mappings.
func (u *CRMUsecase) FieldMappings(ctx context.Context, partnerID uuid.UUID) ([]*entities.CRMFieldMapping, error) {
	mappings, err := u.integrationRepo.ListFieldMappings(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = []*entities.CRMFieldMapping{}
	}
	return mappings, nil
}

// SaveFieldMappings upserts mappings one by one without a transaction. The
// first failure aborts the batch as an internal error and earlier writes remain.
func (u *CRMUsecase) SaveFieldMappings(ctx context.Context, partnerID uuid.UUID, input *entities.SaveFieldMappingsInput) error {
	if len(input.Mappings) == 0 {
		return domainerrors.BadRequest("mappings must not be empty")
	}
	for _, m := range input.Mappings {
		if strings.TrimSpace(m.LeadKey) == "" || strings.TrimSpace(m.CRMFieldID) == "" {
			return domainerrors.BadRequest("every mapping needs a lead_key and crm_field_id")
		}
	}

	for i, m := range input.Mappings {
		mapping := &entities.CRMFieldMapping{
			PartnerID:  partnerID,
			LeadKey:    strings.TrimSpace(m.LeadKey),
			CRMFieldID: strings.TrimSpace(m.CRMFieldID),
		}
		if err := u.integrationRepo.UpsertFieldMapping(ctx, mapping); err != nil {
			logger.Error(ctx, "crm field mapping batch aborted",
				zap.Int("applied", i),
				zap.Int("total", len(input.Mappings)),
				zap.Error(err),
			)
			return domainerrors.InternalError(err)
		}
	}
	return nil
}

// accessToken opens the stored token, refreshing it first when it is about to expire.
func (u *CRMUsecase) accessToken(ctx context.Context, partnerID uuid.UUID) (string, string, error) {
	integration, err := u.integrationRepo.GetByPartner(ctx, partnerID, entities.CRMProviderGHL)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", "", domainerrors.ErrIntegrationMissing
		}
		return "", "", err
	}

	access, err := u.sealer.Open(integration.SealedAccessToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to open crm access token: %w", err)
	}
	if u.now().Add(tokenRefreshLeeway).Before(integration.ExpiresAt) {
		return access, integration.LocationID, nil
	}

	refresh, err := u.sealer.Open(integration.SealedRefreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to open crm refresh token: %w", err)
	}
	tokens, err := u.provider.Refresh(ctx, refresh, integration.LocationID)
	if err != nil {
		return "", "", err
	}

	sealedAccess, err := u.sealer.Seal(tokens.AccessToken)
	if err != nil {
		return "", "", err
	}
	sealedRefresh, err := u.sealer.Seal(tokens.RefreshToken)
	if err != nil {
		return "", "", err
	}
	if err := u.integrationRepo.UpdateTokens(ctx, integration.ID, sealedAccess, sealedRefresh, tokens.ExpiresAt); err != nil {
		return "", "", err
	}
	logger.Info(ctx, "crm token refreshed", zap.String("partner_id", partnerID.String()))
	return tokens.AccessToken, integration.LocationID, nil
}
