package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/events"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/crypto"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/snippet"
	"homequote.backend/pkg/utils"
)

var (
	hexColorPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	domainPattern    = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)

	reservedSubdomains = map[string]bool{
		"www": true, "api": true, "admin": true, "app": true, "localhost": true, "mail": true,
	}
)

// PartnerUsecase handles partner onboarding, settings and admin moderation
type PartnerUsecase struct {
	partnerRepo  repositories.PartnerRepository
	verifier     DomainVerifier
	platformApex string
	emitter      events.Emitter
}

func NewPartnerUsecase(partnerRepo repositories.PartnerRepository, verifier DomainVerifier, platformApex string, emitter events.Emitter) *PartnerUsecase {
	if emitter == nil {
		emitter = events.Nop{}
	}
	return &PartnerUsecase{
		partnerRepo:  partnerRepo,
		verifier:     verifier,
		platformApex: strings.ToLower(platformApex),
		emitter:      emitter,
	}
}

// Onboard creates the pending partner profile of a signed-in partner user.
func (u *PartnerUsecase) Onboard(ctx context.Context, userID uuid.UUID, input *entities.CreatePartnerInput) (*entities.PartnerProfile, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, domainerrors.BadRequest("company_name is required")
	}
	subdomain := strings.ToLower(strings.TrimSpace(input.Subdomain))
	if !subdomainPattern.MatchString(subdomain) || reservedSubdomains[subdomain] {
		return nil, domainerrors.BadRequest("subdomain must be a valid, unreserved DNS label")
	}

	if _, err := u.partnerRepo.GetByUserID(ctx, userID); err == nil {
		return nil, domainerrors.Conflict("partner profile already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	partner := &entities.PartnerProfile{
		ID:          utils.GenerateUUIDv7(),
		UserID:      userID,
		CompanyName: name,
		Subdomain:   subdomain,
		Status:      entities.PartnerStatusPending,
	}
	if err := u.partnerRepo.Create(ctx, partner); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("subdomain is already taken")
		}
		return nil, err
	}
	return partner, nil
}

// GetSettings returns the partner profile owned by userID.
func (u *PartnerUsecase) GetSettings(ctx context.Context, userID uuid.UUID) (*entities.PartnerProfile, error) {
	return u.partnerRepo.GetByUserID(ctx, userID)
}

// UpdateSettings applies a partial settings update. Snippet code is stored
// as given and only ever rendered through the sandboxed frame.
func (u *PartnerUsecase) UpdateSettings(ctx context.Context, userID uuid.UUID, input *entities.UpdatePartnerSettingsInput) (*entities.PartnerProfile, error) {
	partner, err := u.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		name := strings.TrimSpace(*input.CompanyName)
		if name == "" {
			return nil, domainerrors.BadRequest("company_name must not be empty")
		}
		input.CompanyName = &name
	}
	if input.CompanyColor != nil && *input.CompanyColor != "" && !hexColorPattern.MatchString(*input.CompanyColor) {
		return nil, domainerrors.BadRequest("company_color must be a hex color such as #1a2b3c")
	}
	if input.LogoURL != nil && *input.LogoURL != "" {
		parsed, err := url.Parse(*input.LogoURL)
		if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
			return nil, domainerrors.BadRequest("logo_url must be an absolute http(s) URL")
		}
	}

	if err := u.partnerRepo.UpdateSettings(ctx, partner.ID, input); err != nil {
		return nil, err
	}
	return u.partnerRepo.GetByID(ctx, partner.ID)
}

// Snippets renders the partner's header, body and footer code as sandboxed frames.
func (u *PartnerUsecase) Snippets(ctx context.Context, userID uuid.UUID) (*snippet.Rendered, error) {
	partner, err := u.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snippet.Render(partner.HeaderCode, partner.BodyCode, partner.FooterCode)
}

// PublicSnippets renders the snippets of an already resolved partner.
func (u *PartnerUsecase) PublicSnippets(partner *entities.PartnerProfile) (*snippet.Rendered, error) {
	return snippet.Render(partner.HeaderCode, partner.BodyCode, partner.FooterCode)
}

// SetCustomDomain binds a custom domain to the partner and issues the TXT
// token that proves ownership. The domain stays unverified until checked.
func (u *PartnerUsecase) SetCustomDomain(ctx context.Context, userID uuid.UUID, rawDomain string) (*entities.DomainVerificationRecord, error) {
	domain := NormalizeHost(rawDomain)
	if !domainPattern.MatchString(domain) {
		return nil, domainerrors.BadRequest("domain must be a fully qualified host name")
	}
	if u.platformApex != "" && (domain == u.platformApex || strings.HasSuffix(domain, "."+u.platformApex)) {
		return nil, domainerrors.BadRequest("platform domains are assigned through the subdomain")
	}

	partner, err := u.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := crypto.GenerateStateToken()
	if err != nil {
		return nil, err
	}
	if err := u.partnerRepo.SetCustomDomain(ctx, partner.ID, domain, token); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("domain is already in use")
		}
		return nil, err
	}

	return &entities.DomainVerificationRecord{
		Domain:     domain,
		RecordType: "TXT",
		Name:       u.verifier.RecordName(domain),
		Value:      token,
	}, nil
}

// VerifyCustomDomain checks the TXT record and marks the domain verified.
func (u *PartnerUsecase) VerifyCustomDomain(ctx context.Context, userID uuid.UUID) (*entities.DomainVerificationRecord, error) {
	partner, err := u.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !partner.CustomDomain.Valid || partner.CustomDomain.String == "" {
		return nil, domainerrors.BadRequest("no custom domain configured")
	}

	domain := partner.CustomDomain.String
	record := &entities.DomainVerificationRecord{
		Domain:     domain,
		RecordType: "TXT",
		Name:       u.verifier.RecordName(domain),
		Value:      partner.DomainVerificationToken.String,
		Verified:   partner.DomainVerified,
	}
	if partner.DomainVerified {
		return record, nil
	}

	ok, err := u.verifier.Verify(ctx, domain, partner.DomainVerificationToken.String)
	if err != nil {
		return nil, domainerrors.BadGateway("dns lookup failed", fmt.Errorf("%w: %v", domainerrors.ErrUpstream, err))
	}
	if !ok {
		return nil, domainerrors.ErrDomainNotVerifiable
	}
	if err := u.partnerRepo.MarkDomainVerified(ctx, partner.ID); err != nil {
		return nil, err
	}

	record.Verified = true
	u.emitter.Emit(ctx, events.Event{
		Name:      events.DomainVerified,
		PartnerID: partner.ID.String(),
		Payload:   map[string]interface{}{"domain": domain},
	})
	return record, nil
}

// ListPartners lists partners, optionally filtered by status (admin only).
func (u *PartnerUsecase) ListPartners(ctx context.Context, status string) ([]*entities.PartnerProfile, error) {
	filter := entities.PartnerStatus(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, domainerrors.BadRequest("unknown status filter")
	}
	partners, err := u.partnerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if partners == nil {
		partners = []*entities.PartnerProfile{}
	}
	return partners, nil
}

// UpdatePartnerStatus moves a partner through moderation (admin only).
func (u *PartnerUsecase) UpdatePartnerStatus(ctx context.Context, partnerID uuid.UUID, status entities.PartnerStatus) (*entities.PartnerProfile, error) {
	if !status.Valid() {
		return nil, domainerrors.BadRequest("status must be pending, active or suspended")
	}
	partner, err := u.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", domainerrors.ErrInvalidTransition, partner.Status, status)
	}
	if err := u.partnerRepo.UpdateStatus(ctx, partnerID, status); err != nil {
		return nil, err
	}

	logger.Info(ctx, "partner status changed",
		zap.String("partner_id", partnerID.String()),
		zap.String("from", string(partner.Status)),
		zap.String("to", string(status)),
	)
	u.emitter.Emit(ctx, events.Event{
		Name:      events.PartnerStatusChanged,
		PartnerID: partnerID.String(),
		Payload:   map[string]interface{}{"from": string(partner.Status), "to": string(status)},
	})

	partner.Status = status
	return partner, nil
}
