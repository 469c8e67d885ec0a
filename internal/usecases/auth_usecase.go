package usecases

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/jwt"
	"homequote.backend/pkg/logger"
)

// Post-login destinations
const (
	AdminHome            = "/admin"
	PartnerHome          = "/partner"
	PartnerPendingPage   = "/partner/pending"
	PartnerSuspendedPage = "/partner/suspended"
	LoginFailedPage      = "/login?error=auth_callback_failed"
)

// AuthResult is the outcome of a successful sign-in.
type AuthResult struct {
	Identity jwt.Identity
	Tokens   *jwt.TokenPair
	Location string
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	provider        IdentityProvider
	userProfileRepo repositories.UserProfileRepository
	partnerRepo     repositories.PartnerRepository
	jwtService      *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	provider IdentityProvider,
	userProfileRepo repositories.UserProfileRepository,
	partnerRepo repositories.PartnerRepository,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		provider:        provider,
		userProfileRepo: userProfileRepo,
		partnerRepo:     partnerRepo,
		jwtService:      jwtService,
	}
}

// Callback redeems the authorization code, issues our own tokens and picks
// where the browser goes next. A safe explicit redirectTo always wins.
func (u *AuthUsecase) Callback(ctx context.Context, code, codeVerifier, redirectTo string) (*AuthResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domainerrors.BadRequest("code is required")
	}

	session, err := u.provider.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		return nil, err
	}
	userID := session.UserID
	if userID == uuid.Nil {
		return nil, domainerrors.BadGateway("identity provider returned no user id", nil)
	}

	profile, err := u.userProfileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		profile = &entities.UserProfile{UserID: userID, Email: session.Email, Role: entities.UserRolePartner}
		if err := u.userProfileRepo.Upsert(ctx, profile); err != nil {
			return nil, err
		}
		logger.Info(ctx, "user profile created on first sign-in", zap.String("user_id", userID.String()))
	} else if err != nil {
		return nil, err
	}

	identity, partner, err := u.identityFor(ctx, profile)
	if err != nil {
		return nil, err
	}
	tokens, err := u.jwtService.GenerateTokenPair(identity)
	if err != nil {
		return nil, err
	}

	location := DestinationFor(profile.Role, partner)
	if safe, ok := SafeRedirect(redirectTo); ok {
		location = safe
	}
	return &AuthResult{Identity: identity, Tokens: tokens, Location: location}, nil
}

// RefreshToken exchanges a refresh token for a new pair. The role and partner
// are re-read so moderation changes take effect on refresh.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	profile, err := u.userProfileRepo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	identity, _, err := u.identityFor(ctx, profile)
	if err != nil {
		return nil, err
	}
	return u.jwtService.GenerateTokenPair(identity)
}

// Me returns the signed-in user's profile and, for partners, their partner profile.
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, *entities.PartnerProfile, error) {
	profile, err := u.userProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	_, partner, err := u.identityFor(ctx, profile)
	if err != nil {
		return nil, nil, err
	}
	return profile, partner, nil
}

func (u *AuthUsecase) identityFor(ctx context.Context, profile *entities.UserProfile) (jwt.Identity, *entities.PartnerProfile, error) {
	identity := jwt.Identity{UserID: profile.UserID, Email: profile.Email, Role: string(profile.Role)}
	if profile.Role != entities.UserRolePartner {
		return identity, nil, nil
	}
	partner, err := u.partnerRepo.GetByUserID(ctx, profile.UserID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return identity, nil, nil
	}
	if err != nil {
		return identity, nil, err
	}
	identity.PartnerID = &partner.ID
	return identity, partner, nil
}

// DestinationFor picks the landing page for a role and moderation state.
func DestinationFor(role entities.UserRole, partner *entities.PartnerProfile) string {
	if role == entities.UserRoleAdmin {
		return AdminHome
	}
	if partner != nil {
		switch partner.Status {
		case entities.PartnerStatusPending:
			return PartnerPendingPage
		case entities.PartnerStatusSuspended:
			return PartnerSuspendedPage
		}
	}
	return PartnerHome
}

// SafeRedirect accepts only same-origin relative paths.
func SafeRedirect(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return "", false
	}
	return raw, true
}
