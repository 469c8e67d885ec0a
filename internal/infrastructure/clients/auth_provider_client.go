package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/pkg/metrics"
)

type providerTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

// AuthProviderClient exchanges PKCE authorization codes with the hosted identity provider.
type AuthProviderClient struct {
	http *resty.Client
}

// NewAuthProviderClient creates an identity provider client
func NewAuthProviderClient(baseURL, apiKey string, timeout time.Duration) *AuthProviderClient {
	client := newRestClient(baseURL, timeout).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json")
	return &AuthProviderClient{http: client}
}

// ExchangeCode trades an authorization code and its PKCE verifier for a session.
func (c *AuthProviderClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (*entities.ProviderSession, error) {
	var result providerTokenResponse
	var apiErr providerError

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "pkce").
		SetBody(map[string]string{
			"auth_code":     code,
			"code_verifier": codeVerifier,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/auth/v1/token")
	if err != nil {
		err = transportError("auth provider", err)
		metrics.ObserveOutbound("auth_provider", err)
		return nil, err
	}
	if resp.IsError() {
		detail := apiErr.ErrorDescription
		if detail == "" {
			detail = apiErr.Msg
		}
		err = upstreamError("auth provider", resp, detail)
		metrics.ObserveOutbound("auth_provider", err)
		return nil, err
	}
	metrics.ObserveOutbound("auth_provider", nil)

	userID, err := uuid.Parse(result.User.ID)
	if err != nil || result.AccessToken == "" {
		return nil, fmt.Errorf("%w: auth provider returned an incomplete session", domainerrors.ErrUpstream)
	}
	return &entities.ProviderSession{
		UserID:       userID,
		Email:        result.User.Email,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
