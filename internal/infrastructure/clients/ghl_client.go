package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/pkg/metrics"
)

// GHLConfig configures the GoHighLevel client
type GHLConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	APIVersion   string
	Scopes       []string
	Timeout      time.Duration
}

type ghlCustomFieldsResponse struct {
	CustomFields []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		FieldKey string `json:"fieldKey"`
		DataType string `json:"dataType"`
	} `json:"customFields"`
}

type ghlPipelinesResponse struct {
	Pipelines []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Stages []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"stages"`
	} `json:"pipelines"`
}

type ghlError struct {
	Message interface{} `json:"message"`
}

// GHLClient talks to GoHighLevel: OAuth through x/oauth2, REST through resty.
type GHLClient struct {
	oauth      *oauth2.Config
	http       *resty.Client
	httpClient *http.Client
}

// NewGHLClient creates a GoHighLevel client
func NewGHLClient(cfg GHLConfig) *GHLClient {
	client := newRestClient(cfg.APIBaseURL, cfg.Timeout).
		SetHeader("Version", cfg.APIVersion)
	return &GHLClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http:       client,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// AuthCodeURL returns the location chooser URL for a state value
func (c *GHLClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens
func (c *GHLClient) Exchange(ctx context.Context, code string) (*entities.CRMTokenSet, error) {
	tok, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	metrics.ObserveOutbound("ghl_oauth", err)
	if err != nil {
		return nil, oauthError(err)
	}
	return toTokenSet(tok, ""), nil
}

// Refresh obtains a new token set from a refresh token. locationID is kept when
// the token response does not repeat it.
func (c *GHLClient) Refresh(ctx context.Context, refreshToken, locationID string) (*entities.CRMTokenSet, error) {
	tok, err := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	metrics.ObserveOutbound("ghl_oauth", err)
	if err != nil {
		return nil, oauthError(err)
	}
	return toTokenSet(tok, locationID), nil
}

// ListCustomFields lists custom fields of a location
func (c *GHLClient) ListCustomFields(ctx context.Context, accessToken, locationID string) ([]entities.CRMCustomField, error) {
	var result ghlCustomFieldsResponse
	var apiErr ghlError

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetPathParam("locationId", locationID).
		SetResult(&result).
		SetError(&apiErr).
		Get("/locations/{locationId}/customFields")
	if err := checkGHL(resp, err, &apiErr); err != nil {
		return nil, err
	}

	out := make([]entities.CRMCustomField, 0, len(result.CustomFields))
	for _, f := range result.CustomFields {
		out = append(out, entities.CRMCustomField{ID: f.ID, Name: f.Name, FieldKey: f.FieldKey, DataType: f.DataType})
	}
	return out, nil
}

// ListPipelines lists opportunity pipelines of a location
func (c *GHLClient) ListPipelines(ctx context.Context, accessToken, locationID string) ([]entities.CRMPipeline, error) {
	var result ghlPipelinesResponse
	var apiErr ghlError

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("locationId", locationID).
		SetResult(&result).
		SetError(&apiErr).
		Get("/opportunities/pipelines")
	if err := checkGHL(resp, err, &apiErr); err != nil {
		return nil, err
	}

	out := make([]entities.CRMPipeline, 0, len(result.Pipelines))
	for _, p := range result.Pipelines {
		pipeline := entities.CRMPipeline{ID: p.ID, Name: p.Name, Stages: make([]entities.CRMPipelineStage, 0, len(p.Stages))}
		for _, s := range p.Stages {
			pipeline.Stages = append(pipeline.Stages, entities.CRMPipelineStage{ID: s.ID, Name: s.Name})
		}
		out = append(out, pipeline)
	}
	return out, nil
}

func (c *GHLClient) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func checkGHL(resp *resty.Response, err error, apiErr *ghlError) error {
	if err != nil {
		err = transportError("ghl", err)
		metrics.ObserveOutbound("ghl", err)
		return err
	}
	if resp.IsError() {
		err = upstreamError("ghl", resp, fmt.Sprint(apiErr.Message))
		metrics.ObserveOutbound("ghl", err)
		return err
	}
	metrics.ObserveOutbound("ghl", nil)
	return nil
}

func oauthError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: ghl token endpoint returned %d: %s", domainerrors.ErrUpstream, retrieveErr.Response.StatusCode, retrieveErr.ErrorCode)
	}
	return transportError("ghl token endpoint", err)
}

func toTokenSet(tok *oauth2.Token, fallbackLocation string) *entities.CRMTokenSet {
	set := &entities.CRMTokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
		LocationID:   fallbackLocation,
	}
	if loc, ok := tok.Extra("locationId").(string); ok && loc != "" {
		set.LocationID = loc
	}
	return set
}
