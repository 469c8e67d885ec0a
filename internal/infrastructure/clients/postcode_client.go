package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/pkg/metrics"
)

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode      string  `json:"postcode"`
		Country       string  `json:"country"`
		Region        string  `json:"region"`
		AdminDistrict string  `json:"admin_district"`
		Latitude      float64 `json:"latitude"`
		Longitude     float64 `json:"longitude"`
	} `json:"result"`
}

type postcodeError struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// PostcodeClient looks up UK postcodes
type PostcodeClient struct {
	http *resty.Client
}

// NewPostcodeClient creates a postcode lookup client
func NewPostcodeClient(baseURL string, timeout time.Duration) *PostcodeClient {
	return &PostcodeClient{http: newRestClient(baseURL, timeout)}
}

// Lookup resolves a postcode. Unknown postcodes return ErrNotFound.
func (c *PostcodeClient) Lookup(ctx context.Context, postcode string) (*entities.PostcodeLookup, error) {
	var result postcodeResponse
	var apiErr postcodeError

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("postcode", postcode).
		SetResult(&result).
		SetError(&apiErr).
		Get("/postcodes/{postcode}")
	if err != nil {
		err = transportError("postcode service", err)
		metrics.ObserveOutbound("postcode", err)
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		metrics.ObserveOutbound("postcode", nil)
		return nil, domainerrors.ErrNotFound
	}
	if resp.IsError() {
		err = upstreamError("postcode service", resp, apiErr.Error)
		metrics.ObserveOutbound("postcode", err)
		return nil, err
	}
	metrics.ObserveOutbound("postcode", nil)

	return &entities.PostcodeLookup{
		Postcode:      result.Result.Postcode,
		Country:       result.Result.Country,
		Region:        result.Result.Region,
		AdminDistrict: result.Result.AdminDistrict,
		Latitude:      result.Result.Latitude,
		Longitude:     result.Result.Longitude,
	}, nil
}
