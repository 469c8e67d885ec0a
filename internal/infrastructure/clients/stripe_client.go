package clients

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"homequote.backend/pkg/metrics"
)

type stripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type stripeErrorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeClient creates payment intents with a caller-supplied secret key.
type StripeClient struct {
	http *resty.Client
}

// NewStripeClient creates a Stripe client
func NewStripeClient(baseURL string, timeout time.Duration) *StripeClient {
	return &StripeClient{http: newRestClient(baseURL, timeout)}
}

// CreatePaymentIntent creates a payment intent and returns its client secret.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, secretKey string, amount int64, currency, idempotencyKey string) (string, error) {
	var result stripePaymentIntent
	var apiErr stripeErrorEnvelope

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(secretKey).
		SetFormData(map[string]string{
			"amount":                            strconv.FormatInt(amount, 10),
			"currency":                          currency,
			"automatic_payment_methods[enabled]": "true",
		}).
		SetResult(&result).
		SetError(&apiErr)
	if idempotencyKey != "" {
		req.SetHeader("Idempotency-Key", idempotencyKey)
	}

	resp, err := req.Post("/v1/payment_intents")
	if err != nil {
		err = transportError("stripe", err)
		metrics.ObserveOutbound("stripe", err)
		return "", err
	}
	if resp.IsError() {
		err = upstreamError("stripe", resp, apiErr.Error.Message)
		metrics.ObserveOutbound("stripe", err)
		return "", err
	}
	metrics.ObserveOutbound("stripe", nil)
	return result.ClientSecret, nil
}
