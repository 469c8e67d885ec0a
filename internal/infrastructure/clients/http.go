package clients

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	domainerrors "homequote.backend/internal/domain/errors"
)

// newRestClient builds a resty client for one upstream. Outbound calls are
// never retried: a failure surfaces to the caller of that request only.
func newRestClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}

func upstreamError(service string, resp *resty.Response, detail string) error {
	if detail == "" {
		detail = resp.Status()
	}
	return fmt.Errorf("%w: %s returned %d: %s", domainerrors.ErrUpstream, service, resp.StatusCode(), detail)
}

func transportError(service string, err error) error {
	return fmt.Errorf("%w: %s request failed: %v", domainerrors.ErrUpstream, service, err)
}
