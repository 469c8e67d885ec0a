package clients

import (
	"context"
	"errors"
	"net"
	"strings"

	"homequote.backend/pkg/metrics"
)

// TXTResolver is satisfied by *net.Resolver.
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// DomainVerifier proves custom-domain ownership through a DNS TXT record.
type DomainVerifier struct {
	resolver TXTResolver
	label    string
}

// NewDomainVerifier creates a verifier that reads TXT records at <label>.<domain>.
func NewDomainVerifier(resolver TXTResolver, label string) *DomainVerifier {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &DomainVerifier{resolver: resolver, label: label}
}

// RecordName is the DNS name a partner must publish the token at.
func (v *DomainVerifier) RecordName(domain string) string {
	return v.label + "." + domain
}

// Verify reports whether the token is published for domain. A missing record is not an error.
func (v *DomainVerifier) Verify(ctx context.Context, domain, token string) (bool, error) {
	records, err := v.resolver.LookupTXT(ctx, v.RecordName(domain))
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			metrics.ObserveOutbound("dns", nil)
			return false, nil
		}
		metrics.ObserveOutbound("dns", err)
		return false, err
	}
	metrics.ObserveOutbound("dns", nil)
	for _, record := range records {
		if strings.TrimSpace(record) == token {
			return true, nil
		}
	}
	return false, nil
}
