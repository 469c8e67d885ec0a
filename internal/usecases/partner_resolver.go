package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/repositories"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/metrics"
)

// PartnerResolver maps an inbound hostname to the partner that owns it.
type PartnerResolver struct {
	partnerRepo repositories.PartnerRepository
}

func NewPartnerResolver(partnerRepo repositories.PartnerRepository) *PartnerResolver {
	return &PartnerResolver{partnerRepo: partnerRepo}
}

// NormalizeHost lower-cases host and strips the port and any trailing dot.
// Bracketed IPv6 literals keep their inner colons.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end > 0 {
			host = host[:end+1]
		}
	} else if strings.Count(host, ":") == 1 {
		host = host[:strings.Index(host, ":")]
	}
	return strings.TrimSuffix(host, ".")
}

// stripWWW removes a single leading "www." label.
func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}

// ResolvePartner finds the active partner for hostname. A verified custom
// domain wins over a subdomain match. ErrNotFound when nothing matches and
// ErrAmbiguousTenant when the data holds more than one candidate.
func (r *PartnerResolver) ResolvePartner(ctx context.Context, hostname string) (*entities.PartnerProfile, error) {
	host := NormalizeHost(hostname)
	if host == "" {
		metrics.TenantResolutionsTotal.WithLabelValues("none").Inc()
		return nil, domainerrors.ErrNotFound
	}
	bare := stripWWW(host)

	hosts := []string{host}
	if bare != host {
		hosts = append(hosts, bare)
	}
	byDomain, err := r.partnerRepo.FindActiveByCustomDomains(ctx, hosts)
	if err != nil {
		return nil, err
	}
	if partner, err := r.single(ctx, byDomain, "custom_domain", host); partner != nil || err != nil {
		return partner, err
	}

	label := bare
	if i := strings.Index(label, "."); i >= 0 {
		label = label[:i]
	}
	if label == "" || label == "www" || label == "localhost" {
		metrics.TenantResolutionsTotal.WithLabelValues("none").Inc()
		return nil, domainerrors.ErrNotFound
	}

	bySubdomain, err := r.partnerRepo.FindActiveBySubdomain(ctx, label)
	if err != nil {
		return nil, err
	}
	if partner, err := r.single(ctx, bySubdomain, "subdomain", host); partner != nil || err != nil {
		return partner, err
	}

	metrics.TenantResolutionsTotal.WithLabelValues("none").Inc()
	return nil, domainerrors.ErrNotFound
}

func (r *PartnerResolver) single(ctx context.Context, partners []*entities.PartnerProfile, match, host string) (*entities.PartnerProfile, error) {
	switch len(partners) {
	case 0:
		return nil, nil
	case 1:
		metrics.TenantResolutionsTotal.WithLabelValues(match).Inc()
		return partners[0], nil
	}
	metrics.TenantResolutionsTotal.WithLabelValues("ambiguous").Inc()
	logger.Error(ctx, "hostname matches more than one active partner",
		zap.String("host", host),
		zap.String("match", match),
		zap.Int("candidates", len(partners)),
	)
	return nil, domainerrors.ErrAmbiguousTenant
}
