// Package metrics provides Prometheus metrics for the HomeQuote API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks inbound requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homequote",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks inbound request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homequote",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// OutboundRequestsTotal tracks calls to third-party APIs
	OutboundRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homequote",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Total number of outbound HTTP requests by upstream service",
		},
		[]string{"service", "result"},
	)

	// TenantResolutionsTotal tracks partner resolution outcomes
	TenantResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homequote",
			Subsystem: "tenant",
			Name:      "resolutions_total",
			Help:      "Partner resolutions by match kind (custom_domain, subdomain, none, ambiguous)",
		},
		[]string{"match"},
	)

	// LeadTransitionsTotal tracks submission phases applied to leads
	LeadTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homequote",
			Subsystem: "leads",
			Name:      "phase_transitions_total",
			Help:      "Submission phases folded into leads",
		},
		[]string{"phase"},
	)

	// EventsEmittedTotal tracks analytics events handed to the emitter
	EventsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homequote",
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Analytics events emitted by name and result",
		},
		[]string{"event", "result"},
	)
)

// ObserveOutbound records one outbound call result.
func ObserveOutbound(service string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	OutboundRequestsTotal.WithLabelValues(service, result).Inc()
}
