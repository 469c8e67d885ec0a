package events

import (
	"context"
	"time"

	"go.uber.org/zap"
	domainevents "homequote.backend/internal/domain/events"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/metrics"
)

// LogEmitter writes analytics events to the structured log. Used when no brokers are configured.
type LogEmitter struct{}

func NewLogEmitter() *LogEmitter {
	return &LogEmitter{}
}

func (LogEmitter) Emit(ctx context.Context, event domainevents.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	logger.Info(ctx, "analytics event",
		zap.String("event", event.Name),
		zap.String("partner_id", event.PartnerID),
		zap.Any("payload", event.Payload),
		zap.Time("occurred_at", event.OccurredAt),
	)
	metrics.EventsEmittedTotal.WithLabelValues(event.Name, "logged").Inc()
}

// New picks the Kafka emitter when brokers are configured.
func New(brokers []string, topic string) (domainevents.Emitter, func() error) {
	if len(brokers) == 0 {
		return NewLogEmitter(), func() error { return nil }
	}
	k := NewKafkaEmitter(brokers, topic)
	return k, k.Close
}
