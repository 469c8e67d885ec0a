package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	domainevents "homequote.backend/internal/domain/events"
	"homequote.backend/pkg/logger"
	"homequote.backend/pkg/metrics"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEmitter publishes analytics events to a topic. The writer is async with
// no acknowledgements, so delivery is at most once and never retried.
type KafkaEmitter struct {
	writer messageWriter
}

// NewKafkaEmitter creates a Kafka-backed emitter
func NewKafkaEmitter(brokers []string, topic string) *KafkaEmitter {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireNone,
		MaxAttempts:            1,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, m := range messages {
				metrics.EventsEmittedTotal.WithLabelValues(headerValue(m, "event"), "dropped").Inc()
			}
			logger.GetLogger().Warn("analytics events dropped", zap.Int("count", len(messages)), zap.Error(err))
		},
	}
	return &KafkaEmitter{writer: writer}
}

// Emit hands the event to the async writer
func (e *KafkaEmitter) Emit(ctx context.Context, event domainevents.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EventsEmittedTotal.WithLabelValues(event.Name, "error").Inc()
		logger.Warn(ctx, "analytics event not encodable", zap.String("event", event.Name), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.PartnerID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Name)},
		},
	}
	// the request context may be cancelled before the batch flushes
	if err := e.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		metrics.EventsEmittedTotal.WithLabelValues(event.Name, "error").Inc()
		logger.Warn(ctx, "analytics event rejected", zap.String("event", event.Name), zap.Error(err))
		return
	}
	metrics.EventsEmittedTotal.WithLabelValues(event.Name, "sent").Inc()
}

// Close flushes pending messages
func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
