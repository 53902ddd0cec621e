package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/event"
	"github.com/Fouxth/BaanTK-sub000/pkg/kafka"
)

// BorrowerEventsTopic carries all borrower lifecycle events.
const BorrowerEventsTopic = "baantk.borrower.events"

// producer is the slice of pkg/kafka the messaging adapters need.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaEventPublisher implements port.EventPublisher by writing events to Kafka.
type KafkaEventPublisher struct {
	producer producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher writing to the borrower events topic.
func NewKafkaEventPublisher(p *kafka.Producer, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: p, topic: BorrowerEventsTopic, logger: logger}
}

// eventEnvelope is the wire format for one domain event. The payload carries
// the event-specific fields.
type eventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Publish serialises and sends domain events, keyed by aggregate ID so all
// events of one borrower land on the same partition in order.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		envelope, err := json.Marshal(eventEnvelope{
			EventID:       evt.EventID().String(),
			EventType:     evt.EventType(),
			AggregateID:   evt.AggregateID(),
			AggregateType: evt.AggregateType(),
			OccurredAt:    evt.OccurredAt(),
			Payload:       payload,
		})
		if err != nil {
			return fmt.Errorf("marshal envelope %s: %w", evt.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: envelope,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish borrower events: %w", err)
	}

	p.logger.Debug("published domain events", "topic", p.topic, "count", len(messages))
	return nil
}
