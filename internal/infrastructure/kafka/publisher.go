package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
	pkgkafka "github.com/Khaja2988/AI-Driven-WAF/pkg/kafka"
)

// Producer is satisfied by *pkgkafka.Producer.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Every event is sent
// as an events.Envelope keyed by its aggregate ID, so all events of one
// assessment land on the same partition.
type Publisher struct {
	producer Producer
	logger   *slog.Logger
	topic    string
}

var _ port.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka in a single batch.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		envelope, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}
		value, err := envelope.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal envelope %s: %w", envelope.EventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", envelope.EventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(value)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(envelope.AggregateID.String()),
			Value: value,
			Headers: map[string]string{
				"event_type":     envelope.EventType,
				"event_id":       envelope.ID.String(),
				"aggregate_type": envelope.AggregateType,
				"content-type":   "application/json",
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
