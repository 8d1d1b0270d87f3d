// Package messaging holds event publishers that do not need a broker.
package messaging

import (
	"context"
	"log/slog"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

// LogPublisher implements port.EventPublisher by writing each event to the
// structured log. It is used when Kafka publishing is disabled.
type LogPublisher struct {
	logger *slog.Logger
	level  slog.Level
}

var _ port.EventPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a LogPublisher that logs at level.
func NewLogPublisher(logger *slog.Logger, level slog.Level) *LogPublisher {
	return &LogPublisher{logger: logger, level: level}
}

// Publish logs the envelope of every event. It never fails on delivery; an
// event that cannot be encoded is returned as an error.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		envelope, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}
		p.logger.Log(ctx, p.level, "domain event",
			slog.String("event_type", envelope.EventType),
			slog.String("event_id", envelope.ID.String()),
			slog.String("aggregate_id", envelope.AggregateID.String()),
			slog.String("payload", string(envelope.Payload)),
		)
	}
	return nil
}
