package events

import (
	"context"
	"log/slog"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
)

// LogPublisher writes events to the log. It backs EVENTS_DRIVER=log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e contracts.IntegrationEvent) error {
	p.logger.InfoContext(ctx, "integration event",
		"event_id", e.ID,
		"event_type", e.Type,
		"aggregate_id", e.AggregateID,
		"occurred_at", e.OccurredAt,
		"payload", string(e.Payload))
	return nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, contracts.IntegrationEvent) error {
	return nil
}
