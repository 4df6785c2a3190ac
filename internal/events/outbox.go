package events

import (
	"context"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
)

// OutboxPublisher appends events to the store's outbox table for a relay to
// forward later.
type OutboxPublisher struct {
	writer contracts.OutboxWriter
}

func NewOutboxPublisher(w contracts.OutboxWriter) *OutboxPublisher {
	return &OutboxPublisher{writer: w}
}

func (p *OutboxPublisher) Publish(ctx context.Context, e contracts.IntegrationEvent) error {
	return p.writer.AppendOutbox(ctx, contracts.OutboxEvent{
		EventID:      e.ID,
		EventType:    e.Type,
		AggregateID:  e.AggregateID,
		PayloadJSON:  string(e.Payload),
		Status:       contracts.OutboxStatusPending,
		CreatedAtUTC: e.OccurredAt.UTC(),
	})
}
