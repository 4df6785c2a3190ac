package contracts

import (
	"context"
	"encoding/json"
	"time"
)

// IntegrationEvent is the wire form of a domain event sent to other services.
type IntegrationEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregateId"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Payload     json.RawMessage `json:"payload"`
}

// EventPublisher delivers integration events. Commands never wait for it to
// succeed; implementations are wrapped so failures are only logged.
type EventPublisher interface {
	Publish(ctx context.Context, e IntegrationEvent) error
}
