package contracts

import (
	"context"
	"strings"
	"time"
)

// OutboxEvent is an integration event persisted to the outbox table.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

const (
	// OutboxStatusPending marks events not yet picked up by a relay.
	OutboxStatusPending = "pending"
	// OutboxStatusProcessed marks events a relay has forwarded.
	OutboxStatusProcessed = "processed"
)

// AggregateKind is the entity kind encoded in a "catalog.<kind>.<name>"
// event type, or "" when the type does not follow that shape.
func (e OutboxEvent) AggregateKind() string {
	parts := strings.Split(e.EventType, ".")
	if len(parts) != 3 || parts[0] != "catalog" {
		return ""
	}
	return parts[1]
}

// StatusOrPending defaults an empty status to pending.
func (e OutboxEvent) StatusOrPending() string {
	if e.Status == "" {
		return OutboxStatusPending
	}
	return e.Status
}

// OutboxWriter appends events to the outbox table.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, e OutboxEvent) error
}

// OutboxAcker lets a relay flag rows it has forwarded.
type OutboxAcker interface {
	MarkOutboxProcessed(ctx context.Context, eventID string, at time.Time) error
}
