package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/models/m_outbox"
)

// OutboxRepo builds outbox mutations.
type OutboxRepo struct{}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func (r *OutboxRepo) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	if e == nil {
		return nil
	}
	return m_outbox.Insert(m_outbox.Row{
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateKind: e.AggregateKind(),
		AggregateID:   e.AggregateID,
		Payload:       e.PayloadJSON,
		Status:        e.StatusOrPending(),
		CreatedAt:     e.CreatedAtUTC,
	})
}

func (r *OutboxRepo) MarkProcessedMut(eventID string, at time.Time) *spanner.Mutation {
	if eventID == "" {
		return nil
	}
	return m_outbox.Settle(eventID, contracts.OutboxStatusProcessed, at)
}
