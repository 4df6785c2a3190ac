package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row is one outbox_events record as written by the catalog.
type Row struct {
	EventID       string
	EventType     string
	AggregateKind string
	AggregateID   string
	Payload       string
	Status        string
	CreatedAt     time.Time
}

var insertColumns = []string{
	ColEventID, ColEventType, ColAggregateKind, ColAggregateID,
	ColPayload, ColStatus, ColCreatedAt, ColProcessedAt,
}

// Insert builds the mutation for a new row. processed_at starts NULL.
func Insert(r Row) *spanner.Mutation {
	kind := spanner.NullString{StringVal: r.AggregateKind, Valid: r.AggregateKind != ""}
	return spanner.Insert(TableName, insertColumns, []interface{}{
		r.EventID, r.EventType, kind, r.AggregateID,
		r.Payload, r.Status, r.CreatedAt.UTC(), nil,
	})
}

// Settle moves an existing row to a final status. Update fails with
// NotFound when the row is missing.
func Settle(eventID, status string, at time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColEventID, ColStatus, ColProcessedAt},
		[]interface{}{eventID, status, at.UTC()})
}
