package m_outbox

// Columns of outbox_events. aggregate_kind lets a relay route by entity
// kind without parsing payloads.
const (
	TableName = "outbox_events"

	ColEventID       = "event_id"
	ColEventType     = "event_type"
	ColAggregateKind = "aggregate_kind"
	ColAggregateID   = "aggregate_id"
	ColPayload       = "payload"
	ColStatus        = "status"
	ColCreatedAt     = "created_at"
	ColProcessedAt   = "processed_at"
)
