package sqlitestore

import (
	"time"

	"github.com/uptrace/bun"
)

type entityRow struct {
	bun.BaseModel `bun:"table:catalog_entities,alias:e"`

	EntityID         string    `bun:"entity_id,pk"`
	Kind             string    `bun:"kind,notnull"`
	ParentID         *string   `bun:"parent_id"`
	PriceNumerator   *int64    `bun:"price_numerator"`
	PriceDenominator *int64    `bun:"price_denominator"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

type translationRow struct {
	bun.BaseModel `bun:"table:catalog_translations,alias:t"`

	EntityID     string    `bun:"entity_id,pk"`
	LanguageCode string    `bun:"language_code,pk"`
	Kind         string    `bun:"kind,notnull"`
	Name         string    `bun:"name,notnull"`
	Slug         string    `bun:"slug,notnull"`
	Description  string    `bun:"description,nullzero"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

type outboxRow struct {
	bun.BaseModel `bun:"table:outbox_events,alias:o"`

	EventID       string     `bun:"event_id,pk"`
	EventType     string     `bun:"event_type,notnull"`
	AggregateKind string     `bun:"aggregate_kind,nullzero"`
	AggregateID   string     `bun:"aggregate_id,notnull"`
	Payload       string     `bun:"payload,notnull"`
	Status        string     `bun:"status,notnull"`
	CreatedAt     time.Time  `bun:"created_at,notnull"`
	ProcessedAt   *time.Time `bun:"processed_at"`
}
