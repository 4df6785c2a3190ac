package sqlitestore

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

// Save writes a new entity with its first translation, or the pending
// translations of a loaded one, in a single transaction.
func (s *Store) Save(ctx context.Context, e *domain.Entity) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if e.IsNew() {
			if _, err := tx.NewInsert().Model(toEntityRow(e)).Exec(ctx); err != nil {
				return mapInsertError(err)
			}
		} else if e.Changes().HasChanges() {
			res, err := tx.NewUpdate().
				Model((*entityRow)(nil)).
				Set("updated_at = ?", e.UpdatedAt().UTC()).
				Where("entity_id = ?", e.ID()).
				Where("kind = ?", e.Kind().String()).
				Exec(ctx)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return contracts.ErrEntityNotFound
			}
		}

		pending := e.PendingTranslations()
		if len(pending) == 0 {
			return nil
		}
		rows := make([]*translationRow, 0, len(pending))
		for _, t := range pending {
			rows = append(rows, toTranslationRow(e, t))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return mapInsertError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s %s: %w", e.Kind(), e.ID(), err)
	}
	return nil
}

// Delete removes the entity. Translations go with it through the cascade.
func (s *Store) Delete(ctx context.Context, kind domain.Kind, id string) error {
	res, err := s.db.NewDelete().
		Model((*entityRow)(nil)).
		Where("entity_id = ?", id).
		Where("kind = ?", kind.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, mapDeleteError(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return contracts.ErrEntityNotFound
	}
	return nil
}

// AppendOutbox stores an event for a relay to pick up.
func (s *Store) AppendOutbox(ctx context.Context, e contracts.OutboxEvent) error {
	row := &outboxRow{
		EventID:       e.EventID,
		EventType:     e.EventType,
		AggregateKind: e.AggregateKind(),
		AggregateID:   e.AggregateID,
		Payload:       e.PayloadJSON,
		Status:        e.StatusOrPending(),
		CreatedAt:     e.CreatedAtUTC.UTC(),
	}
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("append outbox event %s: %w", e.EventID, err)
	}
	return nil
}

// MarkOutboxProcessed flags a forwarded event.
func (s *Store) MarkOutboxProcessed(ctx context.Context, eventID string, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*outboxRow)(nil)).
		Set("status = ?", contracts.OutboxStatusProcessed).
		Set("processed_at = ?", at.UTC()).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ack outbox event %s: %w", eventID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ack outbox event %s: %w", eventID, contracts.ErrOutboxEventNotFound)
	}
	return nil
}

func toEntityRow(e *domain.Entity) *entityRow {
	row := &entityRow{
		EntityID:  e.ID(),
		Kind:      e.Kind().String(),
		CreatedAt: e.CreatedAt().UTC(),
		UpdatedAt: e.UpdatedAt().UTC(),
	}
	if p := e.ParentID(); p != "" {
		row.ParentID = &p
	}
	if price := e.Price(); price != nil {
		n, d := price.Numerator(), price.Denominator()
		row.PriceNumerator, row.PriceDenominator = &n, &d
	}
	return row
}

func toTranslationRow(e *domain.Entity, t domain.Translation) *translationRow {
	return &translationRow{
		EntityID:     e.ID(),
		LanguageCode: t.LanguageCode,
		Kind:         e.Kind().String(),
		Name:         t.Name,
		Slug:         t.Slug,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt.UTC(),
	}
}
