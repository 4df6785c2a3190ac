package shared

import (
	"context"
	"log/slog"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

// Invalidator drops cached query results for a key namespace.
type Invalidator interface {
	InvalidateNamespace(ctx context.Context, prefix string)
}

// Effects runs the side effects of a committed command. Neither step can
// fail the command: the write is already durable.
type Effects struct {
	Invalidator Invalidator
	Publisher   contracts.EventPublisher
	Logger      *slog.Logger
}

// AfterCommit invalidates the kind's cache namespace and then publishes the
// events. Invalidation comes first so consumers reacting to an event read
// fresh data.
func (fx Effects) AfterCommit(ctx context.Context, kind domain.Kind, events []domain.DomainEvent) {
	if fx.Invalidator != nil {
		fx.Invalidator.InvalidateNamespace(ctx, kind.CacheNamespace())
	}
	if fx.Publisher == nil {
		return
	}

	logger := fx.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, ev := range events {
		ie, err := ToIntegrationEvent(ev)
		if err != nil {
			logger.ErrorContext(ctx, "encode integration event", "type", ev.EventType(), "error", err)
			continue
		}
		if err := fx.Publisher.Publish(ctx, ie); err != nil {
			logger.WarnContext(ctx, "publish integration event", "type", ie.Type, "aggregate_id", ie.AggregateID, "error", err)
		}
	}
}
