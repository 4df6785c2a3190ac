// Package events delivers integration events to other services.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
)

// ErrClosed is returned by Async.Publish after Close.
var ErrClosed = errors.New("events: publisher closed")

// Async hands every event to a background goroutine so commands never wait
// on the sink. Failures are logged and dropped.
type Async struct {
	next    contracts.EventPublisher
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsync(next contracts.EventPublisher, timeout time.Duration, logger *slog.Logger) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Async{next: next, timeout: timeout, logger: logger}
}

// Publish returns immediately. The event is delivered on a context that
// keeps the caller's values but not its cancellation.
func (a *Async) Publish(ctx context.Context, e contracts.IntegrationEvent) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.next.Publish(pubCtx, e); err != nil {
			a.logger.ErrorContext(pubCtx, "failed to publish event",
				"error", err,
				"event_type", e.Type,
				"aggregate_id", e.AggregateID)
			return
		}
		a.logger.DebugContext(pubCtx, "event published", "event_type", e.Type, "event_id", e.ID)
	}()
	return nil
}

// Close stops accepting events and waits for in-flight deliveries or ctx.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
