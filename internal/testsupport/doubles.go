// Package testsupport holds test doubles shared by package tests.
package testsupport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
)

// ErrCacheDown is returned by every FailingCache call.
var ErrCacheDown = errors.New("cache unavailable")

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FailingCache simulates a cache outage.
type FailingCache struct {
	Calls atomic.Int64
}

func (c *FailingCache) Get(context.Context, string) ([]byte, error) {
	c.Calls.Add(1)
	return nil, ErrCacheDown
}

func (c *FailingCache) Set(context.Context, string, []byte, time.Duration) error {
	c.Calls.Add(1)
	return ErrCacheDown
}

func (c *FailingCache) DeleteByPrefix(context.Context, string) error {
	c.Calls.Add(1)
	return ErrCacheDown
}

func (c *FailingCache) Ping(context.Context) error {
	return ErrCacheDown
}

func (c *FailingCache) Close() error {
	return nil
}

// RecordingPublisher keeps every published event. Err, when set, is
// returned from Publish after recording.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []contracts.IntegrationEvent
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, e contracts.IntegrationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.Err
}

func (p *RecordingPublisher) Events() []contracts.IntegrationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]contracts.IntegrationEvent, len(p.events))
	copy(out, p.events)
	return out
}

// Types returns the type of every recorded event in publish order.
func (p *RecordingPublisher) Types() []string {
	events := p.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

// RecordingInvalidator keeps every invalidated prefix.
type RecordingInvalidator struct {
	mu       sync.Mutex
	prefixes []string
}

func (r *RecordingInvalidator) InvalidateNamespace(_ context.Context, prefix string) {
	r.mu.Lock()
	r.prefixes = append(r.prefixes, prefix)
	r.mu.Unlock()
}

func (r *RecordingInvalidator) Prefixes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}
