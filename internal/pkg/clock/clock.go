// Package clock supplies timestamps for catalog writes.
package clock

import (
	"sync"
	"time"
)

// Precision is the resolution both stores persist. Timestamps are
// truncated to it so a freshly written entity equals its read-back.
const Precision = time.Microsecond

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC at store precision.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}

// FakeClock returns a fixed time that tests move explicitly, or by step on
// every read when created with NewStepping. Safe for concurrent use.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewFake(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

// NewStepping gives each Now call a distinct, increasing time, which keeps
// creation order stable for sorts on created_at.
func NewStepping(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: start.UTC(), step: step}
}

func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.now
	f.now = f.now.Add(f.step)
	return t
}

func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
