package cache

import (
	"context"
	"time"
)

// Noop disables caching: every Get misses and writes are dropped.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Noop) DeleteByPrefix(context.Context, string) error {
	return nil
}

func (Noop) Ping(context.Context) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
