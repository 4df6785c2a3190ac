// Package cache provides the key/value stores used for cache-aside reads.
// Every backend is disposable: callers treat any error as a miss.
package cache

import (
	"context"
	"time"
)

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss Error = "cache: miss"

	// ErrCacheClosed is returned after Close.
	ErrCacheClosed Error = "cache: closed"
)

// Cache stores serialized query results with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPrefix removes every key that starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	Ping(ctx context.Context) error
	Close() error
}
