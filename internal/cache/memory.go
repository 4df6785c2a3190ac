package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryOptions configures the in-process backend.
type MemoryOptions struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// DefaultMemoryOptions returns options sized for a single catalog instance.
func DefaultMemoryOptions() MemoryOptions {
	return MemoryOptions{
		Capacity:           10000,
		NumShards:          64,
		TTL:                20 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ConfigError reports an invalid option.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

func (o MemoryOptions) validate() error {
	switch {
	case o.Capacity <= 0:
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	case o.NumShards <= 0:
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	case o.TTL <= 0:
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	case o.EvictionPercentage < 1 || o.EvictionPercentage > 100:
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a sharded in-process cache backed by sturdyc. sturdyc
// applies one TTL to the whole client, so entries also carry their own
// expiry to honour shorter per-call TTLs.
type MemoryCache struct {
	client *sturdyc.Client[memoryEntry]
	ttl    time.Duration
	now    func() time.Time
	closed atomic.Bool
}

func NewMemoryCache(opts MemoryOptions) (*MemoryCache, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	shards := opts.NumShards
	if shards > opts.Capacity {
		shards = opts.Capacity
	}
	return &MemoryCache{
		client: sturdyc.New[memoryEntry](opts.Capacity, shards, opts.TTL, opts.EvictionPercentage),
		ttl:    opts.TTL,
		now:    time.Now,
	}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	entry, ok := c.client.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.now().Before(entry.expiresAt) {
		c.client.Delete(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	c.client.Set(key, memoryEntry{value: buf, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	for _, key := range c.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			c.client.Delete(key)
		}
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return nil
}

// Size returns the number of stored entries, including expired ones not yet evicted.
func (c *MemoryCache) Size() int {
	return len(c.client.ScanKeys())
}

func (c *MemoryCache) Close() error {
	c.closed.Store(true)
	return nil
}
