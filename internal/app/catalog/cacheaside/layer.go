// Package cacheaside implements read-through caching of projected query
// results with namespace invalidation on write.
package cacheaside

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/murkotick/catalog-service/internal/cache"
)

// Options tune the cache-aside layer.
type Options struct {
	// TTL is the fixed lifetime of every cached result.
	TTL time.Duration
	// OpTimeout bounds each cache call; a slow cache counts as a miss.
	OpTimeout time.Duration
	// LoadTimeout bounds a shared store load. The load outlives any single
	// caller, so it cannot borrow a request deadline.
	LoadTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{TTL: 20 * time.Minute, OpTimeout: 150 * time.Millisecond, LoadTimeout: 10 * time.Second}
}

// Layer sits between query handlers and the store. Cache failures never
// reach callers: they are logged and the store is used instead.
type Layer struct {
	cache  cache.Cache
	opts   Options
	logger *slog.Logger
	group  singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

func New(c cache.Cache, opts Options, logger *slog.Logger) *Layer {
	if opts.TTL <= 0 {
		opts.TTL = DefaultOptions().TTL
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOptions().OpTimeout
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultOptions().LoadTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Layer{
		cache:       c,
		opts:        opts,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// LoadFn reads the authoritative value from the store.
type LoadFn[T any] func(ctx context.Context) (T, error)

// GetOrLoad returns the cached value for key or loads, caches and returns
// it. Concurrent misses on the same key share one load. Every caller gets
// its own decoded copy, so hits and misses return identical values.
//
// The shared load runs detached from every caller's cancellation, bounded
// by LoadTimeout. A cancelled caller returns early on its own; the others
// keep waiting for the result.
func GetOrLoad[T any](ctx context.Context, l *Layer, key string, load LoadFn[T]) (T, error) {
	var zero T

	if data, ok := l.lookup(ctx, key); ok {
		var v T
		err := json.Unmarshal(data, &v)
		if err == nil {
			return v, nil
		}
		l.logger.WarnContext(ctx, "cache entry undecodable, reloading", "key", key, "error", err)
	}

	ns := namespaceOf(key)
	gen := l.generation(ns)

	// The generation is part of the flight key so a load that started
	// before an invalidation is not shared with readers arriving after it.
	flightKey := key + "#" + strconv.FormatUint(gen, 10)
	ch := l.group.DoChan(flightKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.LoadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cache entry: %w", err)
		}
		if l.generation(ns) == gen {
			l.store(loadCtx, key, data)
		} else {
			l.logger.DebugContext(loadCtx, "namespace invalidated during load, skipping cache write", "key", key)
		}
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		var v T
		if err := json.Unmarshal(res.Val.([]byte), &v); err != nil {
			return zero, fmt.Errorf("decode loaded value: %w", err)
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// InvalidateNamespace deletes every cached key starting with prefix. It
// runs on a context detached from the caller's cancellation because it
// follows a committed write. Failures are logged; the TTL bounds staleness.
func (l *Layer) InvalidateNamespace(ctx context.Context, prefix string) {
	l.bump(namespaceOf(prefix))

	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.OpTimeout)
	defer cancel()

	if err := l.cache.DeleteByPrefix(opCtx, prefix); err != nil {
		l.logger.ErrorContext(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
		return
	}
	l.logger.DebugContext(ctx, "cache namespace invalidated", "prefix", prefix)
}

func (l *Layer) lookup(ctx context.Context, key string) ([]byte, bool) {
	opCtx, cancel := context.WithTimeout(ctx, l.opts.OpTimeout)
	defer cancel()

	data, err := l.cache.Get(opCtx, key)
	switch {
	case err == nil:
		return data, true
	case errors.Is(err, cache.ErrCacheMiss):
		return nil, false
	default:
		l.logger.WarnContext(ctx, "cache read failed, falling back to store", "key", key, "error", err)
		return nil, false
	}
}

func (l *Layer) store(ctx context.Context, key string, data []byte) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.OpTimeout)
	defer cancel()

	if err := l.cache.Set(opCtx, key, data, l.opts.TTL); err != nil {
		l.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (l *Layer) generation(ns string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[ns]
}

func (l *Layer) bump(ns string) {
	l.mu.Lock()
	l.generations[ns]++
	l.mu.Unlock()
}
