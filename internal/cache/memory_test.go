package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	opts := DefaultMemoryOptions()
	opts.Capacity = 1000
	c, err := NewMemoryCache(opts)
	require.NoError(t, err)
	return c
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	_, err := c.Get(ctx, "product::list::a")
	require.ErrorIs(t, err, ErrCacheMiss)

	value := []byte(`{"items":[]}`)
	require.NoError(t, c.Set(ctx, "product::list::a", value, time.Minute))
	value[0] = 'X'

	got, err := c.Get(ctx, "product::list::a")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(got), "stored value must not alias the caller's buffer")
}

func TestMemoryCache_PerEntryTTL(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)

	current = current.Add(2 * time.Second)
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	for _, k := range []string{"product::list::1", "product::get::2", "category::list::1"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}

	require.NoError(t, c.DeleteByPrefix(ctx, "product::"))

	_, err := c.Get(ctx, "product::list::1")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "product::get::2")
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := c.Get(ctx, "category::list::1")
	require.NoError(t, err)
	assert.Equal(t, "category::list::1", string(got))
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_Closed(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)
	require.NoError(t, c.Close())

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), ErrCacheClosed)
	assert.ErrorIs(t, c.Ping(ctx), ErrCacheClosed)
}

func TestMemoryOptions_Validate(t *testing.T) {
	opts := DefaultMemoryOptions()
	opts.EvictionPercentage = 0
	_, err := NewMemoryCache(opts)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "EvictionPercentage", cfgErr.Field)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
