package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("a"), time.Second))
	require.NoError(t, c.Set(ctx, "default", []byte("b"), 0))
	require.NoError(t, c.Set(ctx, "forever", []byte("c"), -1))

	now = now.Add(2 * time.Second)
	_, err := c.Get(ctx, "short")
	assert.True(t, IsCacheMiss(err))

	_, err = c.Get(ctx, "default")
	assert.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = c.Get(ctx, "default")
	assert.True(t, IsCacheMiss(err))

	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCache_SetCopiesValue(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "key", value, time.Minute))
	value[0] = 'z'

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.True(t, IsCacheMiss(err))
}

func TestMemoryCache_CanceledContext(t *testing.T) {
	c := NewMemoryCache(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, "key", nil, 0), context.Canceled)
}
