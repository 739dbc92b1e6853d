package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(30 * time.Second)
	clock := time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("k", 42)

	clock = clock.Add(29 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "still inside the TTL window")

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entries are dropped on read")

	// a later Set revives the key with a fresh window
	c.Set("k", 43)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 43, got)
}

func TestCacheRemoveAndClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}
