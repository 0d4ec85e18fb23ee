package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCacheSetGet(t *testing.T) {
	c := NewSearchCache[string](10, time.Minute)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSearchCacheExpiry(t *testing.T) {
	c := NewSearchCache[int](10, time.Millisecond)

	c.Set("k", 42)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	// 过期条目被顺手清掉
	assert.Zero(t, c.Len())
}

func TestSearchCacheEviction(t *testing.T) {
	c := NewSearchCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // 容量 2，最久未用的 a 被挤出

	_, ok := c.Get("a")
	assert.False(t, ok)
	got, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestSearchCacheClear(t *testing.T) {
	c := NewSearchCache[string](10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()

	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGlobalCache(t *testing.T) {
	InitCache()

	CacheSet("k", "v", time.Minute)
	got, ok := CacheGet("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	CacheDelete("k")
	_, ok = CacheGet("k")
	assert.False(t, ok)
}
