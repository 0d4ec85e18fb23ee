package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 进程级缓存，放月榜、筛选项这类全站共享的数据
var Cache *cache.Cache

// InitCache 启动时调用一次
func InitCache() {
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet 读共享缓存
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 写共享缓存，duration 到期自动失效
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete 主动失效一个键，片库变更后用
func CacheDelete(key string) {
	Cache.Delete(key)
}

// searchEntry 带过期时间的缓存值
type searchEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// SearchCache 搜索结果的 LRU + TTL 缓存
// 容量满了按最久未用淘汰，命中但过期的条目当作未命中并顺手删掉
type SearchCache[T any] struct {
	entries *lru.Cache[string, searchEntry[T]]
	ttl     time.Duration
}

// NewSearchCache size 为最大条目数，ttl 为单条有效期
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	entries, _ := lru.New[string, searchEntry[T]](size)
	return &SearchCache[T]{entries: entries, ttl: ttl}
}

// Set 写入，键已存在时覆盖并刷新有效期
func (c *SearchCache[T]) Set(key string, value T) {
	c.entries.Add(key, searchEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Get 读取，过期条目返回未命中
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	entry, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return zero, false
	}
	return entry.value, true
}

// Clear 全量失效，片库数据变更后调用
func (c *SearchCache[T]) Clear() {
	c.entries.Purge()
}

// Len 当前条目数
func (c *SearchCache[T]) Len() int {
	return c.entries.Len()
}
