package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a size-bounded LRU whose entries also expire after a TTL.
type Cache[K comparable, V any] struct {
	lru *lru.Cache[K, cacheItem[V]]
	ttl time.Duration
}

func NewCache[K comparable, V any](size int, ttl time.Duration) (*Cache[K, V], error) {
	l, err := lru.New[K, cacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{lru: l, ttl: ttl}, nil
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, cacheItem[V]{value: value, expiresAt: time.Now().Add(c.ttl)})
}

// Get returns the cached value, dropping it if it has expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	item, ok := c.lru.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		c.lru.Remove(key)
		var zero V
		return zero, false
	}
	return item.value, true
}

func (c *Cache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}
