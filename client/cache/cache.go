package querycache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Cache is the managed query cache the data access layer registers reads
// into: TTL'd entries with LRU eviction, and in-flight deduplication so
// concurrent identical queries hit the backend once.
type Cache struct {
	lru   *expirable.LRU[string, []byte]
	group singleflight.Group
}

func New(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Do returns the cached payload for key, or runs fetch and caches its result.
// Failed fetches are not cached.
func (c *Cache) Do(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.lru.Get(key); ok {
		return data, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// a concurrent caller may have populated it while we queued
		if data, ok := c.lru.Get(key); ok {
			return data, nil
		}
		data, err := fetch()
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate drops every entry whose key starts with one of the prefixes.
func (c *Cache) Invalidate(prefixes ...string) {
	for _, key := range c.lru.Keys() {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				c.lru.Remove(key)
				break
			}
		}
	}
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
