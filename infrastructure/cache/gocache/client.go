// ABOUTME: In-process cache backed by patrickmn/go-cache
// ABOUTME: Holds local state without expiry and synthesized audio with a TTL

package gocache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mowakeb-api/core/interfaces"
)

// ErrCacheMiss is returned when a key is not in the cache
var ErrCacheMiss = interfaces.ErrCacheMiss

// Cache implements the Cache interface over go-cache
type Cache struct {
	cache *gocache.Cache
}

// NewCache creates a cache that purges expired items every cleanupInterval
func NewCache(cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a copy of the value stored under key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), data...), nil
}

// Set stores a copy of value. A zero ttl keeps the value until deleted.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	c.cache.Set(key, append([]byte(nil), value...), expiration)
	return nil
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

// Count returns the number of items, expired ones included until purged
func (c *Cache) Count() int {
	return c.cache.ItemCount()
}
