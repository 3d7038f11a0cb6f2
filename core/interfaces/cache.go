// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
// Any other Get error is a backend failure.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the interface for cache operations.
// It backs both the local state store and response caching (synthesized audio).
// Implementations can be Redis, go-cache, SQLite or in-memory.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a value that never expires
//	err := cache.Set(ctx, "device:favorites", favoritesJSON, 0)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "device:favorites")
//	if err != nil {
//		// handle error or cache miss
//	}
//
//	// Delete a value
//	err = cache.Delete(ctx, "device:favorites")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss (possibly wrapped) if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
