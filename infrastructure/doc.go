// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
//   - cache/memory: in-process map with lazy expiry
//   - cache/gocache: in-process cache on patrickmn/go-cache
//   - cache/redis: Redis-backed cache shared across instances
//   - cache/sqlite: file-backed cache that survives restarts
//   - http/standard: net/http client with retries on GET
//   - logger/logrus: structured logging with optional rotating files
//   - supabase: PostgREST tables and public storage URLs
//   - rowstore/sqlite: local tracker and papers tables
//   - tts/http and tts/google: speech synthesizers
//   - chatbot: the PDF chatbot HTTP client
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "device:user", userJSON, 0)
//	value, err := cache.Get(ctx, "device:user")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # Remote Stores
//
//	client, err := supabase.NewClient(supabase.Config{
//	    URL:     "https://project.supabase.co",
//	    AnonKey: key,
//	    Bucket:  "summaries",
//	}, standard.NewStandardHTTPClient(30*time.Second), logger)
//	rows, err := client.ListByOwner(ctx, "reader@example.com")
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Tracker reloaded", map[string]interface{}{
//	    "entries": 12,
//	})
package infrastructure
