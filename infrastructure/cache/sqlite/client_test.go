package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, path string) (*Client, *time.Time) {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "state.db")
	}
	cache, err := NewSQLiteCache(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestClient_SetGetDelete(t *testing.T) {
	cache, _ := newTestCache(t, "")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "device:tracker", []byte(`[{"title":"a"}]`), 0))

	value, err := cache.Get(ctx, "device:tracker")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"a"}]`, string(value))

	require.NoError(t, cache.Delete(ctx, "device:tracker"))
	_, err = cache.Get(ctx, "device:tracker")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

func TestClient_Overwrite(t *testing.T) {
	cache, _ := newTestCache(t, "")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "device:user", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "device:user", []byte("b"), 0))

	value, err := cache.Get(ctx, "device:user")
	require.NoError(t, err)
	assert.Equal(t, "b", string(value))
}

func TestClient_Expiry(t *testing.T) {
	cache, now := newTestCache(t, "")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "audio:abc", []byte("mp3"), time.Minute))
	require.NoError(t, cache.Set(ctx, "device:user", []byte("u"), 0))

	*now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "audio:abc")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	removed, err := cache.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	value, err := cache.Get(ctx, "device:user")
	require.NoError(t, err)
	assert.Equal(t, "u", string(value))
}

func TestClient_EmptyKeyRejected(t *testing.T) {
	cache, _ := newTestCache(t, "")
	assert.Error(t, cache.Set(context.Background(), "", []byte("v"), 0))
}

func TestClient_KeysAreParameterized(t *testing.T) {
	cache, _ := newTestCache(t, "")
	ctx := context.Background()

	key := `x'; DROP TABLE state; --`
	require.NoError(t, cache.Set(ctx, key, []byte("v"), 0))
	value, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(value))
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "device:search", []byte(`{"field":"AI"}`), 0))
	require.NoError(t, first.Close())

	second, _ := newTestCache(t, path)
	value, err := second.Get(ctx, "device:search")
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"AI"}`, string(value))
}

func TestClient_ConcurrentWriters(t *testing.T) {
	cache, _ := newTestCache(t, "")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, cache.Set(ctx, "device:tracker", []byte("v"), 0))
			}
		}()
	}
	wg.Wait()

	_, err := cache.Get(ctx, "device:tracker")
	assert.NoError(t, err)
}

func TestClient_CloseTwice(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "state.db"), nil)
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	assert.NotPanics(t, func() { _ = cache.Close() })
}
