package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"mowakeb-api/core/domain"
	"mowakeb-api/infrastructure/cache/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *memory.MemoryCache) {
	cache := memory.NewMemoryCache()
	return NewStore(cache, nil, "test"), cache
}

// failingCache wraps a cache and fails reads while failGet is set
type failingCache struct {
	*memory.MemoryCache
	failGet bool
}

func (c *failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.failGet {
		return nil, errors.New("i/o timeout")
	}
	return c.MemoryCache.Get(ctx, key)
}

func loadUser(t *testing.T, store *Store) *domain.User {
	t.Helper()
	user, err := store.LoadUser(context.Background())
	require.NoError(t, err)
	return user
}

func loadFavorites(t *testing.T, store *Store) []domain.TrackedPaper {
	t.Helper()
	favs, err := store.LoadFavorites(context.Background())
	require.NoError(t, err)
	return favs
}

func loadLastSearch(t *testing.T, store *Store) *domain.SearchContext {
	t.Helper()
	sc, err := store.LoadLastSearch(context.Background())
	require.NoError(t, err)
	return sc
}

func TestStore_UserRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	assert.Nil(t, loadUser(t, store))

	require.NoError(t, store.SaveUser(ctx, domain.User{ID: "u1", Email: "r@example.com", Field: "Security"}))
	user := loadUser(t, store)
	require.NotNil(t, user)
	assert.True(t, user.LoggedIn)
	assert.Equal(t, "r@example.com", user.Email)

	require.NoError(t, store.ClearUser(ctx))
	assert.Nil(t, loadUser(t, store))
}

func TestStore_UserLegacyAndMalformed(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "test:user", []byte("true"), 0))
	user := loadUser(t, store)
	require.NotNil(t, user)
	assert.True(t, user.LoggedIn)
	assert.False(t, user.IsOwner())

	require.NoError(t, cache.Set(ctx, "test:user", []byte("{broken"), 0))
	assert.Nil(t, loadUser(t, store))

	require.NoError(t, cache.Set(ctx, "test:user", []byte(`{"email":"x@y.z","loggedIn":false}`), 0))
	assert.Nil(t, loadUser(t, store))
}

func TestStore_FavoritesTolerateBadData(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	assert.Empty(t, loadFavorites(t, store))
	assert.NotNil(t, loadFavorites(t, store))

	require.NoError(t, cache.Set(ctx, "test:favorites", []byte(`{"not":"an array"}`), 0))
	assert.Empty(t, loadFavorites(t, store))

	require.NoError(t, cache.Set(ctx, "test:favorites", []byte(`null`), 0))
	assert.NotNil(t, loadFavorites(t, store))

	favs := []domain.TrackedPaper{{Title: "A", Status: domain.StatusDone}, {ID: "7", Title: "B", Status: domain.StatusToRead}}
	require.NoError(t, store.SaveFavorites(ctx, favs))
	assert.Equal(t, favs, loadFavorites(t, store))
}

func TestStore_BackendReadFailureIsReturned(t *testing.T) {
	cache := &failingCache{MemoryCache: memory.NewMemoryCache()}
	store := NewStore(cache, nil, "test")
	ctx := context.Background()

	require.NoError(t, store.SaveFavorites(ctx, []domain.TrackedPaper{{Title: "A"}, {Title: "B"}}))
	require.NoError(t, store.SaveUser(ctx, domain.User{Email: "r@example.com"}))
	cache.failGet = true

	favs, err := store.LoadFavorites(ctx)
	assert.Error(t, err)
	assert.Nil(t, favs)

	user, err := store.LoadUser(ctx)
	assert.Error(t, err)
	assert.Nil(t, user)

	_, err = store.LoadLastSearch(ctx)
	assert.Error(t, err)
	_, err = store.LoadSelectedPaper(ctx)
	assert.Error(t, err)

	cache.failGet = false
	assert.Len(t, loadFavorites(t, store), 2)
}

func TestStore_LastSearchDefaults(t *testing.T) {
	store, cache := newTestStore()
	ctx := context.Background()

	assert.Nil(t, loadLastSearch(t, store))

	require.NoError(t, cache.Set(ctx, "test:last-search", []byte(`{}`), 0))
	sc := loadLastSearch(t, store)
	require.NotNil(t, sc)
	assert.Equal(t, domain.FieldAI, sc.Field)
	assert.Equal(t, "Recent Papers", sc.Topic)

	require.NoError(t, cache.Set(ctx, "test:last-search", []byte(`[1,2]`), 0))
	assert.Nil(t, loadLastSearch(t, store))

	saved := domain.NewSearchContext("Security & Privacy", "", time.Now())
	require.NoError(t, store.SaveLastSearch(ctx, saved))
	sc = loadLastSearch(t, store)
	require.NotNil(t, sc)
	assert.Equal(t, "Security & Privacy", sc.Field)
	assert.Equal(t, domain.DefaultTopic, sc.Topic)
}

func TestStore_SelectedPaperAndClear(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	sel := domain.NewSelectedPaper(domain.ResultRow{Title: "P", StoredHTMLPath: "a/b.html"}, domain.FieldAI)
	require.NoError(t, store.SaveSelectedPaper(ctx, sel))

	got, err := store.LoadSelectedPaper(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a/b.html", domain.Deref(got.StoredHTMLPath))

	require.NoError(t, store.Clear(ctx))
	got, err = store.LoadSelectedPaper(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, loadFavorites(t, store))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	cache := memory.NewMemoryCache()
	ctx := context.Background()
	a := NewStore(cache, nil, "a")
	b := NewStore(cache, nil, "b")

	require.NoError(t, a.SaveFavorites(ctx, []domain.TrackedPaper{{Title: "only in a"}}))

	assert.Len(t, loadFavorites(t, a), 1)
	assert.Empty(t, loadFavorites(t, b))
}
