// ABOUTME: Local state store persists the device-held entities as independent JSON blobs
// ABOUTME: Loads tolerate absent or malformed data with a typed default; backend read failures are returned

package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/interfaces"
)

// Logical entity keys, prefixed with the store namespace
const (
	keyUser          = "user"
	keyFavorites     = "favorites"
	keyLastSearch    = "last-search"
	keySelectedPaper = "selected-paper"
)

// storedSearchTopic is used when a stored search has no topic
const storedSearchTopic = "Recent Papers"

// Store is the local key-value state of one device
type Store struct {
	cache     interfaces.Cache
	logger    interfaces.Logger
	namespace string
}

// NewStore creates a state store over cache. Values are written without TTL.
func NewStore(cache interfaces.Cache, logger interfaces.Logger, namespace string) *Store {
	if namespace == "" {
		namespace = "mowakeb"
	}
	return &Store{
		cache:     cache,
		logger:    logger,
		namespace: namespace,
	}
}

func (s *Store) key(name string) string {
	return s.namespace + ":" + name
}

// load returns the raw blob for name, or nil when nothing is stored. A
// failing backend is an error, never an empty value.
func (s *Store) load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.cache.Get(ctx, s.key(name))
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func (s *Store) save(ctx context.Context, name string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.cache.Set(ctx, s.key(name), data, 0); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}

func (s *Store) malformed(name string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn("Ignoring malformed local state", map[string]interface{}{
		"key":   s.key(name),
		"error": err.Error(),
	})
}

// LoadUser returns the authenticated user, or nil for guests. A legacy
// blob holding just "true" is a logged-in user without identity.
func (s *Store) LoadUser(ctx context.Context) (*domain.User, error) {
	raw, err := s.load(ctx, keyUser)
	if err != nil || raw == nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		if string(bytes.TrimSpace(raw)) == "true" {
			return &domain.User{LoggedIn: true}, nil
		}
		s.malformed(keyUser, err)
		return nil, nil
	}
	if !user.LoggedIn {
		return nil, nil
	}
	return &user, nil
}

// SaveUser stores the user record as logged in
func (s *Store) SaveUser(ctx context.Context, user domain.User) error {
	user.LoggedIn = true
	return s.save(ctx, keyUser, user)
}

// ClearUser forgets the authenticated user
func (s *Store) ClearUser(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key(keyUser))
}

// LoadFavorites returns the tracker cache. The slice is never nil unless
// the backend failed.
func (s *Store) LoadFavorites(ctx context.Context) ([]domain.TrackedPaper, error) {
	raw, err := s.load(ctx, keyFavorites)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.TrackedPaper{}, nil
	}

	var favs []domain.TrackedPaper
	if err := json.Unmarshal(raw, &favs); err != nil {
		s.malformed(keyFavorites, err)
		return []domain.TrackedPaper{}, nil
	}
	if favs == nil {
		return []domain.TrackedPaper{}, nil
	}
	return favs, nil
}

// SaveFavorites replaces the tracker cache
func (s *Store) SaveFavorites(ctx context.Context, favs []domain.TrackedPaper) error {
	if favs == nil {
		favs = []domain.TrackedPaper{}
	}
	return s.save(ctx, keyFavorites, favs)
}

// LoadLastSearch returns the last search or nil. Missing fields are filled
// with the AI field and a generic topic.
func (s *Store) LoadLastSearch(ctx context.Context) (*domain.SearchContext, error) {
	raw, err := s.load(ctx, keyLastSearch)
	if err != nil || raw == nil {
		return nil, err
	}

	var sc domain.SearchContext
	if err := json.Unmarshal(raw, &sc); err != nil {
		s.malformed(keyLastSearch, err)
		return nil, nil
	}
	if sc.Field == "" {
		sc.Field = domain.FieldAI
	}
	if sc.Topic == "" {
		sc.Topic = storedSearchTopic
	}
	return &sc, nil
}

// SaveLastSearch overwrites the last search
func (s *Store) SaveLastSearch(ctx context.Context, sc domain.SearchContext) error {
	return s.save(ctx, keyLastSearch, sc)
}

// LoadSelectedPaper returns the selected paper or nil
func (s *Store) LoadSelectedPaper(ctx context.Context) (*domain.SelectedPaper, error) {
	raw, err := s.load(ctx, keySelectedPaper)
	if err != nil || raw == nil {
		return nil, err
	}

	var sel domain.SelectedPaper
	if err := json.Unmarshal(raw, &sel); err != nil {
		s.malformed(keySelectedPaper, err)
		return nil, nil
	}
	return &sel, nil
}

// SaveSelectedPaper overwrites the selected paper
func (s *Store) SaveSelectedPaper(ctx context.Context, sel domain.SelectedPaper) error {
	return s.save(ctx, keySelectedPaper, sel)
}

// Clear removes every entity of the namespace
func (s *Store) Clear(ctx context.Context) error {
	for _, name := range []string{keyUser, keyFavorites, keyLastSearch, keySelectedPaper} {
		if err := s.cache.Delete(ctx, s.key(name)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	return nil
}
