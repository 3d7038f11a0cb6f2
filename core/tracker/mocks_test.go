package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"mowakeb-api/core/domain"
	"mowakeb-api/infrastructure/cache/memory"
)

// failingCache fails every read while failGet is set
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

// mockTrackerStore is a mock implementation of the TrackerStore interface
type mockTrackerStore struct {
	mu sync.Mutex

	insertFunc       func(ctx context.Context, row domain.TrackerRow) (string, error)
	listByOwnerFunc  func(ctx context.Context, ownerEmail string) ([]domain.TrackerRow, error)
	updateStatusFunc func(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error
	deleteFunc       func(ctx context.Context, id string) error

	calls []string
}

func (m *mockTrackerStore) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockTrackerStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockTrackerStore) Insert(ctx context.Context, row domain.TrackerRow) (string, error) {
	m.record("insert")
	if m.insertFunc != nil {
		return m.insertFunc(ctx, row)
	}
	return "new-id", nil
}

func (m *mockTrackerStore) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.TrackerRow, error) {
	m.record("list")
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerEmail)
	}
	return nil, nil
}

func (m *mockTrackerStore) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	m.record("update")
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, updatedAt)
	}
	return nil
}

func (m *mockTrackerStore) Delete(ctx context.Context, id string) error {
	m.record("delete")
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) errorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}
