package summary

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/infrastructure/cache/memory"
)

// mockPaperStore is a mock implementation of the PaperStore interface
type mockPaperStore struct {
	listFunc func(ctx context.Context, mainField string, limit int) ([]domain.PaperRow, error)

	mu        sync.Mutex
	mainField string
	limit     int
}

func (m *mockPaperStore) ListByMainField(ctx context.Context, mainField string, limit int) ([]domain.PaperRow, error) {
	m.mu.Lock()
	m.mainField = mainField
	m.limit = limit
	m.mu.Unlock()
	if m.listFunc != nil {
		return m.listFunc(ctx, mainField, limit)
	}
	return nil, nil
}

// mockObjectStore is a mock implementation of the ObjectStore interface
type mockObjectStore struct {
	publicURLFunc func(ctx context.Context, path string) (string, error)
}

func (m *mockObjectStore) PublicURL(ctx context.Context, path string) (string, error) {
	if m.publicURLFunc != nil {
		return m.publicURLFunc(ctx, path)
	}
	return "https://storage.example.com/" + path, nil
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return &mockResponse{statusCode: 200, body: "<html><body></body></html>"}, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

// mockTracker records the drafts it is handed
type mockTracker struct {
	drafts []domain.TrackerDraft
	owners []*domain.User
}

func (m *mockTracker) AddEntry(ctx context.Context, draft domain.TrackerDraft, owner *domain.User) (domain.TrackerView, error) {
	m.drafts = append(m.drafts, draft)
	m.owners = append(m.owners, owner)
	return domain.NewTrackerView([]domain.TrackedPaper{{Title: draft.Title, Status: draft.Status}}), nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

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
