package audio

import (
	"context"
	"sync"
)

// mockSynthesizer is a mock implementation of the SpeechSynthesizer interface
type mockSynthesizer struct {
	synthesizeFunc func(ctx context.Context, text string) ([]byte, error)

	mu    sync.Mutex
	calls int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.synthesizeFunc != nil {
		return m.synthesizeFunc(ctx, text)
	}
	return []byte("audio:" + text), nil
}

func (m *mockSynthesizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
