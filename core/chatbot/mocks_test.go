package chatbot

import (
	"context"
	"io"
)

// mockClient is a mock implementation of the ChatbotClient interface
type mockClient struct {
	uploadFunc func(ctx context.Context, filename string, file io.Reader) error
	askFunc    func(ctx context.Context, question string) (string, error)

	questions []string
}

func (m *mockClient) Upload(ctx context.Context, filename string, file io.Reader) error {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, filename, file)
	}
	return nil
}

func (m *mockClient) Ask(ctx context.Context, question string) (string, error) {
	m.questions = append(m.questions, question)
	if m.askFunc != nil {
		return m.askFunc(ctx, question)
	}
	return `{"answer":"ok"}`, nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
