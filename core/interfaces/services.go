// ABOUTME: Service interfaces for external collaborators and the core services
// ABOUTME: Defines contracts used by handlers and by the audio and chatbot services

package interfaces

import (
	"context"
	"io"
)

// SpeechSynthesizer turns text into encoded audio bytes. A non-2xx answer
// is reported as an ExternalAPIError.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ChatbotClient talks to the PDF chatbot backend
type ChatbotClient interface {
	// Upload sends a PDF to be indexed
	Upload(ctx context.Context, filename string, file io.Reader) error

	// Ask posts a question and returns the raw response body. A non-2xx
	// answer is reported as an ExternalAPIError.
	Ask(ctx context.Context, question string) (string, error)
}
