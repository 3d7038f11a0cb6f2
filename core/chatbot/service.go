// ABOUTME: Chatbot service lets a user upload a PDF and ask questions about it
// ABOUTME: Turns collaborator failures into the messages shown in the conversation

package chatbot

import (
	"context"
	"io"
	"strings"
	"sync"

	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
)

// Messages shown to the user
const (
	MsgUploadFirst    = "Please upload a PDF first."
	MsgChooseFile     = "Please choose a PDF file first."
	MsgUploaded       = "PDF uploaded. You can start asking questions."
	MsgUploadFailed   = "Error uploading PDF. Please try again later."
	MsgServerError    = "Error from server while answering your question. Please try again."
	MsgContactFailure = "Error while contacting the chatbot. Please try again later."
)

// Sender identifies who wrote a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one line of the conversation
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Service holds the conversation of one device
type Service struct {
	client     interfaces.ChatbotClient
	logger     interfaces.Logger
	extractors []Extractor

	mu       sync.Mutex
	uploaded bool
	history  []Message
}

// NewService creates a chatbot service
func NewService(client interfaces.ChatbotClient, logger interfaces.Logger) *Service {
	return &Service{
		client:     client,
		logger:     logger,
		extractors: DefaultExtractors,
	}
}

// Upload sends a PDF to the chatbot. It returns the status line to display;
// the error is non-nil when the upload did not succeed.
func (s *Service) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if file == nil || strings.TrimSpace(filename) == "" {
		return MsgChooseFile, &errors.ValidationError{Field: "file", Message: MsgChooseFile}
	}
	if s.client == nil {
		s.setUploaded(false)
		return MsgUploadFailed, &errors.RemoteUnavailableError{Service: "chatbot"}
	}

	if err := s.client.Upload(ctx, filename, file); err != nil {
		s.logger.Error("Error uploading PDF", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		s.setUploaded(false)
		return MsgUploadFailed, err
	}

	s.setUploaded(true)
	s.logger.Info("PDF uploaded", map[string]interface{}{
		"filename": filename,
	})
	return MsgUploaded, nil
}

// Ask posts question and returns the bot's reply. An empty question is
// ignored. Asking before an upload is rejected with a ValidationError.
// Collaborator failures become bot messages, never errors.
func (s *Service) Ask(ctx context.Context, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, &errors.ValidationError{Field: "question", Message: "question cannot be empty"}
	}

	s.mu.Lock()
	uploaded := s.uploaded
	s.mu.Unlock()
	if !uploaded {
		return Message{}, &errors.ValidationError{Field: "question", Message: MsgUploadFirst}
	}

	s.append(Message{Sender: SenderUser, Text: question})

	reply := Message{Sender: SenderBot}
	raw, err := s.client.Ask(ctx, question)
	switch {
	case err != nil && errors.IsExternalAPI(err):
		s.logger.Error("Chatbot returned an error", map[string]interface{}{
			"status": errors.StatusCode(err),
			"error":  err.Error(),
		})
		reply.Text = MsgServerError
	case err != nil:
		s.logger.Error("Ask error", map[string]interface{}{
			"error": err.Error(),
		})
		reply.Text = MsgContactFailure
	default:
		reply.Text = ExtractAnswer(raw, s.extractors)
	}

	s.append(reply)
	return reply, nil
}

// History returns the conversation so far
func (s *Service) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Message, len(s.history))
	copy(history, s.history)
	return history
}

// Uploaded reports whether a PDF has been uploaded successfully
func (s *Service) Uploaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploaded
}

func (s *Service) setUploaded(v bool) {
	s.mu.Lock()
	s.uploaded = v
	s.mu.Unlock()
}

func (s *Service) append(m Message) {
	s.mu.Lock()
	s.history = append(s.history, m)
	s.mu.Unlock()
}
