// ABOUTME: PDF chatbot handlers for the Huma API
// ABOUTME: Upload a PDF as multipart form data and ask questions about it

package handlers

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/requests"
	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/chatbot"
	"mowakeb-api/core/errors"
	"mowakeb-api/pkg/featureflags"
)

// ChatHandler handles chatbot requests
type ChatHandler struct {
	chat  ChatService
	flags featureflags.Manager
}

// NewChatHandler creates a new chat handler. flags may be nil.
func NewChatHandler(chat ChatService, flags featureflags.Manager) *ChatHandler {
	return &ChatHandler{chat: chat, flags: flags}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getChat",
		Method:      http.MethodGet,
		Path:        "/chat",
		Summary:     "Get the conversation",
		Tags:        []string{"Chat"},
	}, h.History)

	huma.Register(api, huma.Operation{
		OperationID: "uploadPDF",
		Method:      http.MethodPost,
		Path:        "/chat/upload",
		Summary:     "Upload a PDF to ask questions about",
		Tags:        []string{"Chat"},
	}, h.Upload)

	huma.Register(api, huma.Operation{
		OperationID: "askQuestion",
		Method:      http.MethodPost,
		Path:        "/chat/ask",
		Summary:     "Ask a question about the uploaded PDF",
		Tags:        []string{"Chat"},
	}, h.Ask)
}

// UploadInput is a multipart form with a "file" part
type UploadInput struct {
	RawBody multipart.Form
}

// UploadOutput is the upload outcome
type UploadOutput struct {
	Body responses.UploadResponse
}

// AskInput is the question body
type AskInput struct {
	Body requests.AskRequest
}

// ChatOutput is the reply and the conversation
type ChatOutput struct {
	Body responses.ChatResponse
}

// History handles GET /chat
func (h *ChatHandler) History(ctx context.Context, _ *struct{}) (*ChatOutput, error) {
	return &ChatOutput{Body: responses.ChatResponse{History: h.chat.History()}}, nil
}

// Upload handles POST /chat/upload. Upload failures are reported in the
// message with uploaded set to false.
func (h *ChatHandler) Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	if !enabled(ctx, h.flags, featureflags.Chatbot) {
		return nil, huma.Error503ServiceUnavailable("The chatbot is disabled")
	}

	files := input.RawBody.File["file"]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest(chatbot.MsgChooseFile)
	}

	file, err := files[0].Open()
	if err != nil {
		return nil, huma.Error400BadRequest(chatbot.MsgChooseFile, err)
	}
	defer file.Close()

	msg, err := h.chat.Upload(ctx, files[0].Filename, file)
	if err != nil && errors.IsValidation(err) {
		return nil, toHumaError(err)
	}
	return &UploadOutput{Body: responses.UploadResponse{Uploaded: err == nil, Message: msg}}, nil
}

// Ask handles POST /chat/ask
func (h *ChatHandler) Ask(ctx context.Context, input *AskInput) (*ChatOutput, error) {
	if !enabled(ctx, h.flags, featureflags.Chatbot) {
		return nil, huma.Error503ServiceUnavailable("The chatbot is disabled")
	}

	reply, err := h.chat.Ask(ctx, input.Body.Question)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ChatOutput{Body: responses.ChatResponse{Reply: &reply, History: h.chat.History()}}, nil
}
