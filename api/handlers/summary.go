// ABOUTME: Summary handlers for the Huma API
// ABOUTME: Open the summary of the selected paper and send it to the tracker

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/core/domain"
)

// SummaryHandler handles summary requests
type SummaryHandler struct {
	summaries SummaryService
	users     UserSource
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaries SummaryService, users UserSource) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, users: users}
}

// RegisterRoutes registers the summary routes
func (h *SummaryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSummary",
		Method:      http.MethodGet,
		Path:        "/summary",
		Summary:     "Get the open summary",
		Description: "Returns the current view, opening one for the selected paper if none is open",
		Tags:        []string{"Summary"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "openSummary",
		Method:      http.MethodPost,
		Path:        "/summary",
		Summary:     "Open the summary of the selected paper",
		Description: "Resolves the short summary and starts loading the long-form document",
		Tags:        []string{"Summary"},
	}, h.Open)

	huma.Register(api, huma.Operation{
		OperationID: "sendSummaryToTracker",
		Method:      http.MethodPost,
		Path:        "/summary/tracker",
		Summary:     "Add the open paper to the tracker",
		Tags:        []string{"Summary"},
	}, h.SendToTracker)
}

// SummaryOutput is a summary view
type SummaryOutput struct {
	Body domain.SummaryView
}

// OpenInput controls whether the call waits for the long form
type OpenInput struct {
	Wait bool `query:"wait" doc:"Wait for the long-form document before answering"`
}

// Get handles GET /summary
func (h *SummaryHandler) Get(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	view, err := h.summaries.View(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SummaryOutput{Body: view}, nil
}

// Open handles POST /summary
func (h *SummaryHandler) Open(ctx context.Context, input *OpenInput) (*SummaryOutput, error) {
	view, task, err := h.summaries.Open(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if input.Wait && task != nil {
		// the task logs its own failure; the view carries the inline message
		_ = task.Wait(ctx)
		if view, err = h.summaries.View(ctx); err != nil {
			return nil, toHumaError(err)
		}
	}
	return &SummaryOutput{Body: view}, nil
}

// SendToTracker handles POST /summary/tracker
func (h *SummaryHandler) SendToTracker(ctx context.Context, _ *struct{}) (*TrackerOutput, error) {
	user, err := currentUser(ctx, h.users)
	if err != nil {
		return nil, toHumaError(err)
	}
	view, err := h.summaries.SendToTracker(ctx, user)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}
