// ABOUTME: Reading tracker handlers for the Huma API
// ABOUTME: Local-first tracker operations; remote writes happen in the background

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/requests"
	"mowakeb-api/core/domain"
)

// TrackerHandler handles tracker requests
type TrackerHandler struct {
	tracker TrackerService
	users   UserSource
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(tracker TrackerService, users UserSource) *TrackerHandler {
	return &TrackerHandler{tracker: tracker, users: users}
}

// RegisterRoutes registers the tracker routes
func (h *TrackerHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "renderTracker",
		Method:      http.MethodGet,
		Path:        "/tracker",
		Summary:     "Render the reading tracker",
		Tags:        []string{"Tracker"},
	}, h.Render)

	huma.Register(api, huma.Operation{
		OperationID: "addTrackerEntry",
		Method:      http.MethodPost,
		Path:        "/tracker",
		Summary:     "Add a paper to the tracker",
		Description: "Appends locally and, for a signed-in user, inserts the row remotely in the background",
		Tags:        []string{"Tracker"},
	}, h.Add)

	huma.Register(api, huma.Operation{
		OperationID: "reloadTracker",
		Method:      http.MethodPost,
		Path:        "/tracker/reload",
		Summary:     "Replace the local tracker with the remote rows",
		Tags:        []string{"Tracker"},
	}, h.Reload)

	huma.Register(api, huma.Operation{
		OperationID: "updateTrackerStatus",
		Method:      http.MethodPatch,
		Path:        "/tracker/{index}",
		Summary:     "Change the status of an entry",
		Tags:        []string{"Tracker"},
	}, h.UpdateStatus)

	huma.Register(api, huma.Operation{
		OperationID: "removeTrackerEntry",
		Method:      http.MethodDelete,
		Path:        "/tracker/{index}",
		Summary:     "Remove an entry",
		Tags:        []string{"Tracker"},
	}, h.Remove)
}

// TrackerOutput is the rendered tracker
type TrackerOutput struct {
	Body domain.TrackerView
}

// AddInput is the tracker form body
type AddInput struct {
	Body requests.TrackerAddRequest
}

// IndexInput addresses an entry by its position
type IndexInput struct {
	Index int `path:"index" minimum:"0" doc:"Position in the tracker"`
}

// StatusInput changes the status of an entry
type StatusInput struct {
	Index int `path:"index" minimum:"0" doc:"Position in the tracker"`
	Body  requests.TrackerStatusRequest
}

// Render handles GET /tracker
func (h *TrackerHandler) Render(ctx context.Context, _ *struct{}) (*TrackerOutput, error) {
	view, err := h.tracker.Render(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}

// Add handles POST /tracker. Entries from the form carry the user's
// preferred field and no topic.
func (h *TrackerHandler) Add(ctx context.Context, input *AddInput) (*TrackerOutput, error) {
	user, err := currentUser(ctx, h.users)
	if err != nil {
		return nil, toHumaError(err)
	}
	view, err := h.tracker.AddEntry(ctx, domain.TrackerDraft{
		Title:  input.Body.Title,
		Status: domain.Status(input.Body.Status),
		Notes:  input.Body.Notes,
		Field:  user.PreferredField(),
	}, user)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}

// Reload handles POST /tracker/reload
func (h *TrackerHandler) Reload(ctx context.Context, _ *struct{}) (*TrackerOutput, error) {
	user, err := currentUser(ctx, h.users)
	if err != nil {
		return nil, toHumaError(err)
	}
	view, err := h.tracker.Reload(ctx, user)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}

// UpdateStatus handles PATCH /tracker/{index}
func (h *TrackerHandler) UpdateStatus(ctx context.Context, input *StatusInput) (*TrackerOutput, error) {
	view, err := h.tracker.UpdateStatus(ctx, input.Index, domain.Status(input.Body.Status))
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}

// Remove handles DELETE /tracker/{index}
func (h *TrackerHandler) Remove(ctx context.Context, input *IndexInput) (*TrackerOutput, error) {
	view, err := h.tracker.RemoveEntry(ctx, input.Index)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &TrackerOutput{Body: view}, nil
}
