// ABOUTME: Audio narration handlers for the Huma API
// ABOUTME: Toggle playback of the open summary and serve the synthesized clip

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/requests"
	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/audio"
	"mowakeb-api/core/errors"
	"mowakeb-api/pkg/featureflags"
)

// AudioHandler handles narration requests
type AudioHandler struct {
	player    AudioPlayer
	summaries SummaryService
	flags     featureflags.Manager
}

// NewAudioHandler creates a new audio handler. flags may be nil.
func NewAudioHandler(player AudioPlayer, summaries SummaryService, flags featureflags.Manager) *AudioHandler {
	return &AudioHandler{player: player, summaries: summaries, flags: flags}
}

// RegisterRoutes registers the audio routes
func (h *AudioHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getAudioStatus",
		Method:      http.MethodGet,
		Path:        "/audio",
		Summary:     "Get the player state",
		Tags:        []string{"Audio"},
	}, h.Status)

	huma.Register(api, huma.Operation{
		OperationID: "toggleAudio",
		Method:      http.MethodPost,
		Path:        "/audio/toggle",
		Summary:     "Play or stop narration of the open summary",
		Tags:        []string{"Audio"},
	}, h.Toggle)

	huma.Register(api, huma.Operation{
		OperationID: "audioFinished",
		Method:      http.MethodPost,
		Path:        "/audio/finished",
		Summary:     "Report that the clip played to its end",
		Tags:        []string{"Audio"},
	}, h.Finished)

	huma.Register(api, huma.Operation{
		OperationID: "getAudioClip",
		Method:      http.MethodGet,
		Path:        "/audio/clip",
		Summary:     "Download the live clip",
		Tags:        []string{"Audio"},
	}, h.Clip)
}

// AudioOutput is the player state
type AudioOutput struct {
	Body responses.AudioResponse
}

// FinishedInput names the finished clip
type FinishedInput struct {
	Body requests.AudioFinishedRequest
}

// ClipOutput is the raw audio of the live clip
type ClipOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Status handles GET /audio
func (h *AudioHandler) Status(ctx context.Context, _ *struct{}) (*AudioOutput, error) {
	return &AudioOutput{Body: responses.NewAudioResponse(h.player.Status(), "")}, nil
}

// Toggle handles POST /audio/toggle. A synthesis failure is reported in
// the alert field with the player back in the play state.
func (h *AudioHandler) Toggle(ctx context.Context, _ *struct{}) (*AudioOutput, error) {
	if !enabled(ctx, h.flags, featureflags.Audio) {
		return nil, huma.Error503ServiceUnavailable("Audio narration is disabled")
	}

	text, err := h.summaries.NarrationText(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	status, err := h.player.Toggle(ctx, text)
	if err != nil {
		return &AudioOutput{Body: responses.NewAudioResponse(status, errors.UserMessage(err, audio.AlertMessage))}, nil
	}
	return &AudioOutput{Body: responses.NewAudioResponse(status, "")}, nil
}

// Finished handles POST /audio/finished
func (h *AudioHandler) Finished(ctx context.Context, input *FinishedInput) (*AudioOutput, error) {
	return &AudioOutput{Body: responses.NewAudioResponse(h.player.Finished(input.Body.ClipID), "")}, nil
}

// Clip handles GET /audio/clip
func (h *AudioHandler) Clip(ctx context.Context, _ *struct{}) (*ClipOutput, error) {
	clip := h.player.Status().Clip
	if clip == nil {
		return nil, huma.Error404NotFound("No clip is playing")
	}
	return &ClipOutput{ContentType: clip.ContentType, Body: clip.Audio}, nil
}
