// ABOUTME: Response DTOs for the Mowakeb API
// ABOUTME: Wraps domain views with the fields clients render directly

package responses

import (
	"mowakeb-api/core/audio"
	"mowakeb-api/core/chatbot"
	"mowakeb-api/core/domain"
)

// SessionResponse describes the current session
type SessionResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *domain.User `json:"user,omitempty"`
	Field    string       `json:"field" doc:"Effective field preference"`
}

// NewSessionResponse builds the response for user, which may be nil
func NewSessionResponse(user *domain.User) SessionResponse {
	return SessionResponse{
		LoggedIn: user != nil,
		User:     user,
		Field:    user.PreferredField(),
	}
}

// ResultsResponse is the five-row result list
type ResultsResponse struct {
	Heading string             `json:"heading"`
	Field   string             `json:"field"`
	Rows    []domain.ResultRow `json:"rows"`
}

// ClipInfo describes the live clip; the audio itself is served at URL
type ClipInfo struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
}

// AudioResponse is the player state plus an optional alert
type AudioResponse struct {
	State   audio.State `json:"state" doc:"Action the audio control offers next"`
	Loading bool        `json:"loading"`
	Clip    *ClipInfo   `json:"clip,omitempty"`
	Alert   string      `json:"alert,omitempty" doc:"Message to show when narration failed"`
}

// NewAudioResponse builds the response for a player status
func NewAudioResponse(status audio.Status, alert string) AudioResponse {
	resp := AudioResponse{State: status.State, Loading: status.Loading, Alert: alert}
	if status.Clip != nil {
		resp.Clip = &ClipInfo{
			ID:          status.Clip.ID,
			ContentType: status.Clip.ContentType,
			Size:        len(status.Clip.Audio),
			URL:         "/audio/clip",
		}
	}
	return resp
}

// UploadResponse reports the upload outcome
type UploadResponse struct {
	Uploaded bool   `json:"uploaded"`
	Message  string `json:"message"`
}

// ChatResponse carries the bot reply and the conversation
type ChatResponse struct {
	Reply   *chatbot.Message  `json:"reply,omitempty"`
	History []chatbot.Message `json:"history"`
}

// HealthResponse reports liveness and feature state
type HealthResponse struct {
	Status   string          `json:"status"`
	Version  string          `json:"version"`
	Features map[string]bool `json:"features"`
}
