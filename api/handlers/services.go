// ABOUTME: Service contracts the API handlers depend on
// ABOUTME: Implemented by the core services and by test fakes

package handlers

import (
	"context"
	"io"

	"mowakeb-api/core/audio"
	"mowakeb-api/core/chatbot"
	"mowakeb-api/core/domain"
	"mowakeb-api/core/summary"
	"mowakeb-api/core/workers"
	"mowakeb-api/pkg/featureflags"
)

// SessionService manages the local user record
type SessionService interface {
	Current(ctx context.Context) (*domain.User, error)
	SignIn(ctx context.Context, user domain.User) (domain.User, error)
	SignOut(ctx context.Context) error
	SetField(ctx context.Context, field string) (domain.User, error)
}

// UserSource resolves the tracker owner of a request
type UserSource interface {
	Current(ctx context.Context) (*domain.User, error)
}

// TrackerService reconciles the reading tracker
type TrackerService interface {
	Render(ctx context.Context) (domain.TrackerView, error)
	AddEntry(ctx context.Context, draft domain.TrackerDraft, owner *domain.User) (domain.TrackerView, error)
	UpdateStatus(ctx context.Context, index int, status domain.Status) (domain.TrackerView, error)
	RemoveEntry(ctx context.Context, index int) (domain.TrackerView, error)
	Reload(ctx context.Context, owner *domain.User) (domain.TrackerView, error)
}

// SearchService stores the last search and the selected paper
type SearchService interface {
	Submit(ctx context.Context, field, topic string) (domain.SearchContext, error)
	Last(ctx context.Context) (domain.SearchContext, error)
	Select(ctx context.Context, row domain.ResultRow) (domain.SelectedPaper, error)
}

// ResultsService loads the result list of a field
type ResultsService interface {
	Load(ctx context.Context, fieldLabel string) summary.ResultList
}

// SummaryService resolves the summary of the selected paper
type SummaryService interface {
	Open(ctx context.Context) (domain.SummaryView, *workers.Task, error)
	View(ctx context.Context) (domain.SummaryView, error)
	NarrationText(ctx context.Context) (string, error)
	SendToTracker(ctx context.Context, owner *domain.User) (domain.TrackerView, error)
}

// AudioPlayer narrates summaries
type AudioPlayer interface {
	Status() audio.Status
	Toggle(ctx context.Context, text string) (audio.Status, error)
	Finished(clipID string) audio.Status
	Stop() audio.Status
}

// ChatService talks to the PDF chatbot
type ChatService interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	Ask(ctx context.Context, question string) (chatbot.Message, error)
	History() []chatbot.Message
	Uploaded() bool
}

// enabled reports whether flag is on. A nil manager enables everything.
func enabled(ctx context.Context, flags featureflags.Manager, flag featureflags.FeatureFlag) bool {
	return flags == nil || flags.IsEnabled(ctx, flag)
}

// currentUser returns the signed-in user, or nil when there is none
func currentUser(ctx context.Context, users UserSource) (*domain.User, error) {
	if users == nil {
		return nil, nil
	}
	return users.Current(ctx)
}
