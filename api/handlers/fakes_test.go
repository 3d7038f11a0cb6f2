package handlers

import (
	"context"
	"io"
	"time"

	"mowakeb-api/core/audio"
	"mowakeb-api/core/chatbot"
	"mowakeb-api/core/domain"
	"mowakeb-api/core/summary"
	"mowakeb-api/core/workers"
)

type fakeSessions struct {
	user     *domain.User
	signIn   domain.User
	err      error
	readErr  error
	signOuts int
}

func (f *fakeSessions) Current(context.Context) (*domain.User, error) { return f.user, f.readErr }

func (f *fakeSessions) SignIn(_ context.Context, user domain.User) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	f.signIn = user
	f.user = &user
	return user, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.signOuts++
	f.user = nil
	return f.err
}

func (f *fakeSessions) SetField(_ context.Context, field string) (domain.User, error) {
	if f.user == nil {
		f.user = &domain.User{Name: "Researcher"}
	}
	f.user.Field = field
	return *f.user, f.err
}

type fakeTracker struct {
	view    domain.TrackerView
	err     error
	draft   domain.TrackerDraft
	owner   *domain.User
	index   int
	status  domain.Status
	reloads int
	readErr error
}

func (f *fakeTracker) Render(context.Context) (domain.TrackerView, error) {
	if f.readErr != nil {
		return domain.TrackerView{}, f.readErr
	}
	return f.view, nil
}

func (f *fakeTracker) AddEntry(_ context.Context, draft domain.TrackerDraft, owner *domain.User) (domain.TrackerView, error) {
	f.draft = draft
	f.owner = owner
	return f.view, f.err
}

func (f *fakeTracker) UpdateStatus(_ context.Context, index int, status domain.Status) (domain.TrackerView, error) {
	f.index = index
	f.status = status
	return f.view, f.err
}

func (f *fakeTracker) RemoveEntry(_ context.Context, index int) (domain.TrackerView, error) {
	f.index = index
	return f.view, f.err
}

func (f *fakeTracker) Reload(_ context.Context, owner *domain.User) (domain.TrackerView, error) {
	f.reloads++
	f.owner = owner
	return f.view, f.err
}

type fakeSearch struct {
	last     domain.SearchContext
	selected domain.ResultRow
	err      error
	readErr  error
}

func (f *fakeSearch) Submit(_ context.Context, field, topic string) (domain.SearchContext, error) {
	f.last = domain.SearchContext{Field: field, Topic: topic}
	return f.last, f.err
}

func (f *fakeSearch) Last(context.Context) (domain.SearchContext, error) { return f.last, f.readErr }

func (f *fakeSearch) Select(_ context.Context, row domain.ResultRow) (domain.SelectedPaper, error) {
	f.selected = row
	return domain.SelectedPaper{Title: row.Title, Field: f.last.Field}, f.err
}

type fakeResults struct {
	field string
}

func (f *fakeResults) Load(_ context.Context, field string) summary.ResultList {
	f.field = field
	return summary.ResultList{
		Heading: "Top papers in " + field,
		Field:   field,
		Rows:    []domain.ResultRow{{Title: "Paper A"}},
	}
}

type fakeSummary struct {
	opened    domain.SummaryView
	view      domain.SummaryView
	task      *workers.Task
	narration string
	err       error
	readErr   error
	owner     *domain.User
}

func (f *fakeSummary) Open(context.Context) (domain.SummaryView, *workers.Task, error) {
	return f.opened, f.task, f.readErr
}

func (f *fakeSummary) View(context.Context) (domain.SummaryView, error) { return f.view, f.readErr }

func (f *fakeSummary) NarrationText(context.Context) (string, error) { return f.narration, f.readErr }

func (f *fakeSummary) SendToTracker(_ context.Context, owner *domain.User) (domain.TrackerView, error) {
	f.owner = owner
	return domain.TrackerView{}, f.err
}

type fakePlayer struct {
	status audio.Status
	err    error
	text   string
	clipID string
}

func (f *fakePlayer) Status() audio.Status { return f.status }

func (f *fakePlayer) Toggle(_ context.Context, text string) (audio.Status, error) {
	f.text = text
	return f.status, f.err
}

func (f *fakePlayer) Finished(clipID string) audio.Status {
	f.clipID = clipID
	return f.status
}

func (f *fakePlayer) Stop() audio.Status { return f.status }

type fakeChat struct {
	history  []chatbot.Message
	uploaded bool
	filename string
	content  string
	msg      string
	err      error
}

func (f *fakeChat) Upload(_ context.Context, filename string, file io.Reader) (string, error) {
	data, _ := io.ReadAll(file)
	f.filename = filename
	f.content = string(data)
	f.uploaded = f.err == nil
	return f.msg, f.err
}

func (f *fakeChat) Ask(_ context.Context, question string) (chatbot.Message, error) {
	if f.err != nil {
		return chatbot.Message{}, f.err
	}
	reply := chatbot.Message{Sender: chatbot.SenderBot, Text: "answer to " + question}
	f.history = append(f.history,
		chatbot.Message{Sender: chatbot.SenderUser, Text: question}, reply)
	return reply, nil
}

func (f *fakeChat) History() []chatbot.Message { return f.history }

func (f *fakeChat) Uploaded() bool { return f.uploaded }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// failingTrackerStore fails every remote call with err
type failingTrackerStore struct {
	err   error
	lists int
}

func (f *failingTrackerStore) Insert(context.Context, domain.TrackerRow) (string, error) {
	return "", f.err
}

func (f *failingTrackerStore) ListByOwner(context.Context, string) ([]domain.TrackerRow, error) {
	f.lists++
	return nil, f.err
}

func (f *failingTrackerStore) UpdateStatus(context.Context, string, domain.Status, time.Time) error {
	return f.err
}

func (f *failingTrackerStore) Delete(context.Context, string) error {
	return f.err
}
