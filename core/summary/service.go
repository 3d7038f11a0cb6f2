// ABOUTME: Summary service resolves the summary view of the selected paper
// ABOUTME: Short text is resolved synchronously; the long-form document loads in the background

package summary

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/core/state"
	"mowakeb-api/core/workers"
	"mowakeb-api/pkg/utils/html"
)

// Inline messages shown in place of the long-form document
const (
	MsgLongFormMissing     = "The detailed summary for this paper is not available yet."
	MsgObjectStoreMissing  = "Cannot load the full summary right now. Please try again later."
	MsgPublicURLFailed     = "Could not load the full summary for this paper."
	MsgDocumentFetchFailed = "Could not fetch the full summary. Please try again later."
	MsgLongFormUnexpected  = "Unexpected error while loading the summary. Please try again."
)

// TrackerNote is the note attached to papers sent from a summary view
const TrackerNote = "Added from summary page."

// maxDocumentBytes bounds the size of a fetched long-form document
const maxDocumentBytes = 5 << 20

// Dispatcher submits background work
type Dispatcher interface {
	Submit(name string, fn workers.TaskFunc) *workers.Task
}

// TrackerAdder adds entries to the reading tracker
type TrackerAdder interface {
	AddEntry(ctx context.Context, draft domain.TrackerDraft, owner *domain.User) (domain.TrackerView, error)
}

// Config holds the collaborators of a summary service. Objects, HTTPClient,
// Dispatcher and Tracker may be nil.
type Config struct {
	State      *state.Store
	Catalog    *Catalog
	Objects    interfaces.ObjectStore
	HTTPClient interfaces.HTTPClient
	Dispatcher Dispatcher
	Tracker    TrackerAdder
	Logger     interfaces.Logger

	// LongFormEnabled, when set, is consulted on every open
	LongFormEnabled func(ctx context.Context) bool
}

// Service owns the summary view currently open on the device
type Service struct {
	state      *state.Store
	catalog    *Catalog
	objects    interfaces.ObjectStore
	http       interfaces.HTTPClient
	dispatcher Dispatcher
	tracker    TrackerAdder
	logger     interfaces.Logger
	enabled    func(ctx context.Context) bool

	mu         sync.Mutex
	current    *domain.SummaryView
	source     source
	generation uint64
}

// source is the local state a view was resolved from
type source struct {
	search   *domain.SearchContext
	selected *domain.SelectedPaper
}

func (s *Service) loadSource(ctx context.Context) (source, error) {
	search, err := s.state.LoadLastSearch(ctx)
	if err != nil {
		return source{}, errors.WrapError(err, "failed to load last search")
	}
	selected, err := s.state.LoadSelectedPaper(ctx)
	if err != nil {
		return source{}, errors.WrapError(err, "failed to load selected paper")
	}
	return source{search: search, selected: selected}, nil
}

// NewService creates a summary service
func NewService(cfg Config) *Service {
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{
		state:      cfg.State,
		catalog:    catalog,
		objects:    cfg.Objects,
		http:       cfg.HTTPClient,
		dispatcher: cfg.Dispatcher,
		tracker:    cfg.Tracker,
		logger:     cfg.Logger,
		enabled:    cfg.LongFormEnabled,
	}
}

// Open resolves a fresh view for the selected paper and starts loading its
// long-form document. The returned task completes when the long form is
// applied; it is nil when no fetch was started. A view opened later
// discards the long form of an earlier one.
func (s *Service) Open(ctx context.Context) (domain.SummaryView, *workers.Task, error) {
	src, err := s.loadSource(ctx)
	if err != nil {
		return domain.SummaryView{}, nil, err
	}
	view, task := s.open(ctx, src)
	return view, task, nil
}

func (s *Service) open(ctx context.Context, src source) (domain.SummaryView, *workers.Task) {
	view, path := s.resolve(ctx, src)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	current := view
	s.current = &current
	s.source = src
	s.mu.Unlock()

	if view.LongForm.Status != domain.LongFormPending {
		return view, nil
	}

	load := func(ctx context.Context) error {
		lf, narration, err := s.loadLongForm(ctx, path)
		s.apply(gen, lf, narration)
		return err
	}

	if s.dispatcher == nil {
		_ = load(ctx)
		return s.snapshot(), nil
	}
	return view, s.dispatcher.Submit("summary.longform", load)
}

// View returns the open view. A new view is opened when none is, or when
// the last search or the selected paper changed since it was opened.
func (s *Service) View(ctx context.Context) (domain.SummaryView, error) {
	src, err := s.loadSource(ctx)
	if err != nil {
		return domain.SummaryView{}, err
	}

	s.mu.Lock()
	if s.current != nil && reflect.DeepEqual(s.source, src) {
		view := *s.current
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	view, _ := s.open(ctx, src)
	return view, nil
}

// NarrationText is the text audio playback reads for the open view
func (s *Service) NarrationText(ctx context.Context) (string, error) {
	view, err := s.View(ctx)
	if err != nil {
		return "", err
	}
	return view.NarrationText, nil
}

// SendToTracker adds the open view's paper to the tracker with status
// to-read, the view's topic and field and a fixed note
func (s *Service) SendToTracker(ctx context.Context, owner *domain.User) (domain.TrackerView, error) {
	if s.tracker == nil {
		return domain.TrackerView{}, &errors.RemoteUnavailableError{Service: "tracker"}
	}

	view, err := s.View(ctx)
	if err != nil {
		return domain.TrackerView{}, err
	}
	return s.tracker.AddEntry(ctx, domain.TrackerDraft{
		Title:  view.Title,
		Status: domain.StatusToRead,
		Notes:  TrackerNote,
		Topic:  view.Topic,
		Field:  view.Field,
	}, owner)
}

// resolve builds the view from src and the catalog. The long form is
// pending when a document path is known and an object store exists.
func (s *Service) resolve(ctx context.Context, src source) (domain.SummaryView, string) {
	field := domain.FieldAI
	topic := domain.DefaultTopic
	if last := src.search; last != nil {
		field = last.Field
		topic = last.Topic
	}

	var title, path, pdfURL, published string
	if sel := src.selected; sel != nil {
		title = strings.TrimSpace(sel.Title)
		if sel.Topic != "" {
			topic = sel.Topic
		}
		if sel.Field != "" {
			field = sel.Field
		}
		path = domain.Deref(sel.StoredHTMLPath)
		pdfURL = domain.Deref(sel.PDFURL)
		published = domain.Deref(sel.PublishedAt)
	}
	if title == "" {
		title = s.catalog.FirstTitle(field)
	}

	short := s.catalog.ShortText(field, title)
	view := domain.SummaryView{
		Title:          title,
		Topic:          topic,
		Field:          field,
		CanonicalField: domain.NormalizeField(field),
		ShortText:      short,
		NarrationText:  short,
		PublishedLabel: domain.PublishedLabel(published),
		PDFURL:         pdfURL,
		LongForm:       domain.LongForm{Status: domain.LongFormPending},
	}

	switch {
	case path == "":
		view.LongForm = domain.LongForm{Status: domain.LongFormUnavailable, Message: MsgLongFormMissing}
	case s.objects == nil || s.http == nil || (s.enabled != nil && !s.enabled(ctx)):
		view.LongForm = domain.LongForm{Status: domain.LongFormUnavailable, Message: MsgObjectStoreMissing}
	}
	return view, path
}

// loadLongForm fetches and extracts the document at path. On failure the
// returned long form carries the inline message and the error is non-nil.
func (s *Service) loadLongForm(ctx context.Context, path string) (domain.LongForm, string, error) {
	failed := func(msg string, err error) (domain.LongForm, string, error) {
		return domain.LongForm{Status: domain.LongFormFailed, Message: msg}, "", err
	}

	url, err := s.objects.PublicURL(ctx, path)
	if err != nil {
		return failed(MsgPublicURLFailed, errors.WrapError(err, "failed to resolve summary URL"))
	}
	if url == "" {
		return failed(MsgPublicURLFailed, fmt.Errorf("no public URL for %s", path))
	}

	resp, err := s.http.Get(ctx, url)
	if err != nil {
		return failed(MsgLongFormUnexpected, errors.WrapError(err, "failed to fetch summary document"))
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return failed(MsgDocumentFetchFailed, &errors.ExternalAPIError{
			API:        "object store",
			StatusCode: resp.StatusCode(),
			Message:    "summary document fetch failed",
		})
	}

	extract, err := ExtractIntroduction(io.LimitReader(resp.Body(), maxDocumentBytes))
	if err != nil {
		return failed(MsgLongFormUnexpected, err)
	}

	s.logger.Debug("Loaded long-form summary", map[string]interface{}{
		"path":  path,
		"chars": len(extract.Text),
	})

	narration := ""
	if extract.Text != "" {
		narration = html.Truncate(extract.Text, domain.MaxNarrationChars)
	}
	return domain.LongForm{Status: domain.LongFormReady, HTML: extract.HTML}, narration, nil
}

// apply stores a loaded long form on the view of generation gen
func (s *Service) apply(gen uint64, lf domain.LongForm, narration string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || gen != s.generation {
		s.logger.Debug("Discarding long-form summary of a closed view", map[string]interface{}{
			"generation": gen,
		})
		return
	}

	s.current.LongForm = lf
	if narration != "" {
		s.current.NarrationText = narration
	}
}

func (s *Service) snapshot() domain.SummaryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.current
}
