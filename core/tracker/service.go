// ABOUTME: Tracker service keeps the local reading list in sync with the remote tracker table
// ABOUTME: Local mutations always win; remote calls are best-effort and never rolled back

package tracker

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/core/state"
	"mowakeb-api/core/workers"
)

// Dispatcher submits remote calls for background execution
type Dispatcher interface {
	Submit(name string, fn workers.TaskFunc) *workers.Task
}

// Service owns the tracker list of the device
type Service struct {
	state      *state.Store
	remote     interfaces.TrackerStore
	dispatcher Dispatcher
	logger     interfaces.Logger
	now        func() time.Time

	// mu serialises read-modify-write cycles on the local cache. It is never
	// held across a remote call.
	mu sync.Mutex
}

// NewService creates a tracker service. remote may be nil, in which case the
// tracker works locally only.
func NewService(store *state.Store, remote interfaces.TrackerStore, dispatcher Dispatcher, logger interfaces.Logger) *Service {
	return &Service{
		state:      store,
		remote:     remote,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Render returns the tracker view of the current local cache
func (s *Service) Render(ctx context.Context) (domain.TrackerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.loadFavorites(ctx)
	if err != nil {
		return domain.TrackerView{}, err
	}
	return domain.NewTrackerView(favs), nil
}

// loadFavorites reads the local cache. A failed read must abort the caller
// so a partial list is never written back.
func (s *Service) loadFavorites(ctx context.Context) ([]domain.TrackedPaper, error) {
	favs, err := s.state.LoadFavorites(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to load tracker")
	}
	return favs, nil
}

// AddEntry appends draft to the local cache and, for an authenticated owner,
// submits a remote insert. The remote id is not written back; only Reload
// attaches ids.
func (s *Service) AddEntry(ctx context.Context, draft domain.TrackerDraft, owner *domain.User) (domain.TrackerView, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return domain.TrackerView{}, &errors.ValidationError{Field: "title", Message: "title cannot be empty"}
	}

	status := draft.Status
	if status == "" {
		status = domain.StatusToRead
	}
	if !status.Valid() {
		return domain.TrackerView{}, &errors.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}

	entry := domain.TrackedPaper{
		Title:  title,
		Status: status,
		Notes:  strings.TrimSpace(draft.Notes),
		Topic:  draft.Topic,
		Field:  draft.Field,
	}

	s.mu.Lock()
	favs, err := s.loadFavorites(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.TrackerView{}, err
	}
	favs = append(favs, entry)
	if err := s.state.SaveFavorites(ctx, favs); err != nil {
		s.mu.Unlock()
		return domain.TrackerView{}, errors.WrapError(err, "failed to save tracker entry")
	}
	view := domain.NewTrackerView(favs)
	s.mu.Unlock()

	if owner.IsOwner() {
		row := domain.TrackerRow{
			OwnerEmail: owner.Email,
			AuthUserID: owner.ID,
			PaperTitle: entry.Title,
			Topic:      entry.Topic,
			Field:      entry.Field,
			Status:     entry.Status,
			Notes:      entry.Notes,
		}
		s.submitRemote("tracker.insert", func(ctx context.Context) error {
			id, err := s.remote.Insert(ctx, row)
			if err == nil {
				s.logger.Info("Inserted tracker entry", map[string]interface{}{
					"id":    id,
					"owner": row.OwnerEmail,
				})
			}
			return err
		})
	}

	return view, nil
}

// UpdateStatus changes the status of the entry at index. Entries with a
// remote id are also updated remotely; a remote failure keeps the local value.
func (s *Service) UpdateStatus(ctx context.Context, index int, status domain.Status) (domain.TrackerView, error) {
	if !status.Valid() {
		return domain.TrackerView{}, &errors.ValidationError{Field: "status", Message: "unknown status " + string(status)}
	}

	s.mu.Lock()
	favs, err := s.loadFavorites(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.TrackerView{}, err
	}
	if index < 0 || index >= len(favs) {
		s.mu.Unlock()
		return domain.TrackerView{}, &errors.NotFoundError{Resource: "tracker entry", ID: strconv.Itoa(index)}
	}

	favs[index].Status = status
	if err := s.state.SaveFavorites(ctx, favs); err != nil {
		s.mu.Unlock()
		return domain.TrackerView{}, errors.WrapError(err, "failed to save tracker status")
	}
	entry := favs[index]
	view := domain.NewTrackerView(favs)
	s.mu.Unlock()

	if entry.HasRemoteID() {
		updatedAt := s.now()
		s.submitRemote("tracker.update", func(ctx context.Context) error {
			return s.remote.UpdateStatus(ctx, entry.ID, status, updatedAt)
		})
	}

	return view, nil
}

// RemoveEntry deletes the entry at index. A remote delete, when the entry has
// an id, completes before the local list is recomputed; the local removal
// happens whatever its outcome, even when ctx ends while waiting.
func (s *Service) RemoveEntry(ctx context.Context, index int) (domain.TrackerView, error) {
	s.mu.Lock()
	favs, err := s.loadFavorites(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.TrackerView{}, err
	}
	if index < 0 || index >= len(favs) {
		s.mu.Unlock()
		return domain.TrackerView{}, &errors.NotFoundError{Resource: "tracker entry", ID: strconv.Itoa(index)}
	}
	entry := favs[index]
	s.mu.Unlock()

	// Once the remote delete is submitted the local entry has to go too
	detached := context.WithoutCancel(ctx)

	if entry.HasRemoteID() {
		if task := s.submitRemote("tracker.delete", func(ctx context.Context) error {
			return s.remote.Delete(ctx, entry.ID)
		}); task != nil {
			// The failure, if any, is already logged by the dispatcher
			_ = task.Wait(detached)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err = s.loadFavorites(detached)
	if err != nil {
		return domain.TrackerView{}, err
	}
	if i := locate(favs, entry, index); i >= 0 {
		favs = append(favs[:i], favs[i+1:]...)
		if err := s.state.SaveFavorites(detached, favs); err != nil {
			return domain.TrackerView{}, errors.WrapError(err, "failed to save tracker after removal")
		}
	}

	return domain.NewTrackerView(favs), nil
}

// locate finds entry in favs, preferring position hint. Entries are matched
// by remote id when they have one, by content otherwise. It returns -1 when
// the entry is gone.
func locate(favs []domain.TrackedPaper, entry domain.TrackedPaper, hint int) int {
	same := func(p domain.TrackedPaper) bool {
		if entry.HasRemoteID() {
			return p.ID == entry.ID
		}
		return p == entry
	}

	if hint >= 0 && hint < len(favs) && same(favs[hint]) {
		return hint
	}
	for i, p := range favs {
		if same(p) {
			return i
		}
	}
	return -1
}

// Reload replaces the local cache with the owner's remote rows, newest
// first. Guests get the local cache unchanged. Entries added locally but not
// yet persisted remotely are dropped by a successful reload. A failed fetch
// leaves the local cache untouched.
func (s *Service) Reload(ctx context.Context, owner *domain.User) (domain.TrackerView, error) {
	if !owner.IsOwner() {
		return s.Render(ctx)
	}
	if s.remote == nil {
		s.logger.Warn("Tracker remote store not configured, rendering local cache", nil)
		return s.Render(ctx)
	}

	rows, err := s.remote.ListByOwner(ctx, owner.Email)
	if err != nil {
		s.logger.Error("Error loading tracker entries", map[string]interface{}{
			"owner": owner.Email,
			"error": err.Error(),
		})
		return s.Render(ctx)
	}

	favs := make([]domain.TrackedPaper, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, row.ToTrackedPaper())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.SaveFavorites(ctx, favs); err != nil {
		return domain.TrackerView{}, errors.WrapError(err, "failed to save reloaded tracker")
	}

	s.logger.Info("Tracker reloaded", map[string]interface{}{
		"owner":   owner.Email,
		"entries": len(favs),
	})

	return domain.NewTrackerView(favs), nil
}

// submitRemote hands fn to the dispatcher. Without a remote store nothing is
// submitted and nil is returned.
func (s *Service) submitRemote(name string, fn workers.TaskFunc) *workers.Task {
	if s.remote == nil || s.dispatcher == nil {
		s.logger.Debug("Skipping remote tracker call, no remote store", map[string]interface{}{
			"task": name,
		})
		return nil
	}
	return s.dispatcher.Submit(name, fn)
}
