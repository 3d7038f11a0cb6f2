// ABOUTME: Search service records the last field/topic search and the paper picked from its results
// ABOUTME: Both are single-slot entities that each new submission overwrites

package summary

import (
	"context"
	"strings"
	"time"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
	"mowakeb-api/core/state"
)

// SearchService handles search submissions and paper selection
type SearchService struct {
	state *state.Store
	now   func() time.Time
}

// NewSearchService creates a search service
func NewSearchService(store *state.Store) *SearchService {
	return &SearchService{
		state: store,
		now:   time.Now,
	}
}

// Submit stores a new last search. An empty topic becomes domain.DefaultTopic.
func (s *SearchService) Submit(ctx context.Context, field, topic string) (domain.SearchContext, error) {
	sc := domain.NewSearchContext(field, topic, s.now().UTC())
	if err := s.state.SaveLastSearch(ctx, sc); err != nil {
		return domain.SearchContext{}, errors.WrapError(err, "failed to save search")
	}
	return sc, nil
}

// Last returns the last search, or the default AI search when none is stored
func (s *SearchService) Last(ctx context.Context) (domain.SearchContext, error) {
	sc, err := s.state.LoadLastSearch(ctx)
	if err != nil {
		return domain.SearchContext{}, errors.WrapError(err, "failed to load last search")
	}
	if sc == nil {
		return domain.SearchContext{Field: domain.FieldAI, Topic: domain.DefaultTopic}, nil
	}
	return *sc, nil
}

// Select records row, picked from the results of the last search, as the
// selected paper
func (s *SearchService) Select(ctx context.Context, row domain.ResultRow) (domain.SelectedPaper, error) {
	if strings.TrimSpace(row.Title) == "" {
		return domain.SelectedPaper{}, &errors.ValidationError{Field: "title", Message: "title cannot be empty"}
	}

	last, err := s.Last(ctx)
	if err != nil {
		return domain.SelectedPaper{}, err
	}

	sel := domain.NewSelectedPaper(row, last.Field)
	if err := s.state.SaveSelectedPaper(ctx, sel); err != nil {
		return domain.SelectedPaper{}, errors.WrapError(err, "failed to save selected paper")
	}
	return sel, nil
}
