package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "rows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTrackerRows_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := base
	newer := base.Add(time.Hour)
	idOld, err := s.Insert(ctx, domain.TrackerRow{
		OwnerEmail: "reader@example.com", PaperTitle: "Older", Field: "AI", CreatedAt: &older,
	})
	require.NoError(t, err)
	idNew, err := s.Insert(ctx, domain.TrackerRow{
		OwnerEmail: "reader@example.com", PaperTitle: "Newer", Status: domain.StatusDone,
		Notes: "keep", CreatedAt: &newer,
	})
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.TrackerRow{OwnerEmail: "other@example.com", PaperTitle: "Other"})
	require.NoError(t, err)
	assert.NotEqual(t, idOld, idNew)

	rows, err := s.ListByOwner(ctx, "reader@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Newer", rows[0].PaperTitle)
	assert.Equal(t, "keep", rows[0].Notes)
	assert.Equal(t, "Older", rows[1].PaperTitle)
	assert.Equal(t, domain.StatusToRead, rows[1].Status)
	assert.Equal(t, "AI", rows[1].Field)
	assert.Nil(t, rows[1].UpdatedAt)

	at := base.Add(2 * time.Hour)
	require.NoError(t, s.UpdateStatus(ctx, idOld, domain.StatusInProgress, at))
	rows, err = s.ListByOwner(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, rows[1].Status)
	require.NotNil(t, rows[1].UpdatedAt)
	assert.True(t, at.Equal(*rows[1].UpdatedAt))

	require.NoError(t, s.Delete(ctx, idNew))
	rows, err = s.ListByOwner(ctx, "reader@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, idOld, rows[0].ID)
}

func TestTrackerRows_MissingID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.True(t, errors.IsNotFound(s.Delete(ctx, "nope")))
	assert.True(t, errors.IsNotFound(s.UpdateStatus(ctx, "nope", domain.StatusDone, time.Now())))
}

func TestTrackerRows_RejectsEmptyTitle(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Insert(context.Background(), domain.TrackerRow{OwnerEmail: "a@b.c", PaperTitle: " "})
	assert.True(t, errors.IsValidation(err))
}

func TestPapers_ListByMainField(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, title := range []string{"Jan", "Mar", "Feb"} {
		published := time.Date(2024, time.Month([]int{1, 3, 2}[i]), 1, 0, 0, 0, 0, time.UTC)
		_, err := s.AddPaper(ctx, domain.PaperRow{
			Title: title, MainField: "Physics", PublishedAt: &published,
		})
		require.NoError(t, err)
	}
	_, err := s.AddPaper(ctx, domain.PaperRow{Title: "Undated", MainField: "Physics"})
	require.NoError(t, err)
	_, err = s.AddPaper(ctx, domain.PaperRow{Title: "Elsewhere", MainField: "Biology"})
	require.NoError(t, err)

	papers, err := s.ListByMainField(ctx, "Physics", 3)
	require.NoError(t, err)
	require.Len(t, papers, 3)
	assert.Equal(t, "Mar", papers[0].Title)
	assert.Equal(t, "Feb", papers[1].Title)
	assert.Equal(t, "Jan", papers[2].Title)

	all, err := s.ListByMainField(ctx, "Physics", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Undated", all[3].Title)
	assert.Nil(t, all[3].PublishedAt)
}

func TestPapers_AddPaperUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.AddPaper(ctx, domain.PaperRow{ID: "p1", Title: "Draft", MainField: "AI"})
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	_, err = s.AddPaper(ctx, domain.PaperRow{ID: "p1", Title: "Final", MainField: "AI", StoredHTMLPath: "ai/p1.html"})
	require.NoError(t, err)

	papers, err := s.ListByMainField(ctx, "AI", 5)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "Final", papers[0].Title)
	assert.Equal(t, "ai/p1.html", papers[0].StoredHTMLPath)

	_, err = s.AddPaper(ctx, domain.PaperRow{Title: "No field"})
	assert.True(t, errors.IsValidation(err))
}
