package domain

import (
	"testing"
	"time"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusToRead, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{Status(""), false},
		{Status("archived"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.expected {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestTrackerRow_ToTrackedPaper(t *testing.T) {
	created := time.Now()
	tests := []struct {
		name      string
		row       TrackerRow
		wantNotes string
		wantState Status
	}{
		{
			name:      "explicit notes win",
			row:       TrackerRow{ID: "1", PaperTitle: "A", Status: StatusDone, Notes: "great", Field: "AI", CreatedAt: &created},
			wantNotes: "great",
			wantState: StatusDone,
		},
		{
			name:      "field fallback",
			row:       TrackerRow{ID: "2", PaperTitle: "B", Field: "Systems"},
			wantNotes: "Field: Systems",
			wantState: StatusToRead,
		},
		{
			name:      "no notes no field",
			row:       TrackerRow{ID: "3", PaperTitle: "C", Status: StatusInProgress},
			wantNotes: "",
			wantState: StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.row.ToTrackedPaper()
			if got.ID != tt.row.ID {
				t.Errorf("ID = %q, want %q", got.ID, tt.row.ID)
			}
			if got.Title != tt.row.PaperTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.row.PaperTitle)
			}
			if got.Notes != tt.wantNotes {
				t.Errorf("Notes = %q, want %q", got.Notes, tt.wantNotes)
			}
			if got.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantState)
			}
		})
	}
}

func TestNewTrackerView_Counts(t *testing.T) {
	entries := []TrackedPaper{
		{Title: "a", Status: StatusToRead},
		{Title: "b", Status: StatusDone},
		{Title: "c", Status: StatusInProgress},
		{Title: "d", Status: "weird"},
		{Title: "e", Status: StatusDone},
	}

	view := NewTrackerView(entries)

	if view.Counts.ToRead != 2 || view.Counts.InProgress != 1 || view.Counts.Done != 2 {
		t.Errorf("Counts = %+v, want {2 1 2}", view.Counts)
	}
	if len(view.Entries) != len(entries) {
		t.Fatalf("Entries length = %d, want %d", len(view.Entries), len(entries))
	}

	wantLabels := []string{"To read", "Completed", "In progress", "To read", "Completed"}
	for i, e := range view.Entries {
		if e.StatusLabel != wantLabels[i] {
			t.Errorf("Entries[%d].StatusLabel = %q, want %q", i, e.StatusLabel, wantLabels[i])
		}
	}

	// The view owns its slice
	view.Entries[0].Title = "changed"
	if entries[0].Title != "a" {
		t.Error("NewTrackerView must copy entries")
	}
}
