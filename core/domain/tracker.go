// ABOUTME: Tracker domain models for the per-user reading list
// ABOUTME: Defines tracked papers, reading status, remote rows and the rendered tracker view

package domain

import (
	"fmt"
	"time"
)

// Status is the reading status of a tracked paper
type Status string

const (
	StatusToRead     Status = "to-read"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the three known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human readable badge text for the status
func (s Status) Label() string {
	switch s {
	case StatusDone:
		return "Completed"
	case StatusInProgress:
		return "In progress"
	default:
		return "To read"
	}
}

// TrackedPaper is one entry of the local tracker cache
type TrackedPaper struct {
	// ID is the remote row id. Empty until a reload attaches it.
	ID string `json:"id,omitempty"`

	// Title is the paper's display title
	Title string `json:"title"`

	// Status is the reading status
	Status Status `json:"status"`

	// Notes is free text
	Notes string `json:"notes,omitempty"`

	// Topic and Field are captured at creation time
	Topic string `json:"topic,omitempty"`
	Field string `json:"field,omitempty"`
}

// HasRemoteID reports whether the entry is known to the remote store
func (p TrackedPaper) HasRemoteID() bool {
	return p.ID != ""
}

// TrackerDraft is the input for adding a tracker entry
type TrackerDraft struct {
	Title  string `json:"title"`
	Status Status `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Topic  string `json:"topic,omitempty"`
	Field  string `json:"field,omitempty"`
}

// TrackerRow is a row of the remote reading tracker table
type TrackerRow struct {
	ID         string     `json:"id,omitempty"`
	OwnerEmail string     `json:"owner_email"`
	AuthUserID string     `json:"auth_user_id,omitempty"`
	PaperTitle string     `json:"paper_title"`
	Topic      string     `json:"topic,omitempty"`
	Field      string     `json:"field,omitempty"`
	Status     Status     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ToTrackedPaper maps a remote row into a local entry. A missing status
// becomes to-read and empty notes fall back to "Field: <field>".
func (r TrackerRow) ToTrackedPaper() TrackedPaper {
	status := r.Status
	if status == "" {
		status = StatusToRead
	}

	notes := r.Notes
	if notes == "" && r.Field != "" {
		notes = fmt.Sprintf("Field: %s", r.Field)
	}

	return TrackedPaper{
		ID:     r.ID,
		Title:  r.PaperTitle,
		Status: status,
		Notes:  notes,
		Topic:  r.Topic,
		Field:  r.Field,
	}
}

// TrackerCounts tallies entries by status
type TrackerCounts struct {
	ToRead     int `json:"toRead"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// TrackerEntry is a tracked paper as rendered, with its status badge
type TrackerEntry struct {
	TrackedPaper
	StatusLabel string `json:"statusLabel"`
}

// TrackerView is the rendered tracker: counts plus entries in cache order
type TrackerView struct {
	Entries []TrackerEntry `json:"entries"`
	Counts  TrackerCounts  `json:"counts"`
}

// NewTrackerView renders entries. Any status other than done or in-progress
// is counted and labelled as to-read.
func NewTrackerView(entries []TrackedPaper) TrackerView {
	view := TrackerView{Entries: make([]TrackerEntry, 0, len(entries))}

	for _, e := range entries {
		view.Entries = append(view.Entries, TrackerEntry{TrackedPaper: e, StatusLabel: e.Status.Label()})

		switch e.Status {
		case StatusDone:
			view.Counts.Done++
		case StatusInProgress:
			view.Counts.InProgress++
		default:
			view.Counts.ToRead++
		}
	}
	return view
}
