// ABOUTME: Storage interfaces for the remote row store and object store collaborators
// ABOUTME: Defines the tracker table, papers table and document storage contracts

package interfaces

import (
	"context"
	"time"

	"mowakeb-api/core/domain"
)

// TrackerStore is the remote reading tracker table
type TrackerStore interface {
	// Insert stores a row and returns its new id
	Insert(ctx context.Context, row domain.TrackerRow) (string, error)

	// ListByOwner returns every row of the owner, newest first
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.TrackerRow, error)

	// UpdateStatus sets status and updated_at of the row with the given id
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error

	// Delete removes the row with the given id
	Delete(ctx context.Context, id string) error
}

// PaperStore is the remote papers table
type PaperStore interface {
	// ListByMainField returns up to limit papers of a main field, most recently published first
	ListByMainField(ctx context.Context, mainField string, limit int) ([]domain.PaperRow, error)
}

// ObjectStore resolves storage paths of long-form summary documents
type ObjectStore interface {
	// PublicURL returns the public URL of the object at path
	PublicURL(ctx context.Context, path string) (string, error)
}
