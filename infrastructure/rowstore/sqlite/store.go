// ABOUTME: SQLite row store holding the reading tracker and papers tables
// ABOUTME: Offline replacement for the Supabase tables with the same query semantics

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
)

const schema = `
	CREATE TABLE IF NOT EXISTS reading_tracker (
		id TEXT PRIMARY KEY,
		owner_email TEXT NOT NULL,
		auth_user_id TEXT,
		paper_title TEXT NOT NULL,
		topic TEXT,
		field TEXT,
		status TEXT NOT NULL,
		notes TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_tracker_owner ON reading_tracker(owner_email, created_at);

	CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT,
		abstract TEXT,
		sub_field TEXT,
		main_field TEXT NOT NULL,
		stored_html_path TEXT,
		pdf_url TEXT,
		published_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_papers_field ON papers(main_field, published_at);
`

// Store implements TrackerStore and PaperStore on SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if path == "" {
		path = "mowakeb-rows.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open row store: %w", err)
	}
	// one writer keeps sqlite from returning SQLITE_BUSY under the dispatcher
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize row store schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a tracker row under a new id
func (s *Store) Insert(ctx context.Context, row domain.TrackerRow) (string, error) {
	if strings.TrimSpace(row.PaperTitle) == "" {
		return "", &errors.ValidationError{Field: "paper_title", Message: "must not be empty"}
	}
	if row.Status == "" {
		row.Status = domain.StatusToRead
	}

	id := uuid.NewString()
	created := s.now()
	if row.CreatedAt != nil {
		created = *row.CreatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_tracker
			(id, owner_email, auth_user_id, paper_title, topic, field, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, row.OwnerEmail, nullable(row.AuthUserID), row.PaperTitle,
		nullable(row.Topic), nullable(row.Field), string(row.Status), nullable(row.Notes),
		created.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert tracker row: %w", err)
	}
	return id, nil
}

// ListByOwner returns the owner's rows, newest first
func (s *Store) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.TrackerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_email, auth_user_id, paper_title, topic, field, status, notes, created_at, updated_at
		FROM reading_tracker
		WHERE owner_email = ?
		ORDER BY created_at DESC, rowid DESC`, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracker rows: %w", err)
	}
	defer rows.Close()

	var out []domain.TrackerRow
	for rows.Next() {
		var (
			r                          domain.TrackerRow
			authID, topic, field, note sql.NullString
			status                     string
			created                    int64
			updated                    sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.OwnerEmail, &authID, &r.PaperTitle, &topic, &field,
			&status, &note, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan tracker row: %w", err)
		}
		r.AuthUserID = authID.String
		r.Topic = topic.String
		r.Field = field.String
		r.Notes = note.String
		r.Status = domain.Status(status)
		r.CreatedAt = fromNanos(sql.NullInt64{Int64: created, Valid: true})
		r.UpdatedAt = fromNanos(updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateStatus sets status and updated_at of the row with id
func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reading_tracker SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), updatedAt.UnixNano(), id)
	if err != nil {
		return fmt.Errorf("failed to update tracker row: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes the row with id
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reading_tracker WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tracker row: %w", err)
	}
	return requireRow(res, id)
}

// AddPaper stores a paper and returns its id. An empty ID gets a new one.
func (s *Store) AddPaper(ctx context.Context, p domain.PaperRow) (string, error) {
	if strings.TrimSpace(p.MainField) == "" {
		return "", &errors.ValidationError{Field: "main_field", Message: "must not be empty"}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	var published interface{}
	if p.PublishedAt != nil {
		published = p.PublishedAt.UnixNano()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO papers (id, title, abstract, sub_field, main_field, stored_html_path, pdf_url, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			abstract = excluded.abstract,
			sub_field = excluded.sub_field,
			main_field = excluded.main_field,
			stored_html_path = excluded.stored_html_path,
			pdf_url = excluded.pdf_url,
			published_at = excluded.published_at`,
		p.ID, nullable(p.Title), nullable(p.Abstract), nullable(p.SubField), p.MainField,
		nullable(p.StoredHTMLPath), nullable(p.PDFURL), published,
	)
	if err != nil {
		return "", fmt.Errorf("failed to store paper: %w", err)
	}
	return p.ID, nil
}

// ListByMainField returns up to limit papers of a main field, most recently published first
func (s *Store) ListByMainField(ctx context.Context, mainField string, limit int) ([]domain.PaperRow, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, abstract, sub_field, main_field, stored_html_path, pdf_url, published_at
		FROM papers
		WHERE main_field = ?
		ORDER BY published_at IS NULL, published_at DESC
		LIMIT ?`, mainField, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer rows.Close()

	var out []domain.PaperRow
	for rows.Next() {
		var (
			p                               domain.PaperRow
			title, abstract, sub, path, pdf sql.NullString
			published                       sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &title, &abstract, &sub, &p.MainField, &path, &pdf, &published); err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		p.Title = title.String
		p.Abstract = abstract.String
		p.SubField = sub.String
		p.StoredHTMLPath = path.String
		p.PDFURL = pdf.String
		p.PublishedAt = fromNanos(published)
		out = append(out, p)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &errors.NotFoundError{Resource: "tracker row", ID: id}
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func fromNanos(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64).UTC()
	return &t
}
