// ABOUTME: Paper domain models for result lists, selections and summary views
// ABOUTME: Covers remote paper rows, displayable result rows and the selected paper snapshot

package domain

import (
	"fmt"
	"strings"
	"time"

	timeutil "mowakeb-api/pkg/utils/time"
)

// ResultRowCount is the number of rows every result list contains
const ResultRowCount = 5

// ResultSource tells where a result row came from
type ResultSource string

const (
	SourceRemote ResultSource = "remote"
	SourceDemo   ResultSource = "demo"
)

// PaperRow is a row of the remote papers table
type PaperRow struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Abstract       string     `json:"abstract"`
	SubField       string     `json:"sub_field"`
	MainField      string     `json:"main_field"`
	StoredHTMLPath string     `json:"stored_html_path"`
	PDFURL         string     `json:"pdf_url"`
	PublishedAt    *time.Time `json:"published_at"`
}

// ResultRow is one displayable entry of a result list
type ResultRow struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Source         ResultSource `json:"source"`
	PaperID        string       `json:"paperId,omitempty"`
	MainField      string       `json:"mainField,omitempty"`
	SubField       string       `json:"subField,omitempty"`
	StoredHTMLPath string       `json:"storedHtmlPath,omitempty"`
	PDFURL         string       `json:"pdfUrl,omitempty"`
	PublishedAt    string       `json:"publishedAt,omitempty"`
}

// NoAbstract is shown for remote papers without an abstract
const NoAbstract = "No abstract available yet for this paper."

// ResultRowFromPaper builds the display row for a remote paper at position
// index (zero based). The sub field, when present, prefixes the title.
func ResultRowFromPaper(p PaperRow, index int) ResultRow {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = fmt.Sprintf("Paper %d", index+1)
	}
	if p.SubField != "" {
		title = p.SubField + " – " + title
	}

	desc := strings.TrimSpace(p.Abstract)
	if desc == "" {
		desc = NoAbstract
	}

	row := ResultRow{
		Title:          title,
		Description:    desc,
		Source:         SourceRemote,
		PaperID:        p.ID,
		MainField:      p.MainField,
		SubField:       p.SubField,
		StoredHTMLPath: p.StoredHTMLPath,
		PDFURL:         p.PDFURL,
	}
	if p.PublishedAt != nil {
		row.PublishedAt = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	return row
}

// SelectedPaper is the single-slot snapshot of the paper picked from a result list
type SelectedPaper struct {
	Title          string  `json:"title"`
	Topic          string  `json:"topic,omitempty"`
	Field          string  `json:"field,omitempty"`
	PaperID        *string `json:"paperId"`
	MainField      *string `json:"mainField"`
	SubField       *string `json:"subField"`
	StoredHTMLPath *string `json:"storedHtmlPath"`
	PDFURL         *string `json:"pdfUrl"`
	PublishedAt    *string `json:"publishedAt"`
}

// NewSelectedPaper snapshots a result row. The topic shown on the results
// page ("Recent papers in <field>") is recorded alongside the field label.
func NewSelectedPaper(row ResultRow, fieldLabel string) SelectedPaper {
	title := strings.TrimSpace(row.Title)
	if title == "" {
		title = "Selected paper"
	}
	return SelectedPaper{
		Title:          title,
		Topic:          ResultsHeading(fieldLabel),
		Field:          fieldLabel,
		PaperID:        optional(row.PaperID),
		MainField:      optional(row.MainField),
		SubField:       optional(row.SubField),
		StoredHTMLPath: optional(row.StoredHTMLPath),
		PDFURL:         optional(row.PDFURL),
		PublishedAt:    optional(row.PublishedAt),
	}
}

// ResultsHeading is the heading of a result list for a field
func ResultsHeading(fieldLabel string) string {
	return "Recent papers in " + fieldLabel
}

// Deref returns the value of an optional string or ""
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// PublishedLabel formats a raw publish timestamp as "Published: Jan 2, 2006".
// Unparseable or empty input yields "".
func PublishedLabel(raw string) string {
	t, ok := timeutil.Parse(raw)
	if !ok {
		return ""
	}
	return "Published: " + t.Format("Jan 2, 2006")
}
