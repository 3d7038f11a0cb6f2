package supabase

import (
	"encoding/json"
	"time"

	"mowakeb-api/core/domain"
	timeutil "mowakeb-api/pkg/utils/time"
)

// flexID accepts numeric or text primary keys
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// flexTime accepts the timestamp and date forms PostgREST emits. A value
// that does not parse leaves t nil and is kept in raw, so one odd row never
// fails the whole result set.
type flexTime struct {
	t   *time.Time
	raw string
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	f.t, f.raw = nil, ""
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		f.raw = string(b)
		return nil
	}
	if t, ok := timeutil.Parse(s); ok {
		f.t = &t
		return nil
	}
	f.raw = s
	return nil
}

// unparsed collects the raw values of columns that did not parse
func unparsed(columns map[string]flexTime) map[string]interface{} {
	var out map[string]interface{}
	for name, ft := range columns {
		if ft.raw == "" {
			continue
		}
		if out == nil {
			out = make(map[string]interface{})
		}
		out[name] = ft.raw
	}
	return out
}

type trackerRecord struct {
	ID         flexID   `json:"id"`
	OwnerEmail string   `json:"owner_email"`
	AuthUserID *string  `json:"auth_user_id"`
	PaperTitle string   `json:"paper_title"`
	Topic      *string  `json:"topic"`
	Field      *string  `json:"field"`
	Status     string   `json:"status"`
	Notes      *string  `json:"notes"`
	CreatedAt  flexTime `json:"created_at"`
	UpdatedAt  flexTime `json:"updated_at"`
}

func (r trackerRecord) unparsed() map[string]interface{} {
	return unparsed(map[string]flexTime{"created_at": r.CreatedAt, "updated_at": r.UpdatedAt})
}

func (r trackerRecord) toDomain() domain.TrackerRow {
	return domain.TrackerRow{
		ID:         string(r.ID),
		OwnerEmail: r.OwnerEmail,
		AuthUserID: domain.Deref(r.AuthUserID),
		PaperTitle: r.PaperTitle,
		Topic:      domain.Deref(r.Topic),
		Field:      domain.Deref(r.Field),
		Status:     domain.Status(r.Status),
		Notes:      domain.Deref(r.Notes),
		CreatedAt:  r.CreatedAt.t,
		UpdatedAt:  r.UpdatedAt.t,
	}
}

type paperRecord struct {
	ID             flexID   `json:"id"`
	Title          *string  `json:"title"`
	Abstract       *string  `json:"abstract"`
	SubField       *string  `json:"sub_field"`
	MainField      *string  `json:"main_field"`
	StoredHTMLPath *string  `json:"stored_html_path"`
	PDFURL         *string  `json:"pdf_url"`
	PublishedAt    flexTime `json:"published_at"`
}

func (r paperRecord) unparsed() map[string]interface{} {
	return unparsed(map[string]flexTime{"published_at": r.PublishedAt})
}

func (r paperRecord) toDomain() domain.PaperRow {
	return domain.PaperRow{
		ID:             string(r.ID),
		Title:          domain.Deref(r.Title),
		Abstract:       domain.Deref(r.Abstract),
		SubField:       domain.Deref(r.SubField),
		MainField:      domain.Deref(r.MainField),
		StoredHTMLPath: domain.Deref(r.StoredHTMLPath),
		PDFURL:         domain.Deref(r.PDFURL),
		PublishedAt:    r.PublishedAt.t,
	}
}
