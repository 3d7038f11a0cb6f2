// ABOUTME: Supabase adapter for the reading tracker table, the papers table and storage
// ABOUTME: Talks to PostgREST over the shared HTTP client without retries

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
)

const (
	defaultTrackerTable = "reading_tracker"
	defaultPapersTable  = "papers"
	maxErrorBody        = 4096
)

// Config holds the project settings
type Config struct {
	URL          string
	AnonKey      string
	TrackerTable string
	PapersTable  string
	Bucket       string
}

// Client implements TrackerStore, PaperStore and ObjectStore
type Client struct {
	cfg    Config
	http   interfaces.HTTPClient
	logger interfaces.Logger
}

// NewClient creates a Supabase client
func NewClient(cfg Config, httpClient interfaces.HTTPClient, logger interfaces.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, &errors.ValidationError{Field: "supabase.url", Message: "must not be empty"}
	}
	if strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, &errors.ValidationError{Field: "supabase.anon_key", Message: "must not be empty"}
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.TrackerTable == "" {
		cfg.TrackerTable = defaultTrackerTable
	}
	if cfg.PapersTable == "" {
		cfg.PapersTable = defaultPapersTable
	}

	return &Client{cfg: cfg, http: httpClient, logger: logger}, nil
}

// Insert stores a tracker row and returns the id assigned by the database
func (c *Client) Insert(ctx context.Context, row domain.TrackerRow) (string, error) {
	row.ID = ""
	body, err := json.Marshal(row)
	if err != nil {
		return "", err
	}

	headers := map[string]string{"Prefer": "return=representation"}
	data, err := c.send(ctx, http.MethodPost, c.tableURL(c.cfg.TrackerTable, nil), body, headers)
	if err != nil {
		return "", err
	}

	// PostgREST returns ids as numbers or strings depending on the column type
	id := gjson.GetBytes(data, "0.id")
	if !id.Exists() {
		return "", &errors.ExternalAPIError{API: "supabase", StatusCode: http.StatusOK, Message: "insert returned no row"}
	}
	return id.String(), nil
}

// ListByOwner returns the owner's rows, newest first
func (c *Client) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.TrackerRow, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("owner_email", "eq."+ownerEmail)
	q.Set("order", "created_at.desc")

	data, err := c.send(ctx, http.MethodGet, c.tableURL(c.cfg.TrackerTable, q), nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []trackerRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapError(err, "decode tracker rows")
	}

	out := make([]domain.TrackerRow, 0, len(rows))
	for _, r := range rows {
		c.warnUnparsed(c.cfg.TrackerTable, string(r.ID), r.unparsed())
		out = append(out, r.toDomain())
	}
	return out, nil
}

// UpdateStatus sets status and updated_at on the row with id
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	body, err := json.Marshal(map[string]interface{}{
		"status":     status,
		"updated_at": updatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = c.send(ctx, http.MethodPatch, c.tableURL(c.cfg.TrackerTable, byID(id)), body, nil)
	return err
}

// Delete removes the row with id
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodDelete, c.tableURL(c.cfg.TrackerTable, byID(id)), nil, nil)
	return err
}

// ListByMainField returns papers of a main field, most recently published first
func (c *Client) ListByMainField(ctx context.Context, mainField string, limit int) ([]domain.PaperRow, error) {
	q := url.Values{}
	q.Set("select", "id,title,abstract,sub_field,main_field,stored_html_path,pdf_url,published_at")
	q.Set("main_field", "eq."+mainField)
	q.Set("order", "published_at.desc")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	data, err := c.send(ctx, http.MethodGet, c.tableURL(c.cfg.PapersTable, q), nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []paperRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapError(err, "decode paper rows")
	}

	out := make([]domain.PaperRow, 0, len(rows))
	for _, r := range rows {
		c.warnUnparsed(c.cfg.PapersTable, string(r.ID), r.unparsed())
		out = append(out, r.toDomain())
	}
	return out, nil
}

// warnUnparsed logs timestamp columns of a row that were dropped because
// they did not parse
func (c *Client) warnUnparsed(table, id string, columns map[string]interface{}) {
	if len(columns) == 0 {
		return
	}
	fields := map[string]interface{}{
		"table": table,
		"id":    id,
	}
	for name, raw := range columns {
		fields[name] = raw
	}
	c.logger.Warn("Ignoring unparseable timestamp", fields)
}

// PublicURL returns the public storage URL for path in the configured bucket
func (c *Client) PublicURL(ctx context.Context, path string) (string, error) {
	if c.cfg.Bucket == "" {
		return "", &errors.RemoteUnavailableError{Service: "object store"}
	}
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", &errors.ValidationError{Field: "path", Message: "must not be empty"}
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.cfg.URL, url.PathEscape(c.cfg.Bucket), strings.Join(segments, "/")), nil
}

func (c *Client) tableURL(table string, q url.Values) string {
	u := c.cfg.URL + "/rest/v1/" + url.PathEscape(table)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func byID(id string) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return q
}

func (c *Client) send(ctx context.Context, method, target string, body []byte, extra map[string]string) ([]byte, error) {
	headers := map[string]string{
		"apikey":        c.cfg.AnonKey,
		"Authorization": "Bearer " + c.cfg.AnonKey,
		"Accept":        "application/json",
	}
	var reader io.Reader
	if body != nil {
		headers["Content-Type"] = "application/json"
		reader = bytes.NewReader(body)
	}
	for k, v := range extra {
		headers[k] = v
	}

	resp, err := c.http.Do(ctx, method, target, reader, headers)
	if err != nil {
		return nil, errors.WrapError(err, "supabase "+method)
	}
	defer resp.Body().Close()

	data, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, errors.WrapError(err, "read supabase response")
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		msg := gjson.GetBytes(data, "message").String()
		if msg == "" {
			if len(data) > maxErrorBody {
				data = data[:maxErrorBody]
			}
			msg = strings.TrimSpace(string(data))
		}
		c.logger.Debug("Supabase request rejected", map[string]interface{}{
			"method": method,
			"status": resp.StatusCode(),
		})
		return nil, &errors.ExternalAPIError{API: "supabase", StatusCode: resp.StatusCode(), Message: msg}
	}

	return data, nil
}
