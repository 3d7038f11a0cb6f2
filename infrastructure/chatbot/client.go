// ABOUTME: HTTP client for the research paper chatbot backend
// ABOUTME: Uploads PDFs as multipart forms and posts questions as JSON

package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
)

const (
	apiName       = "chatbot"
	maxAnswerSize = 1 << 20
)

// Client implements interfaces.ChatbotClient
type Client struct {
	baseURL string
	http    interfaces.HTTPClient
}

// NewClient creates a chatbot client for baseURL
func NewClient(baseURL string, httpClient interfaces.HTTPClient) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Upload sends the PDF as form field "file"
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) error {
	if c.baseURL == "" {
		return &errors.RemoteUnavailableError{Service: apiName}
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.WrapError(err, "read upload")
	}
	if err := form.Close(); err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, http.MethodPost, c.baseURL+"/upload", &buf,
		map[string]string{"Content-Type": form.FormDataContentType()})
	if err != nil {
		return errors.WrapError(err, "chatbot upload")
	}
	defer resp.Body().Close()
	_, _ = io.Copy(io.Discard, resp.Body())

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &errors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode(), Message: "upload failed"}
	}
	return nil
}

// Ask posts the question and returns the raw body
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c.baseURL == "" {
		return "", &errors.RemoteUnavailableError{Service: apiName}
	}

	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(payload),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return "", errors.WrapError(err, "chatbot ask")
	}
	defer resp.Body().Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body(), maxAnswerSize))
	if err != nil {
		return "", errors.WrapError(err, "read chatbot answer")
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &errors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode(), Message: string(raw)}
	}
	return string(raw), nil
}
