// ABOUTME: Speech synthesizer that calls a JSON text-to-speech endpoint
// ABOUTME: Sends {"text": ...} and decodes the base64 audioContent of the answer

package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
)

const apiName = "tts"

// Synthesizer implements interfaces.SpeechSynthesizer over HTTP
type Synthesizer struct {
	url    string
	client interfaces.HTTPClient
}

// NewSynthesizer creates a synthesizer posting to url
func NewSynthesizer(url string, client interfaces.HTTPClient) *Synthesizer {
	return &Synthesizer{url: url, client: client}
}

// Synthesize returns the decoded audio for text
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(s.url) == "" {
		return nil, &errors.RemoteUnavailableError{Service: "text-to-speech"}
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, http.MethodPost, s.url, bytes.NewReader(payload),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, errors.WrapError(err, "tts request")
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &errors.ExternalAPIError{
			API:        apiName,
			StatusCode: resp.StatusCode(),
			Message:    "TTS API returned non-OK status",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, errors.WrapError(err, "read tts response")
	}

	content := gjson.GetBytes(body, "audioContent").String()
	if content == "" {
		return nil, &errors.ExternalAPIError{
			API:        apiName,
			StatusCode: resp.StatusCode(),
			Message:    "missing audioContent",
		}
	}

	audio, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, &errors.ExternalAPIError{
			API:        apiName,
			StatusCode: resp.StatusCode(),
			Message:    "audioContent is not base64: " + err.Error(),
		}
	}
	return audio, nil
}
