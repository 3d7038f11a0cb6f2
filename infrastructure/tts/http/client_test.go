package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mowakeb-api/core/errors"
	"mowakeb-api/infrastructure/http/standard"
)

func newSynth(t *testing.T, handler http.HandlerFunc) *Synthesizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSynthesizer(srv.URL+"/synthesize", standard.NewStandardHTTPClient(5*time.Second))
}

func TestSynthesize_DecodesAudio(t *testing.T) {
	s := newSynth(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello research", body["text"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("ID3-audio")),
		})
	})

	audio, err := s.Synthesize(context.Background(), "Hello research")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-audio"), audio)
}

func TestSynthesize_ServerErrorIsSingleAttempt(t *testing.T) {
	calls := 0
	s := newSynth(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.Synthesize(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, errors.IsExternalAPI(err))
	assert.Equal(t, http.StatusInternalServerError, errors.StatusCode(err))
	assert.Equal(t, 1, calls)
}

func TestSynthesize_MissingAudioContent(t *testing.T) {
	s := newSynth(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"other":"x"}`)
	})

	_, err := s.Synthesize(context.Background(), "text")
	assert.True(t, errors.IsExternalAPI(err))
	assert.Contains(t, err.Error(), "missing audioContent")
}

func TestSynthesize_InvalidBase64(t *testing.T) {
	s := newSynth(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"audioContent":"%%%"}`)
	})

	_, err := s.Synthesize(context.Background(), "text")
	assert.True(t, errors.IsExternalAPI(err))
}

func TestSynthesize_NoURL(t *testing.T) {
	s := NewSynthesizer("", nil)

	_, err := s.Synthesize(context.Background(), "text")
	assert.True(t, errors.IsRemoteUnavailable(err))
}
