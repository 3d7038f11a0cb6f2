package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBody(t *testing.T, body io.ReadCloser) string {
	t.Helper()
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	return string(data)
}

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	require.NotNil(t, client)
	assert.Equal(t, 10*time.Second, client.client.Timeout)
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<h2>Introduction</h2>"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/html", resp.Header("Content-Type"))
	assert.Equal(t, "<h2>Introduction</h2>", readBody(t, resp.Body()))
}

func TestStandardHTTPClient_Get_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "ok", readBody(t, resp.Body()))
}

func TestStandardHTTPClient_Get_ReturnsLastServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Equal(t, int32(maxRetries), atomic.LoadInt32(&calls))
	resp.Body().Close()
}

func TestStandardHTTPClient_Get_NoRetryOnClientError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	resp.Body().Close()
}

func TestStandardHTTPClient_Get_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStandardHTTPClient(10*time.Second).Get(ctx, server.URL)

	assert.Error(t, err)
}

func TestStandardHTTPClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"text":"hello"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Post(context.Background(), server.URL, strings.NewReader(`{"text":"hello"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
	resp.Body().Close()
}

func TestStandardHTTPClient_Do_SingleAttemptWithHeaders(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "key", r.Header.Get("apikey"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Do(context.Background(), http.MethodPatch, server.URL,
		strings.NewReader(`{}`), map[string]string{"apikey": "key"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	resp.Body().Close()
}

func TestStandardHTTPClient_Do_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewStandardHTTPClient(20*time.Millisecond).Do(context.Background(), http.MethodGet, server.URL, nil, nil)

	assert.Error(t, err)
}

func TestStandardHTTPClient_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(time.Second)

	_, err := client.Get(context.Background(), "://bad")
	assert.Error(t, err)
	_, err = client.Do(context.Background(), http.MethodGet, "://bad", nil, nil)
	assert.Error(t, err)
}
