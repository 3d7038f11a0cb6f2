package audio

import (
	"context"
	"testing"
	"time"

	coreerrors "mowakeb-api/core/errors"
	"mowakeb-api/infrastructure/cache/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_PlaysThenStops(t *testing.T) {
	tts := &mockSynthesizer{}
	p := NewPlayer(tts, nil, &mockLogger{}, Config{})

	status, err := p.Toggle(context.Background(), "  narrate me ")
	require.NoError(t, err)

	assert.Equal(t, StatePause, status.State)
	assert.False(t, status.Loading)
	require.NotNil(t, status.Clip)
	assert.Equal(t, []byte("audio:narrate me"), status.Clip.Audio)
	assert.Equal(t, "audio/mpeg", status.Clip.ContentType)

	status, err = p.Toggle(context.Background(), "narrate me")
	require.NoError(t, err)

	assert.Equal(t, StatePlay, status.State)
	assert.Nil(t, status.Clip)
	assert.Equal(t, 1, tts.callCount())
}

func TestToggle_SynthesisErrorReturnsToPlay(t *testing.T) {
	tts := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, text string) ([]byte, error) {
		return nil, &coreerrors.ExternalAPIError{API: "tts", StatusCode: 500, Message: "TTS API returned non-OK status"}
	}}
	p := NewPlayer(tts, nil, &mockLogger{}, Config{})

	status, err := p.Toggle(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, AlertMessage, coreerrors.UserMessage(err, ""))
	assert.Equal(t, 500, coreerrors.StatusCode(err))
	assert.Equal(t, StatePlay, status.State)
	assert.False(t, status.Loading)
	assert.Nil(t, status.Clip)
	assert.Nil(t, p.Status().Clip)
}

func TestToggle_WithoutSynthesizer(t *testing.T) {
	p := NewPlayer(nil, nil, &mockLogger{}, Config{})

	status, err := p.Toggle(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, AlertMessage, coreerrors.UserMessage(err, ""))
	assert.Equal(t, StatePlay, status.State)
}

func TestToggle_EmptyTextIsIgnored(t *testing.T) {
	tts := &mockSynthesizer{}
	p := NewPlayer(tts, nil, &mockLogger{}, Config{})

	status, err := p.Toggle(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, StatePlay, status.State)
	assert.Equal(t, 0, tts.callCount())
}

func TestToggle_LoadingGuard(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	tts := &mockSynthesizer{synthesizeFunc: func(ctx context.Context, text string) ([]byte, error) {
		close(started)
		<-release
		return []byte("x"), nil
	}}
	p := NewPlayer(tts, nil, &mockLogger{}, Config{})

	done := make(chan Status, 1)
	go func() {
		status, _ := p.Toggle(context.Background(), "first")
		done <- status
	}()
	<-started

	status, err := p.Toggle(context.Background(), "second")
	require.NoError(t, err)
	assert.True(t, status.Loading)
	assert.Equal(t, StatePlay, status.State)

	close(release)
	select {
	case status = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("toggle did not finish")
	}
	assert.Equal(t, StatePause, status.State)
	assert.Equal(t, 1, tts.callCount())
}

func TestFinished(t *testing.T) {
	p := NewPlayer(&mockSynthesizer{}, nil, &mockLogger{}, Config{})
	status, err := p.Toggle(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, StatePause, p.Finished("some-other-clip").State)

	status = p.Finished(status.Clip.ID)
	assert.Equal(t, StatePlay, status.State)
	assert.Nil(t, status.Clip)
}

func TestToggle_CachesAudioByText(t *testing.T) {
	tts := &mockSynthesizer{}
	cache := memory.NewMemoryCache()
	p := NewPlayer(tts, cache, &mockLogger{}, Config{ContentType: "audio/ogg"})
	ctx := context.Background()

	first, err := p.Toggle(ctx, "same text")
	require.NoError(t, err)
	p.Stop()

	second, err := p.Toggle(ctx, "same text")
	require.NoError(t, err)

	assert.Equal(t, 1, tts.callCount())
	assert.Equal(t, first.Clip.Audio, second.Clip.Audio)
	assert.NotEqual(t, first.Clip.ID, second.Clip.ID)
	assert.Equal(t, "audio/ogg", second.Clip.ContentType)
}
