// ABOUTME: Audio player state machine for narrating the open summary
// ABOUTME: Toggles between play and pause, guards re-entrant requests and caches synthesized audio

package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mowakeb-api/core/errors"
	"mowakeb-api/core/interfaces"
)

// AlertMessage is shown when narration cannot be produced
const AlertMessage = "Audio failed to play. Please check the API / network and try again."

// State is the action the audio control offers next
type State string

const (
	// StatePlay means nothing is playing
	StatePlay State = "play"
	// StatePause means a clip is playing
	StatePause State = "pause"
)

// Clip is a synthesized narration
type Clip struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	Audio       []byte `json:"audio"`
}

// Status is a snapshot of the player
type Status struct {
	State   State `json:"state"`
	Loading bool  `json:"loading"`
	Clip    *Clip `json:"clip,omitempty"`
}

// Config holds player settings
type Config struct {
	// ContentType is the media type of synthesized audio
	ContentType string

	// CacheTTL is how long synthesized audio stays cached
	CacheTTL time.Duration
}

// DefaultConfig returns the default player configuration
func DefaultConfig() Config {
	return Config{
		ContentType: "audio/mpeg",
		CacheTTL:    7 * 24 * time.Hour,
	}
}

// Player narrates text through a speech synthesizer. Only one clip is live
// at a time.
type Player struct {
	tts    interfaces.SpeechSynthesizer
	cache  interfaces.Cache
	logger interfaces.Logger
	config Config

	mu      sync.Mutex
	state   State
	loading bool
	clip    *Clip
}

// NewPlayer creates a player in the play state. cache may be nil.
func NewPlayer(tts interfaces.SpeechSynthesizer, cache interfaces.Cache, logger interfaces.Logger, config Config) *Player {
	def := DefaultConfig()
	if config.ContentType == "" {
		config.ContentType = def.ContentType
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = def.CacheTTL
	}
	return &Player{
		tts:    tts,
		cache:  cache,
		logger: logger,
		config: config,
		state:  StatePlay,
	}
}

// Status returns the current player snapshot
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Toggle reacts to the audio control. While a request is loading it does
// nothing; while a clip plays it stops it; otherwise it synthesizes text and
// starts a new clip. A synthesis failure returns the player to play and
// yields an error carrying AlertMessage.
func (p *Player) Toggle(ctx context.Context, text string) (Status, error) {
	p.mu.Lock()
	if p.loading {
		status := p.statusLocked()
		p.mu.Unlock()
		return status, nil
	}
	if p.state == StatePause && p.clip != nil {
		p.resetLocked()
		status := p.statusLocked()
		p.mu.Unlock()
		return status, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		status := p.statusLocked()
		p.mu.Unlock()
		return status, nil
	}

	p.loading = true
	p.mu.Unlock()

	audio, err := p.synthesize(ctx, text)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.logger.Error("Error while playing audio", map[string]interface{}{
			"error": err.Error(),
		})
		p.resetLocked()
		return p.statusLocked(), alertError(err)
	}

	// A new clip replaces whatever was live
	p.clip = &Clip{
		ID:          uuid.NewString(),
		ContentType: p.config.ContentType,
		Audio:       audio,
	}
	p.loading = false
	p.state = StatePause
	return p.statusLocked(), nil
}

// Finished marks the live clip as played to its end
func (p *Player) Finished(clipID string) Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.clip != nil && (clipID == "" || clipID == p.clip.ID) {
		p.resetLocked()
	}
	return p.statusLocked()
}

// Stop stops any live clip
func (p *Player) Stop() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loading {
		p.resetLocked()
	}
	return p.statusLocked()
}

func (p *Player) synthesize(ctx context.Context, text string) ([]byte, error) {
	if p.tts == nil {
		return nil, &errors.RemoteUnavailableError{Service: "text-to-speech"}
	}

	key := cacheKey(text)
	if p.cache != nil {
		data, err := p.cache.Get(ctx, key)
		switch {
		case err == nil && len(data) > 0:
			p.logger.Debug("Audio content found in cache", map[string]interface{}{
				"key": key,
			})
			return data, nil
		case err != nil && !stderrors.Is(err, interfaces.ErrCacheMiss):
			p.logger.Warn("Audio cache read failed, synthesizing", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	audio, err := p.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, audio, p.config.CacheTTL); err != nil {
			p.logger.Warn("Failed to cache audio content", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return audio, nil
}

func (p *Player) resetLocked() {
	p.clip = nil
	p.loading = false
	p.state = StatePlay
}

func (p *Player) statusLocked() Status {
	return Status{State: p.state, Loading: p.loading, Clip: p.clip}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "audio:" + hex.EncodeToString(sum[:])
}

// alertError tags err with the message shown to the user
func alertError(err error) error {
	return &errors.ExternalAPIError{
		API:         "tts",
		StatusCode:  errors.StatusCode(err),
		Message:     err.Error(),
		UserMessage: AlertMessage,
	}
}
