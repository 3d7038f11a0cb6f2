// ABOUTME: Speech synthesizer backed by Google Cloud Text-to-Speech
// ABOUTME: Splits long text on word boundaries and concatenates the audio of each chunk

package google

import (
	"bytes"
	"context"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"

	"mowakeb-api/core/errors"
)

const (
	// MaxChunkChars bounds each synthesis request
	MaxChunkChars = 1000

	defaultLanguage = "en-US"
	defaultVoice    = "en-US-Neural2-J"
)

// speechClient is the subset of the Cloud client used here
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// Config selects the voice and encoding
type Config struct {
	LanguageCode string
	Voice        string
	// Encoding is MP3 or OGG_OPUS
	Encoding string
}

// Synthesizer implements interfaces.SpeechSynthesizer
type Synthesizer struct {
	client   speechClient
	language string
	voice    string
	encoding texttospeechpb.AudioEncoding
}

// NewSynthesizer creates a Cloud client using application default credentials
func NewSynthesizer(ctx context.Context, cfg Config) (*Synthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "create text-to-speech client")
	}
	return newSynthesizer(client, cfg), nil
}

func newSynthesizer(client speechClient, cfg Config) *Synthesizer {
	s := &Synthesizer{
		client:   client,
		language: cfg.LanguageCode,
		voice:    cfg.Voice,
		encoding: texttospeechpb.AudioEncoding_MP3,
	}
	if s.language == "" {
		s.language = defaultLanguage
	}
	if s.voice == "" {
		s.voice = defaultVoice
	}
	if strings.EqualFold(cfg.Encoding, "OGG_OPUS") {
		s.encoding = texttospeechpb.AudioEncoding_OGG_OPUS
	}
	return s
}

// ContentType is the MIME type of the produced audio
func (s *Synthesizer) ContentType() string {
	if s.encoding == texttospeechpb.AudioEncoding_OGG_OPUS {
		return "audio/ogg"
	}
	return "audio/mpeg"
}

// Synthesize returns the audio for text
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	chunks := SplitText(text, MaxChunkChars)
	if len(chunks) == 0 {
		return nil, &errors.ValidationError{Field: "text", Message: "must not be empty"}
	}

	var audio bytes.Buffer
	for _, chunk := range chunks {
		resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: s.language,
				Name:         s.voice,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: s.encoding,
			},
		})
		if err != nil {
			return nil, &errors.ExternalAPIError{API: "tts", Message: err.Error()}
		}
		audio.Write(resp.GetAudioContent())
	}
	return audio.Bytes(), nil
}

// Close releases the Cloud client
func (s *Synthesizer) Close() error {
	return s.client.Close()
}

// SplitText groups words into chunks of at most max bytes. A single word
// longer than max becomes its own chunk.
func SplitText(text string, max int) []string {
	var chunks []string
	var chunk strings.Builder

	for _, word := range strings.Fields(text) {
		if chunk.Len() > 0 && chunk.Len()+1+len(word) > max {
			chunks = append(chunks, chunk.String())
			chunk.Reset()
		}
		if chunk.Len() > 0 {
			chunk.WriteByte(' ')
		}
		chunk.WriteString(word)
	}
	if chunk.Len() > 0 {
		chunks = append(chunks, chunk.String())
	}
	return chunks
}
