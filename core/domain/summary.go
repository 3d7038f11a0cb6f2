// ABOUTME: Summary domain models for the per-paper summary view
// ABOUTME: Holds the resolved short text, narration source and long-form document state

package domain

// MaxNarrationChars bounds the long-form text handed to text-to-speech
const MaxNarrationChars = 8000

// PlaceholderSummary is used when neither a paper nor a field summary exists
const PlaceholderSummary = "This is a demo summary for the selected paper in the chosen field."

// LongFormStatus is the state of the asynchronous long-form fetch
type LongFormStatus string

const (
	LongFormPending     LongFormStatus = "pending"
	LongFormReady       LongFormStatus = "ready"
	LongFormUnavailable LongFormStatus = "unavailable"
	LongFormFailed      LongFormStatus = "failed"
)

// LongForm is the long-form HTML summary area of a view
type LongForm struct {
	Status LongFormStatus `json:"status"`

	// HTML is the extracted document fragment, set when Status is ready
	HTML string `json:"html,omitempty"`

	// Message is the inline text shown instead of HTML when not ready
	Message string `json:"message,omitempty"`
}

// SummaryView is a snapshot of the summary for the selected paper
type SummaryView struct {
	Title          string `json:"title"`
	Topic          string `json:"topic"`
	Field          string `json:"field"`
	CanonicalField string `json:"canonicalField"`

	// ShortText is the displayed summary. It never changes after resolution.
	ShortText string `json:"shortText"`

	// NarrationText is what audio playback reads. The long form overrides it.
	NarrationText string `json:"narrationText"`

	PublishedLabel string `json:"publishedLabel,omitempty"`
	PDFURL         string `json:"pdfUrl,omitempty"`

	LongForm LongForm `json:"longForm"`
}
