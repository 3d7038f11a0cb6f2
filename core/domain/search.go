// ABOUTME: Search domain models for field/topic searches and the canonical field taxonomy
// ABOUTME: Provides field label normalization and the mapping to the papers table main field

package domain

import (
	"strings"
	"time"
)

// Canonical field labels. Every paper and summary is classified under one of these.
const (
	FieldAI          = "Artificial Intelligence (AI)"
	FieldDataScience = "Data Science & Analytics"
	FieldSystems     = "Systems & Infrastructure"
	FieldSecurity    = "Security & Privacy"
	FieldAppliedAI   = "Applied AI"
)

// DefaultTopic is stored when a search is submitted without a topic.
const DefaultTopic = "Top 5 papers"

// CanonicalFields lists the taxonomy in display order.
var CanonicalFields = []string{
	FieldAI,
	FieldDataScience,
	FieldSystems,
	FieldSecurity,
	FieldAppliedAI,
}

// SearchContext is the single persisted "last search"
type SearchContext struct {
	// Field is the field label as chosen by the user (not necessarily canonical)
	Field string `json:"field"`

	// Topic is the free-text topic, DefaultTopic when left empty
	Topic string `json:"topic"`

	// Timestamp is when the search was submitted
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// NewSearchContext builds a search context from raw form input.
// An empty field falls back to FieldAI and an empty topic to DefaultTopic.
func NewSearchContext(field, topic string, now time.Time) SearchContext {
	field = strings.TrimSpace(field)
	if field == "" {
		field = FieldAI
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}
	return SearchContext{
		Field:     field,
		Topic:     topic,
		Timestamp: &now,
	}
}

// NormalizeField maps a free-text or enumerated field label onto one of the
// canonical fields. Matching is case-insensitive keyword containment and the
// result is stable: normalizing a canonical label returns it unchanged.
func NormalizeField(label string) string {
	txt := strings.ToLower(strings.TrimSpace(label))
	if txt == "" {
		return FieldAI
	}

	switch {
	case txt == "ai" || strings.Contains(txt, "artificial intelligence"):
		return FieldAI
	case strings.Contains(txt, "data") && strings.Contains(txt, "analytics"):
		return FieldDataScience
	case strings.Contains(txt, "system") || strings.Contains(txt, "infrastructure"):
		return FieldSystems
	case strings.Contains(txt, "security") || strings.Contains(txt, "privacy"):
		return FieldSecurity
	case strings.Contains(txt, "applied"):
		return FieldAppliedAI
	}

	return FieldAI
}

// MainField returns the papers table main_field value for a field label
func MainField(label string) string {
	switch NormalizeField(label) {
	case FieldDataScience:
		return "Data Science"
	case FieldSystems:
		return "Systems"
	case FieldSecurity:
		return "Security"
	case FieldAppliedAI:
		return "Applied AI"
	default:
		return "AI"
	}
}
