// ABOUTME: Answer extraction for chatbot responses of unknown shape
// ABOUTME: Tries an ordered list of extractors before falling back to the raw body

package chatbot

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NoAnswer is shown when the chatbot returns an empty body
const NoAnswer = "No answer returned."

// Extractor pulls an answer out of a parsed JSON body. ok is false when the
// shape does not match.
type Extractor func(body gjson.Result) (answer string, ok bool)

// StringBody matches a body that is a bare JSON string
func StringBody(body gjson.Result) (string, bool) {
	if body.Type != gjson.String {
		return "", false
	}
	return body.String(), true
}

// Key matches an object holding a truthy value under name
func Key(name string) Extractor {
	return func(body gjson.Result) (string, bool) {
		if !body.IsObject() {
			return "", false
		}
		v := body.Get(name)
		if !truthy(v) {
			return "", false
		}
		if v.Type == gjson.String {
			return v.String(), true
		}
		return v.Raw, true
	}
}

// DefaultExtractors is the order answers are looked up in
var DefaultExtractors = []Extractor{
	StringBody,
	Key("answer"),
	Key("response"),
	Key("result"),
	Key("msg"),
}

// ExtractAnswer interprets a raw chatbot response. Bodies that are not JSON
// or match no extractor are returned as they are.
func ExtractAnswer(raw string, extractors []Extractor) string {
	if gjson.Valid(raw) {
		body := gjson.Parse(raw)
		for _, extract := range extractors {
			if answer, ok := extract(body); ok {
				return answer
			}
		}
	}

	if strings.TrimSpace(raw) == "" {
		return NoAnswer
	}
	return raw
}

// truthy reports whether v would count as set: present, not null, not
// false, not zero and not an empty string
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return v.Exists()
	}
}
