// ABOUTME: HTML utilities for stripping markup and bounding text length
// ABOUTME: Used for paper abstracts and long-form narration text

package html

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// StripHTML returns the text content of an HTML fragment with runs of
// whitespace collapsed. Script and style content is dropped.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpaces(fragment)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return collapseSpaces(fragment)
			}
			return collapseSpaces(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawText(string(name)) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawText(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Truncate cuts s to at most max runes
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

func isRawText(tag string) bool {
	return tag == "script" || tag == "style"
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
