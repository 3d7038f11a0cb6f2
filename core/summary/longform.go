// ABOUTME: Long-form summary extraction from stored HTML documents
// ABOUTME: Keeps the document from its introduction heading onward, or the whole body

package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract is the part of a long-form document shown and narrated
type Extract struct {
	HTML string
	Text string
}

// ExtractIntroduction parses an HTML document and returns the content from
// the first h1, h2 or h3 whose text starts with "introduction" through the
// end of that heading's parent. Without such a heading the whole body is
// returned.
func ExtractIntroduction(r io.Reader) (Extract, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Extract{}, fmt.Errorf("failed to parse summary document: %w", err)
	}

	body := doc.Find("body")

	var intro *goquery.Selection
	body.Find("h1, h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(h.Text())), "introduction") {
			intro = h
			return false
		}
		return true
	})

	if intro == nil {
		fragment, err := body.Html()
		if err != nil {
			return Extract{}, fmt.Errorf("failed to render summary document: %w", err)
		}
		return Extract{HTML: fragment, Text: strings.TrimSpace(body.Text())}, nil
	}

	// Contents keeps text nodes between elements
	siblings := intro.Parent().Contents()
	rest := siblings.Slice(siblings.IndexOfSelection(intro), goquery.ToEnd)

	var b strings.Builder
	var renderErr error
	rest.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var part string
		part, renderErr = goquery.OuterHtml(s)
		if renderErr != nil {
			return false
		}
		b.WriteString(part)
		return true
	})
	if renderErr != nil {
		return Extract{}, fmt.Errorf("failed to render summary document: %w", renderErr)
	}

	return Extract{HTML: b.String(), Text: strings.TrimSpace(rest.Text())}, nil
}
