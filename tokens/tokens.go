// Package tokens adapts alternate text renderings of a document into
// page-attributed spans for reconciliation. A span is one consumable unit
// of text that belongs to exactly one page; reconciliation only ever
// compares a page's objects against that page's spans.
package tokens

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Span is one unit of alternate-source text attributed to a page.
type Span struct {
	// Page is the 1-based page the span belongs to.
	Page int

	// Text is the span's raw text, whitespace-trimmed.
	Text string
}

// ErrSourceUngrouped is returned when an alternate source carries no page
// attribution at all. Spans without a page cannot be reconciled, so the
// adapter refuses rather than guess.
var ErrSourceUngrouped = errors.New("alternate source has no page grouping")

// defaultPageMarker matches the page-separator lines commonly emitted by
// text renderers, e.g. "Page 3" or "--- Page 3 ---" on a line by itself.
var defaultPageMarker = regexp.MustCompile(`^[-=\s]*[Pp]age\s+(\d+)[-=\s]*$`)

// SplitOptions controls how SplitPages attributes lines to pages.
type SplitOptions struct {
	// PageMarker matches lines that announce a new page. Its first
	// capture group must be the 1-based page number. When nil, a default
	// pattern matching lines like "Page 3" is used.
	PageMarker *regexp.Regexp

	// AssumeSinglePage treats a source with no page breaks as one page
	// instead of failing with ErrSourceUngrouped.
	AssumeSinglePage bool
}

// SplitPages reads a plain-text rendering and splits it into page-attributed
// spans, one span per non-blank line. Pages are delimited either by form
// feed characters (each advances the page by one) or by marker lines
// matching opts.PageMarker (which set the page explicitly and are consumed).
//
// A source containing neither delimiter yields ErrSourceUngrouped unless
// opts.AssumeSinglePage is set.
func SplitPages(r io.Reader, opts SplitOptions) ([]Span, error) {
	marker := opts.PageMarker
	if marker == nil {
		marker = defaultPageMarker
	}

	page := 1
	grouped := false
	var spans []Span

	emit := func(chunk string) {
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if m := marker.FindStringSubmatch(line); m != nil {
				var n int
				fmt.Sscanf(m[1], "%d", &n)
				if n > 0 {
					page = n
					grouped = true
				}
				continue
			}
			spans = append(spans, Span{Page: page, Text: line})
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.ContainsRune(line, '\f') {
			emit(line)
			continue
		}
		// A form feed ends the current page mid-line.
		parts := strings.Split(line, "\f")
		for i, part := range parts {
			if i > 0 {
				page++
				grouped = true
			}
			emit(part)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading alternate source: %w", err)
	}

	if !grouped && !opts.AssumeSinglePage && len(spans) > 0 {
		return nil, ErrSourceUngrouped
	}
	return spans, nil
}

// ByPage partitions spans into per-page slices keyed by page number. Span
// order within each page is preserved.
func ByPage(spans []Span) map[int][]Span {
	byPage := make(map[int][]Span)
	for _, s := range spans {
		byPage[s.Page] = append(byPage[s.Page], s)
	}
	return byPage
}
