// Package reconcile aligns a page's extracted text objects against the
// page's alternate-source spans and replaces object content where the two
// agree closely enough. Alignment is approximate, windowed around a
// monotonic span cursor, and score-greedy.
//
// The algorithm is deliberately local: it assumes both pipelines read the
// page in roughly the same order, and it commits to the best match inside a
// small window rather than solving a global alignment. That makes it cheap
// and usually right, but not stable: one spurious accept can desynchronize
// the cursor and cascade mismatches across the rest of the page. Callers
// who cannot tolerate that keep reconciliation off and pass extracted
// content through unchanged.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/tsawler/crosscheck/model"
	"github.com/tsawler/crosscheck/tokens"
)

// Matcher reconciles pages under one Config. A Matcher is stateless across
// pages and safe for concurrent use.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a Matcher with the given policy. Out-of-range knobs
// are clamped to usable values rather than rejected.
func NewMatcher(cfg Config) *Matcher {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.MaxJoin < 1 {
		cfg.MaxJoin = 1
	}
	if cfg.Patience < 1 {
		cfg.Patience = 1
	}
	if cfg.Threshold < 0 {
		cfg.Threshold = 0
	}
	if cfg.Threshold > 1 {
		cfg.Threshold = 1
	}
	return &Matcher{cfg: cfg}
}

// candidate is one scored window of adjacent spans.
type candidate struct {
	score float64
	start int // span index the window begins at
	joins int // number of spans in the window
	text  string
}

// better reports whether c wins over best: highest score, then fewest
// joined spans, then closest to the cursor.
func (c candidate) better(best candidate, cursor int) bool {
	if c.score != best.score {
		return c.score > best.score
	}
	if c.joins != best.joins {
		return c.joins < best.joins
	}
	return c.start-cursor < best.start-cursor
}

// Page reconciles one page. Text objects keep their index, bbox and type;
// only content may change. Non-text objects pass through untouched. The
// input page is not modified.
//
// Page never fails: at worst every object keeps its extracted content.
// Diagnostics about abandoned matching or leftover spans come back as
// warnings.
func (m *Matcher) Page(pd model.PageData, spans []tokens.Span) (model.PageData, []model.Warning) {
	out := model.PageData{
		PageID:        pd.PageID,
		TextGroups:    make([]model.ContentObject, 0, len(pd.TextGroups)),
		NonTextGroups: append([]model.ContentObject{}, pd.NonTextGroups...),
	}
	if len(spans) == 0 {
		out.TextGroups = append(out.TextGroups, pd.TextGroups...)
		return out, nil
	}

	var warnings []model.Warning
	cursor := 0
	misses := 0
	exhausted := false

	for _, obj := range pd.TextGroups {
		if exhausted || cursor >= len(spans) {
			out.TextGroups = append(out.TextGroups, obj)
			continue
		}

		best, ok := m.bestCandidate(obj.Text(), spans, cursor)
		if !ok {
			out.TextGroups = append(out.TextGroups, obj)
			misses++
			if misses >= m.cfg.Patience {
				exhausted = true
				warnings = append(warnings, model.Warning{
					Kind:    model.WarnPatienceExhausted,
					Page:    pd.PageID,
					Message: fmt.Sprintf("gave up after %d consecutive unmatched objects; remaining objects keep extracted text", misses),
				})
			}
			continue
		}

		if m.cfg.UseRawText {
			out.TextGroups = append(out.TextGroups, obj.WithContent(cleanSpanText(best.text)))
		} else {
			out.TextGroups = append(out.TextGroups, obj)
		}
		cursor = best.start + best.joins
		misses = 0
	}

	if !exhausted && cursor < len(spans) {
		warnings = append(warnings, model.Warning{
			Kind:    model.WarnUnmatchedSpan,
			Page:    pd.PageID,
			Message: fmt.Sprintf("%d alternate-source spans were not consumed", len(spans)-cursor),
		})
	}
	return out, warnings
}

// bestCandidate scores every window of 1..MaxJoin adjacent spans starting
// within Window positions of the cursor and returns the winner, if any
// clears the threshold.
func (m *Matcher) bestCandidate(content string, spans []tokens.Span, cursor int) (candidate, bool) {
	target := normalize(content)

	best := candidate{score: -1}
	end := cursor + m.cfg.Window
	if end > len(spans) {
		end = len(spans)
	}
	for start := cursor; start < end; start++ {
		var joined strings.Builder
		for j := 0; j < m.cfg.MaxJoin && start+j < len(spans); j++ {
			if j > 0 {
				joined.WriteString(" ")
			}
			joined.WriteString(spans[start+j].Text)

			c := candidate{
				start: start,
				joins: j + 1,
				text:  joined.String(),
			}
			c.score = similarity(target, normalize(c.text))
			if c.better(best, cursor) {
				best = c
			}
		}
	}

	if best.score < m.cfg.Threshold {
		return candidate{}, false
	}
	return best, true
}
