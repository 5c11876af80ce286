package reconcile

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// normalize prepares text for comparison: Unicode compatibility
// normalization, case folding, and whitespace collapsing. Normalization is
// comparison-only; output text is never normalized destructively.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = foldCaser.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// similarity returns a normalized edit-distance similarity in [0, 1]
// between two already-normalized strings: 1 - distance/max(len). Two empty
// strings are identical.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max)
}

// cleanSpanText strips pipeline artifacts from span text before it is
// written into an object: control characters and soft hyphens, with
// surrounding whitespace trimmed.
func cleanSpanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '\u00ad' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
