package model

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal condition recorded while processing.
type WarningKind int

const (
	WarnUnknown WarningKind = iota
	// WarnMalformedObject: a layout object with unusable geometry was
	// skipped during aggregation.
	WarnMalformedObject
	// WarnPageUnavailable: a requested page could not be decoded and was
	// omitted from the results.
	WarnPageUnavailable
	// WarnUnmatchedSpan: an alternate-source span found no accepting
	// object during reconciliation.
	WarnUnmatchedSpan
	// WarnPatienceExhausted: reconciliation gave up on the remainder of a
	// page after too many consecutive rejections.
	WarnPatienceExhausted
)

func (k WarningKind) String() string {
	switch k {
	case WarnMalformedObject:
		return "malformed object"
	case WarnPageUnavailable:
		return "page unavailable"
	case WarnUnmatchedSpan:
		return "unmatched span"
	case WarnPatienceExhausted:
		return "patience exhausted"
	default:
		return "unknown"
	}
}

// Warning is a recoverable diagnostic produced alongside results. Warnings
// never abort processing; they tell the caller where output may be
// imperfect.
type Warning struct {
	Kind    WarningKind
	Page    int // 1-based page, 0 if not page-scoped
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s: %s", w.Page, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FormatWarnings renders a warning list as one line per warning, suitable
// for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
