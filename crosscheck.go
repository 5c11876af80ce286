// Package crosscheck provides a fluent API for extracting positioned
// content objects from paginated documents and reconciling their text
// against an independently produced plain-text rendering of the same
// document.
//
// Basic usage:
//
//	raw, _ := os.Open("document.txt")
//	pages, warnings, err := crosscheck.Open("document.pdf").
//	    WithRawText(raw).
//	    Run()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", crosscheck.FormatWarnings(warnings))
//	}
//
// Without an alternate source, extraction runs in passthrough: objects keep
// their extracted text.
//
//	pages, _, err := crosscheck.Open("document.pdf").Pages(1, 2, 3).Run()
//
// For advanced use cases, the lower-level decode, aggregate, tokens and
// reconcile packages are also available.
package crosscheck

import (
	"github.com/tsawler/crosscheck/decode"
	"github.com/tsawler/crosscheck/model"
)

// Warning is a non-fatal diagnostic recorded during a run.
type Warning = model.Warning

// FormatWarnings renders a warning list as one line per warning, suitable
// for logging.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// Open opens a PDF file and returns a Reconciler for fluent configuration.
// The returned Reconciler must be closed when done, either explicitly via
// Close() or implicitly by a terminal operation like Run().
//
// Example:
//
//	pages, warnings, err := crosscheck.Open("document.pdf").Run()
func Open(filename string) *Reconciler {
	return &Reconciler{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDecoder creates a Reconciler from an already-opened decoder. This is
// useful when the source is not a PDF file on disk, or when the caller
// needs control over the decoder lifecycle. The caller is responsible for
// closing the decoder.
//
// Example:
//
//	d, err := decode.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer d.Close()
//	pages, warnings, err := crosscheck.FromDecoder(d).Run()
func FromDecoder(d decode.Decoder) *Reconciler {
	return &Reconciler{
		decoder:       d,
		ownsDecoder:   false,
		decoderOpened: true,
		options:       defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := crosscheck.Must(crosscheck.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRun is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. It discards
// warnings and returns just the value.
//
// Example:
//
//	pages := crosscheck.MustRun(crosscheck.Open("document.pdf").Run())
func MustRun[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
