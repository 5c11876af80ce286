// Package decode is the boundary to the document decoder. It exposes each
// page of a source document as an ordered stream of kind-tagged layout
// objects with geometry, which is all the rest of the pipeline consumes.
//
// The default implementation is backed by the ledongthuc/pdf reader; any
// decoder that can enumerate positioned page objects can satisfy Decoder.
package decode

import (
	"fmt"

	"github.com/tsawler/crosscheck/model"
)

// Object is one layout object as reported by the decoder: a structural
// kind string, a bounding box, and optional text.
type Object struct {
	// Kind is the decoder's structural tag for the object. The set is
	// open-ended; consumers must tolerate kinds they do not know.
	Kind string

	// BBox is the object's bounding box in page space.
	BBox model.Rect

	// Text is the extracted text for text-bearing objects.
	Text string

	// HasText distinguishes a text object with empty text from a
	// non-text object.
	HasText bool
}

// Page is one decoded page: its 1-based number, dimensions in points, and
// layout objects in resolution order.
type Page struct {
	Number  int
	Width   float64
	Height  float64
	Objects []Object
}

// Decoder enumerates the pages of one source document. Implementations
// commonly share decoding state (fonts, resources) across pages and are
// not safe for concurrent page reads.
type Decoder interface {
	// PageCount returns the total number of pages.
	PageCount() (int, error)

	// Page returns the 1-based page n. A page that exists in the
	// document but cannot be decoded yields a *PageUnavailableError.
	Page(n int) (*Page, error)

	// Close releases decoder resources.
	Close() error
}

// PageUnavailableError reports a requested page that is missing from the
// document or could not be decoded. Callers recover by omitting the page.
type PageUnavailableError struct {
	Page int
	Err  error
}

func (e *PageUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("page %d unavailable: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("page %d unavailable", e.Page)
}

func (e *PageUnavailableError) Unwrap() error { return e.Err }
