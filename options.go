package crosscheck

import (
	"io"

	"github.com/tsawler/crosscheck/aggregate"
	"github.com/tsawler/crosscheck/reconcile"
	"github.com/tsawler/crosscheck/tokens"
)

// runOptions holds configuration for a run.
type runOptions struct {
	// Page selection (1-indexed, stored as-is)
	pages []int

	// Reading-order reordering; empty means keep resolution order.
	order aggregate.Order

	// Matching policy
	cfg reconcile.Config

	// Alternate source. Either pre-built spans or a raw-text reader to be
	// split at run time; spans win when both are set.
	spans    []tokens.Span
	spansSet bool
	rawText  io.Reader

	// Split policy for raw text
	splitOpts tokens.SplitOptions

	// passthrough disables reconciliation entirely; objects keep their
	// extracted text even when an alternate source is configured.
	passthrough bool
}

// defaultOptions returns the default run options.
func defaultOptions() runOptions {
	return runOptions{
		pages:       nil, // nil means all pages
		order:       "",  // keep resolution order
		cfg:         reconcile.DefaultConfig(),
		passthrough: false,
	}
}

// clone creates a deep copy of runOptions.
func (o runOptions) clone() runOptions {
	newOpts := o
	newOpts.pages = append([]int(nil), o.pages...)
	newOpts.spans = append([]tokens.Span(nil), o.spans...)
	return newOpts
}
