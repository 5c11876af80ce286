package crosscheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/crosscheck/aggregate"
	"github.com/tsawler/crosscheck/decode"
	"github.com/tsawler/crosscheck/draw"
	"github.com/tsawler/crosscheck/model"
	"github.com/tsawler/crosscheck/reconcile"
	"github.com/tsawler/crosscheck/tokens"
)

// Reconciler provides a fluent interface for extracting and reconciling
// page content. Each configuration method returns a new Reconciler
// instance, making it safe for concurrent use and allowing method chaining.
type Reconciler struct {
	// Source
	filename string

	// Decoder
	decoder decode.Decoder

	// Lifecycle
	ownsDecoder   bool // true if we opened the decoder and should close it
	decoderOpened bool // true if the decoder has been opened

	// Configuration
	options runOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Reconciler with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (r *Reconciler) clone() *Reconciler {
	return &Reconciler{
		filename:      r.filename,
		decoder:       r.decoder,
		ownsDecoder:   r.ownsDecoder,
		decoderOpened: r.decoderOpened,
		options:       r.options.clone(),
		err:           r.err,
	}
}

// ensureDecoder opens the decoder if not already open.
func (r *Reconciler) ensureDecoder() error {
	if r.decoderOpened {
		return nil
	}
	if r.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	d, err := decode.Open(r.filename)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	r.decoder = d
	r.ownsDecoder = true
	r.decoderOpened = true
	return nil
}

// Close releases resources associated with the Reconciler.
// It is safe to call Close multiple times.
func (r *Reconciler) Close() error {
	if r.ownsDecoder && r.decoder != nil {
		err := r.decoder.Close()
		r.decoder = nil
		r.ownsDecoder = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Reconciler instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	pages, _, err := crosscheck.Open("doc.pdf").Pages(1, 3, 5).Run()
func (r *Reconciler) Pages(pages ...int) *Reconciler {
	newRec := r.clone()
	newRec.options.pages = append(newRec.options.pages, pages...)
	return newRec
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	pages, _, err := crosscheck.Open("doc.pdf").PageRange(5, 10).Run()
func (r *Reconciler) PageRange(start, end int) *Reconciler {
	newRec := r.clone()
	for i := start; i <= end; i++ {
		newRec.options.pages = append(newRec.options.pages, i)
	}
	return newRec
}

// WithRawText supplies the alternate plain-text rendering of the document.
// The stream is split into page-attributed spans when a terminal operation
// runs; a stream with no page grouping aborts the run with
// tokens.ErrSourceUngrouped.
//
// Example:
//
//	raw, _ := os.Open("document.txt")
//	pages, _, err := crosscheck.Open("doc.pdf").WithRawText(raw).Run()
func (r *Reconciler) WithRawText(src io.Reader) *Reconciler {
	newRec := r.clone()
	newRec.options.rawText = src
	return newRec
}

// WithSplitOptions sets the page-splitting policy for WithRawText input.
func (r *Reconciler) WithSplitOptions(opts tokens.SplitOptions) *Reconciler {
	newRec := r.clone()
	newRec.options.splitOpts = opts
	return newRec
}

// WithSpans supplies pre-built alternate-source spans, bypassing raw-text
// splitting. Takes precedence over WithRawText.
//
// Example:
//
//	spans := []tokens.Span{{Page: 1, Text: "Hello World"}}
//	pages, _, err := crosscheck.Open("doc.pdf").WithSpans(spans).Run()
func (r *Reconciler) WithSpans(spans []tokens.Span) *Reconciler {
	newRec := r.clone()
	newRec.options.spans = append([]tokens.Span(nil), spans...)
	newRec.options.spansSet = true
	return newRec
}

// WithConfig sets the matching policy for reconciliation.
//
// Example:
//
//	cfg := reconcile.DefaultConfig()
//	cfg.Threshold = 0.9
//	pages, _, err := crosscheck.Open("doc.pdf").WithRawText(raw).WithConfig(cfg).Run()
func (r *Reconciler) WithConfig(cfg reconcile.Config) *Reconciler {
	newRec := r.clone()
	newRec.options.cfg = cfg
	return newRec
}

// WithOrder reorders each page's objects into the given reading order
// before reconciliation. By default objects keep the decoder's resolution
// order.
//
// Example:
//
//	pages, _, err := crosscheck.Open("doc.pdf").WithOrder(aggregate.LRTB).Run()
func (r *Reconciler) WithOrder(order aggregate.Order) *Reconciler {
	newRec := r.clone()
	newRec.options.order = order
	return newRec
}

// Passthrough disables reconciliation: objects keep their extracted text
// even when an alternate source is configured. The documented escape hatch
// for the matcher's known instability under cascading mismatches.
//
// Example:
//
//	pages, _, err := crosscheck.Open("doc.pdf").WithRawText(raw).Passthrough().Run()
func (r *Reconciler) Passthrough() *Reconciler {
	newRec := r.clone()
	newRec.options.passthrough = true
	return newRec
}

// PageCount returns the total number of pages in the document.
// Note: This does NOT close the decoder, allowing further operations.
//
// Example:
//
//	rec := crosscheck.Open("document.pdf")
//	defer rec.Close()
//	count, err := rec.PageCount()
func (r *Reconciler) PageCount() (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if err := r.ensureDecoder(); err != nil {
		return 0, err
	}
	return r.decoder.PageCount()
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Run processes the configured pages and returns their PageData in
// requested page order, along with any warnings. This is a terminal
// operation that closes the underlying decoder.
//
// Unreadable pages are omitted from the result and recorded as warnings;
// a document that cannot be opened, or an alternate source with no page
// grouping, aborts the run with an error.
//
// Example:
//
//	pages, warnings, err := crosscheck.Open("document.pdf").WithRawText(raw).Run()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", crosscheck.FormatWarnings(warnings))
//	}
func (r *Reconciler) Run() ([]model.PageData, []Warning, error) {
	pages, _, warnings, err := r.run()
	return pages, warnings, err
}

// Renders processes the configured pages and returns drawable page
// renderings (dimensions plus reconciled objects) for the draw package.
// This is a terminal operation that closes the underlying decoder.
//
// Example:
//
//	renders, _, err := crosscheck.Open("document.pdf").Renders()
//	err = draw.SavePNG("layout.png", renders, draw.Options{Annotate: true})
func (r *Reconciler) Renders() ([]draw.PageRender, []Warning, error) {
	_, renders, warnings, err := r.run()
	return renders, warnings, err
}

// WriteJSON runs the pipeline and streams the persisted page format to w.
// This is a terminal operation that closes the underlying decoder.
//
// Example:
//
//	f, _ := os.Create("pages.json")
//	defer f.Close()
//	warnings, err := crosscheck.Open("document.pdf").WithRawText(raw).WriteJSON(f)
func (r *Reconciler) WriteJSON(w io.Writer) ([]Warning, error) {
	pages, _, warnings, err := r.run()
	if err != nil {
		return warnings, err
	}
	if err := model.WritePages(w, pages); err != nil {
		return warnings, fmt.Errorf("writing results: %w", err)
	}
	return warnings, nil
}

// RenderPNG runs the pipeline and writes an annotated box diagram of the
// processed pages as PNG to w. This is a terminal operation that closes
// the underlying decoder.
func (r *Reconciler) RenderPNG(w io.Writer, opts draw.Options) ([]Warning, error) {
	_, renders, warnings, err := r.run()
	if err != nil {
		return warnings, err
	}
	if err := draw.WritePNG(w, renders, opts); err != nil {
		return warnings, fmt.Errorf("rendering pages: %w", err)
	}
	return warnings, nil
}

// run executes the full pipeline: decode each requested page, aggregate it
// into the page model, and reconcile against the page's alternate-source
// spans when an alternate source is configured.
func (r *Reconciler) run() ([]model.PageData, []draw.PageRender, []Warning, error) {
	if r.err != nil {
		return nil, nil, nil, r.err
	}
	if err := r.ensureDecoder(); err != nil {
		return nil, nil, nil, err
	}
	defer r.Close()

	pageNumbers, err := r.resolvePages()
	if err != nil {
		return nil, nil, nil, err
	}

	spans, haveAlternate, err := r.resolveSpans()
	if err != nil {
		return nil, nil, nil, err
	}
	byPage := tokens.ByPage(spans)

	var matcher *reconcile.Matcher
	if haveAlternate && !r.options.passthrough {
		matcher = reconcile.NewMatcher(r.options.cfg)
	}

	var warnings []Warning
	results := make([]model.PageData, 0, len(pageNumbers))
	renders := make([]draw.PageRender, 0, len(pageNumbers))

	for _, n := range pageNumbers {
		page, err := r.decoder.Page(n)
		if err != nil {
			var unavailable *decode.PageUnavailableError
			if errors.As(err, &unavailable) {
				warnings = append(warnings, Warning{
					Kind:    model.WarnPageUnavailable,
					Page:    n,
					Message: unavailable.Error(),
				})
				continue
			}
			return nil, nil, warnings, fmt.Errorf("page %d: %w", n, err)
		}

		pd, aggWarnings := aggregate.Page(page)
		warnings = append(warnings, aggWarnings...)

		if r.options.order != "" {
			pd, err = aggregate.ReorderPage(pd, r.options.order)
			if err != nil {
				return nil, nil, warnings, err
			}
		}

		if matcher != nil {
			var matchWarnings []Warning
			pd, matchWarnings = matcher.Page(pd, byPage[n])
			warnings = append(warnings, matchWarnings...)
		}

		results = append(results, pd)
		renders = append(renders, draw.PageRender{
			Width:   page.Width,
			Height:  page.Height,
			Objects: pd.Objects(),
		})
	}

	return results, renders, warnings, nil
}

// resolveSpans produces the alternate-source spans, if any source was
// configured. Pre-built spans win over raw text.
func (r *Reconciler) resolveSpans() ([]tokens.Span, bool, error) {
	if r.options.spansSet {
		return r.options.spans, true, nil
	}
	if r.options.rawText == nil {
		return nil, false, nil
	}
	spans, err := tokens.SplitPages(r.options.rawText, r.options.splitOpts)
	if err != nil {
		return nil, false, fmt.Errorf("alternate source: %w", err)
	}
	return spans, true, nil
}

// resolvePages deduplicates the requested 1-indexed page numbers, keeping
// the caller's order. If no pages were specified, all pages are processed.
// Pages outside the document are not rejected here; the decoder reports
// them as unavailable and the run loop recovers by omitting them.
func (r *Reconciler) resolvePages() ([]int, error) {
	if len(r.options.pages) == 0 {
		pageCount, err := r.decoder.PageCount()
		if err != nil {
			return nil, fmt.Errorf("failed to get page count: %w", err)
		}
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range r.options.pages {
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	return pages, nil
}
