package model

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// PageData holds one page's extracted content, partitioned into text and
// non-text objects. Both partitions preserve the decoder's resolution
// order; merging them by Index reproduces the full per-page order.
type PageData struct {
	// PageID is the 1-based page identifier, matching the source
	// document's numbering.
	PageID int `json:"pageid"`

	// TextGroups are the text-bearing objects, in resolution order.
	TextGroups []ContentObject `json:"text_groups"`

	// NonTextGroups are the remaining objects, in resolution order.
	// Their Content is always nil.
	NonTextGroups []ContentObject `json:"non_text_groups"`
}

// Objects returns the union of both partitions sorted by Index, i.e. the
// page's full resolution order.
func (p PageData) Objects() []ContentObject {
	all := make([]ContentObject, 0, len(p.TextGroups)+len(p.NonTextGroups))
	all = append(all, p.TextGroups...)
	all = append(all, p.NonTextGroups...)
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}

// Validate checks the partition invariants: indices across both groups form
// {0..n-1} with no gaps or duplicates, text groups carry content, non-text
// groups do not.
func (p PageData) Validate() error {
	n := len(p.TextGroups) + len(p.NonTextGroups)
	seen := make(map[int]bool, n)
	for _, o := range p.TextGroups {
		if !o.IsText() {
			return fmt.Errorf("page %d: text group %d has nil content", p.PageID, o.Index)
		}
		seen[o.Index] = true
	}
	for _, o := range p.NonTextGroups {
		if o.IsText() {
			return fmt.Errorf("page %d: non-text group %d has content", p.PageID, o.Index)
		}
		seen[o.Index] = true
	}
	if len(seen) != n {
		return fmt.Errorf("page %d: duplicate object indices", p.PageID)
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			return fmt.Errorf("page %d: missing object index %d", p.PageID, i)
		}
	}
	return nil
}

// MarshalPages encodes a page list in the persisted format: a top-level
// JSON array of page entries ordered as given.
func MarshalPages(pages []PageData) ([]byte, error) {
	if pages == nil {
		pages = []PageData{}
	}
	return json.Marshal(pages)
}

// UnmarshalPages decodes a page list from the persisted format.
func UnmarshalPages(data []byte) ([]PageData, error) {
	var pages []PageData
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decoding page data: %w", err)
	}
	return pages, nil
}

// WritePages streams the persisted format to w.
func WritePages(w io.Writer, pages []PageData) error {
	if pages == nil {
		pages = []PageData{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(pages)
}

// ReadPages decodes the persisted format from r.
func ReadPages(r io.Reader) ([]PageData, error) {
	var pages []PageData
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return nil, fmt.Errorf("decoding page data: %w", err)
	}
	return pages, nil
}
