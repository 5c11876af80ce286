// Package aggregate turns a decoded page's layout-object stream into the
// serializable page model, partitioned into text and non-text groups with
// resolution order preserved.
package aggregate

import (
	"fmt"

	"github.com/tsawler/crosscheck/decode"
	"github.com/tsawler/crosscheck/model"
)

// FromObject converts one layout object into a ContentObject. The
// conversion is total: any kind the decoder reports is accepted, and a
// kind without text maps to a non-text object carrying its kind string.
// The bounding box is normalized before storage.
func FromObject(index int, o decode.Object) model.ContentObject {
	if o.HasText {
		return model.NewTextObject(index, o.BBox, o.Kind, o.Text)
	}
	return model.NewObject(index, o.BBox, o.Kind)
}

// Page converts a decoded page into PageData. Objects with unusable
// geometry (non-finite coordinates) are skipped and recorded as warnings;
// a malformed object is never fatal to the page.
//
// Indices are assigned in resolution order over the objects that survive,
// so the resulting page always satisfies the {0..n-1} index invariant.
func Page(p *decode.Page) (model.PageData, []model.Warning) {
	pd := model.PageData{
		PageID:        p.Number,
		TextGroups:    []model.ContentObject{},
		NonTextGroups: []model.ContentObject{},
	}

	var warnings []model.Warning
	index := 0
	for i, obj := range p.Objects {
		if !obj.BBox.Normalize().IsValid() {
			warnings = append(warnings, model.Warning{
				Kind:    model.WarnMalformedObject,
				Page:    p.Number,
				Message: fmt.Sprintf("object %d (%s) skipped: unusable geometry", i, obj.Kind),
			})
			continue
		}

		co := FromObject(index, obj)
		if co.IsText() {
			pd.TextGroups = append(pd.TextGroups, co)
		} else {
			pd.NonTextGroups = append(pd.NonTextGroups, co)
		}
		index++
	}

	return pd, warnings
}
