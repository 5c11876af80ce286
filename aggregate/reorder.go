package aggregate

import (
	"fmt"
	"sort"

	"github.com/tsawler/crosscheck/model"
)

// Order selects a reading-order heuristic for Reorder.
type Order string

const (
	// LRTB orders objects left-to-right, top-to-bottom (western layouts).
	LRTB Order = "lrtb"

	// TBRL orders objects top-to-bottom, right-to-left (vertical CJK
	// layouts).
	TBRL Order = "tbrl"
)

// boxesFlow weights the relative importance of horizontal versus vertical
// position in the reading-order keys. 0.5 balances the two; the value
// matches common layout-analysis defaults.
const boxesFlow = 0.5

// Reorder returns a copy of objs sorted into reading order and reindexed
// from zero. The input is not modified. An unknown order is an error.
//
// Both heuristics reduce each box to a single scalar key, so columns and
// sidebars interleave the way a flow-based layout pass would interleave
// them, not the way a human reader would.
func Reorder(objs []model.ContentObject, order Order) ([]model.ContentObject, error) {
	var key func(model.ContentObject) float64
	switch order {
	case LRTB:
		key = func(o model.ContentObject) float64 {
			return (1-boxesFlow)*o.BBox.X0 - (1+boxesFlow)*(o.BBox.Y0+o.BBox.Y1)
		}
	case TBRL:
		key = func(o model.ContentObject) float64 {
			return -(1+boxesFlow)*(o.BBox.X0+o.BBox.X1) - (1-boxesFlow)*o.BBox.Y1
		}
	default:
		return nil, fmt.Errorf("unknown reading order %q", order)
	}

	out := make([]model.ContentObject, len(objs))
	copy(out, objs)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	for i := range out {
		out[i].Index = i
	}
	return out, nil
}

// ReorderPage applies Reorder to both partitions of a page together,
// preserving the partition while assigning a single consistent index
// sequence across text and non-text groups.
func ReorderPage(p model.PageData, order Order) (model.PageData, error) {
	all, err := Reorder(p.Objects(), order)
	if err != nil {
		return model.PageData{}, err
	}

	out := model.PageData{
		PageID:        p.PageID,
		TextGroups:    []model.ContentObject{},
		NonTextGroups: []model.ContentObject{},
	}
	for _, o := range all {
		if o.IsText() {
			out.TextGroups = append(out.TextGroups, o)
		} else {
			out.NonTextGroups = append(out.NonTextGroups, o)
		}
	}
	return out, nil
}
