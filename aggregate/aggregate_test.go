package aggregate

import (
	"math"
	"testing"

	"github.com/tsawler/crosscheck/decode"
	"github.com/tsawler/crosscheck/model"
)

func textObj(text string, x0, y0, x1, y1 float64) decode.Object {
	return decode.Object{
		Kind:    "TextLine",
		BBox:    model.NewRect(x0, y0, x1, y1),
		Text:    text,
		HasText: true,
	}
}

func rectObj(x0, y0, x1, y1 float64) decode.Object {
	return decode.Object{Kind: "Rect", BBox: model.NewRect(x0, y0, x1, y1)}
}

func TestFromObject(t *testing.T) {
	tests := []struct {
		name     string
		in       decode.Object
		wantText bool
		wantType string
	}{
		{"text line", textObj("hello", 0, 0, 10, 10), true, "TextLine"},
		{"empty text line", textObj("", 0, 0, 10, 10), true, "TextLine"},
		{"rect", rectObj(0, 0, 10, 10), false, "Rect"},
		{"unknown kind", decode.Object{Kind: "Widget"}, false, "Widget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromObject(5, tt.in)
			if got.Index != 5 {
				t.Errorf("index = %d, want 5", got.Index)
			}
			if got.IsText() != tt.wantText {
				t.Errorf("IsText() = %v, want %v", got.IsText(), tt.wantText)
			}
			if got.Type != tt.wantType {
				t.Errorf("type = %q, want %q", got.Type, tt.wantType)
			}
		})
	}
}

func TestPagePartition(t *testing.T) {
	page := &decode.Page{
		Number: 3,
		Objects: []decode.Object{
			textObj("first", 0, 700, 100, 712),
			rectObj(0, 0, 612, 1),
			textObj("second", 0, 650, 100, 662),
		},
	}

	pd, warnings := Page(page)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if pd.PageID != 3 {
		t.Errorf("pageid = %d, want 3", pd.PageID)
	}
	if len(pd.TextGroups) != 2 || len(pd.NonTextGroups) != 1 {
		t.Fatalf("partition = %d text, %d non-text, want 2/1",
			len(pd.TextGroups), len(pd.NonTextGroups))
	}
	if err := pd.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// Resolution order preserved across the partition.
	objs := pd.Objects()
	if objs[0].Text() != "first" || objs[1].Type != "Rect" || objs[2].Text() != "second" {
		t.Errorf("resolution order lost: %v", objs)
	}
}

func TestPageSkipsMalformedObject(t *testing.T) {
	page := &decode.Page{
		Number: 1,
		Objects: []decode.Object{
			textObj("good", 0, 0, 10, 10),
			{Kind: "Curve", BBox: model.Rect{X0: math.NaN()}},
			textObj("also good", 0, 20, 10, 30),
		},
	}

	pd, warnings := Page(page)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Kind != model.WarnMalformedObject || warnings[0].Page != 1 {
		t.Errorf("unexpected warning: %+v", warnings[0])
	}

	// Surviving objects are reindexed densely.
	if err := pd.Validate(); err != nil {
		t.Errorf("Validate after skip: %v", err)
	}
	if len(pd.TextGroups) != 2 {
		t.Errorf("got %d text groups, want 2", len(pd.TextGroups))
	}
}

func TestPageEmpty(t *testing.T) {
	pd, warnings := Page(&decode.Page{Number: 7})
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if pd.TextGroups == nil || pd.NonTextGroups == nil {
		t.Error("partitions must be empty slices, not nil, for serialization")
	}
}

func TestReorderLRTB(t *testing.T) {
	// Two lines stacked vertically, second one higher on the page.
	lower := model.NewTextObject(0, model.NewRect(10, 100, 110, 112), "TextLine", "lower")
	upper := model.NewTextObject(1, model.NewRect(10, 700, 110, 712), "TextLine", "upper")

	out, err := Reorder([]model.ContentObject{lower, upper}, LRTB)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if out[0].Text() != "upper" || out[1].Text() != "lower" {
		t.Errorf("order = [%q, %q], want upper first", out[0].Text(), out[1].Text())
	}
	if out[0].Index != 0 || out[1].Index != 1 {
		t.Errorf("reindex = [%d, %d], want [0, 1]", out[0].Index, out[1].Index)
	}
}

func TestReorderLRTBColumns(t *testing.T) {
	// Same height, left column before right column.
	right := model.NewTextObject(0, model.NewRect(300, 700, 400, 712), "TextLine", "right")
	left := model.NewTextObject(1, model.NewRect(10, 700, 110, 712), "TextLine", "left")

	out, err := Reorder([]model.ContentObject{right, left}, LRTB)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if out[0].Text() != "left" {
		t.Errorf("first = %q, want %q", out[0].Text(), "left")
	}
}

func TestReorderTBRL(t *testing.T) {
	// Vertical layout: rightmost column first.
	left := model.NewTextObject(0, model.NewRect(10, 100, 30, 700), "TextBoxVertical", "left")
	right := model.NewTextObject(1, model.NewRect(500, 100, 520, 700), "TextBoxVertical", "right")

	out, err := Reorder([]model.ContentObject{left, right}, TBRL)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if out[0].Text() != "right" {
		t.Errorf("first = %q, want %q", out[0].Text(), "right")
	}
}

func TestReorderUnknownOrder(t *testing.T) {
	if _, err := Reorder(nil, Order("spiral")); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	objs := []model.ContentObject{
		model.NewTextObject(0, model.NewRect(10, 100, 110, 112), "TextLine", "a"),
		model.NewTextObject(1, model.NewRect(10, 700, 110, 712), "TextLine", "b"),
	}
	if _, err := Reorder(objs, LRTB); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if objs[0].Text() != "a" || objs[0].Index != 0 {
		t.Error("Reorder must not mutate its input")
	}
}

func TestReorderPage(t *testing.T) {
	pd := model.PageData{
		PageID: 1,
		TextGroups: []model.ContentObject{
			model.NewTextObject(0, model.NewRect(10, 100, 110, 112), "TextLine", "lower"),
			model.NewTextObject(2, model.NewRect(10, 700, 110, 712), "TextLine", "upper"),
		},
		NonTextGroups: []model.ContentObject{
			model.NewObject(1, model.NewRect(0, 400, 612, 401), "Rect"),
		},
	}

	out, err := ReorderPage(pd, LRTB)
	if err != nil {
		t.Fatalf("ReorderPage: %v", err)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	objs := out.Objects()
	if objs[0].Text() != "upper" || objs[1].Type != "Rect" || objs[2].Text() != "lower" {
		t.Errorf("reading order = [%q %q %q], want upper, Rect, lower",
			objs[0].Text(), objs[1].Type, objs[2].Text())
	}
}
