package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestRectNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{
			name: "already normalized",
			in:   Rect{X0: 1, Y0: 2, X1: 3, Y1: 4},
			want: Rect{X0: 1, Y0: 2, X1: 3, Y1: 4},
		},
		{
			name: "inverted y",
			in:   Rect{X0: 1, Y0: 4, X1: 3, Y1: 2},
			want: Rect{X0: 1, Y0: 2, X1: 3, Y1: 4},
		},
		{
			name: "inverted both",
			in:   Rect{X0: 3, Y0: 4, X1: 1, Y1: 2},
			want: Rect{X0: 1, Y0: 2, X1: 3, Y1: 4},
		},
		{
			name: "degenerate point",
			in:   Rect{X0: 5, Y0: 5, X1: 5, Y1: 5},
			want: Rect{X0: 5, Y0: 5, X1: 5, Y1: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("normalized rect %+v should be valid", got)
			}
		})
	}
}

func TestRectIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want bool
	}{
		{"normalized", Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, true},
		{"zero size", Rect{}, true},
		{"not normalized", Rect{X0: 10, Y0: 0, X1: 0, Y1: 10}, false},
		{"NaN coordinate", Rect{X0: math.NaN()}, false},
		{"infinite coordinate", Rect{X1: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectJSON(t *testing.T) {
	r := NewRect(1.5, 2.25, 3.125, 4.0625)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), "[1.5,2.25,3.125,4.0625]"; got != want {
		t.Errorf("marshaled form = %s, want %s", got, want)
	}

	var back Rect
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != r {
		t.Errorf("round trip = %+v, want %+v", back, r)
	}
}

func TestRectUnmarshalRejectsWrongLength(t *testing.T) {
	var r Rect
	if err := json.Unmarshal([]byte("[1,2,3]"), &r); err == nil {
		t.Error("expected error for 3-element bbox")
	}
}

func TestContentObjectContentDistinction(t *testing.T) {
	text := NewTextObject(0, Rect{X1: 1, Y1: 1}, "TextLine", "")
	nonText := NewObject(1, Rect{X1: 1, Y1: 1}, "Figure")

	if !text.IsText() {
		t.Error("text object with empty content should still be text")
	}
	if nonText.IsText() {
		t.Error("non-text object should not be text")
	}

	// Empty text serializes as "", absent content as null.
	data, err := json.Marshal([]ContentObject{text, nonText})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"content":""`) {
		t.Errorf("empty text should serialize as empty string: %s", s)
	}
	if !strings.Contains(s, `"content":null`) {
		t.Errorf("absent content should serialize as null: %s", s)
	}
}

func TestWithContent(t *testing.T) {
	obj := NewTextObject(3, NewRect(1, 2, 3, 4), "TextBox", "original")
	replaced := obj.WithContent("better")

	if replaced.Text() != "better" {
		t.Errorf("content = %q, want %q", replaced.Text(), "better")
	}
	if replaced.Index != obj.Index || replaced.BBox != obj.BBox || replaced.Type != obj.Type {
		t.Error("WithContent must leave index, bbox and type unchanged")
	}
	if obj.Text() != "original" {
		t.Error("WithContent must not modify the receiver")
	}
}

func TestPageDataValidate(t *testing.T) {
	box := Rect{X1: 1, Y1: 1}

	tests := []struct {
		name    string
		page    PageData
		wantErr bool
	}{
		{
			name: "valid partition",
			page: PageData{
				PageID:        1,
				TextGroups:    []ContentObject{NewTextObject(0, box, "TextLine", "a"), NewTextObject(2, box, "TextLine", "b")},
				NonTextGroups: []ContentObject{NewObject(1, box, "Rect")},
			},
		},
		{
			name:    "empty page",
			page:    PageData{PageID: 1},
			wantErr: false,
		},
		{
			name: "missing index",
			page: PageData{
				PageID:     1,
				TextGroups: []ContentObject{NewTextObject(0, box, "TextLine", "a"), NewTextObject(2, box, "TextLine", "b")},
			},
			wantErr: true,
		},
		{
			name: "duplicate index",
			page: PageData{
				PageID:     1,
				TextGroups: []ContentObject{NewTextObject(0, box, "TextLine", "a"), NewTextObject(0, box, "TextLine", "b")},
			},
			wantErr: true,
		},
		{
			name: "non-text with content",
			page: PageData{
				PageID:        1,
				NonTextGroups: []ContentObject{NewTextObject(0, box, "Figure", "oops")},
			},
			wantErr: true,
		},
		{
			name: "text without content",
			page: PageData{
				PageID:     1,
				TextGroups: []ContentObject{NewObject(0, box, "TextLine")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageDataObjectsOrder(t *testing.T) {
	box := Rect{X1: 1, Y1: 1}
	page := PageData{
		PageID:        1,
		TextGroups:    []ContentObject{NewTextObject(2, box, "TextLine", "c"), NewTextObject(0, box, "TextLine", "a")},
		NonTextGroups: []ContentObject{NewObject(1, box, "Rect")},
	}

	objs := page.Objects()
	for i, o := range objs {
		if o.Index != i {
			t.Errorf("Objects()[%d].Index = %d, want %d", i, o.Index, i)
		}
	}
}

func TestPagesRoundTrip(t *testing.T) {
	box := NewRect(10.5, 20.25, 110.75, 32.125)
	pages := []PageData{
		{
			PageID:        1,
			TextGroups:    []ContentObject{NewTextObject(0, box, "TextLine", "Hello World")},
			NonTextGroups: []ContentObject{NewObject(1, box, "Rect")},
		},
		{
			PageID:        2,
			TextGroups:    []ContentObject{},
			NonTextGroups: []ContentObject{},
		},
	}

	var buf bytes.Buffer
	if err := WritePages(&buf, pages); err != nil {
		t.Fatalf("WritePages: %v", err)
	}

	back, err := ReadPages(&buf)
	if err != nil {
		t.Fatalf("ReadPages: %v", err)
	}
	if len(back) != len(pages) {
		t.Fatalf("got %d pages, want %d", len(back), len(pages))
	}

	for i := range pages {
		if back[i].PageID != pages[i].PageID {
			t.Errorf("page %d: pageid = %d, want %d", i, back[i].PageID, pages[i].PageID)
		}
		wantObjs := pages[i].Objects()
		gotObjs := back[i].Objects()
		if len(gotObjs) != len(wantObjs) {
			t.Fatalf("page %d: got %d objects, want %d", i, len(gotObjs), len(wantObjs))
		}
		for j := range wantObjs {
			if gotObjs[j].Index != wantObjs[j].Index ||
				gotObjs[j].BBox != wantObjs[j].BBox ||
				gotObjs[j].Type != wantObjs[j].Type ||
				gotObjs[j].Text() != wantObjs[j].Text() ||
				gotObjs[j].IsText() != wantObjs[j].IsText() {
				t.Errorf("page %d object %d: round trip mismatch: got %+v, want %+v",
					i, j, gotObjs[j], wantObjs[j])
			}
		}
	}
}

func TestMarshalPagesEmpty(t *testing.T) {
	data, err := MarshalPages(nil)
	if err != nil {
		t.Fatalf("MarshalPages: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("nil page list should marshal as [], got %s", data)
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Kind: WarnMalformedObject, Page: 2, Message: "object 3 skipped"},
		{Kind: WarnPageUnavailable, Message: "no page"},
	}
	got := FormatWarnings(warnings)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], "page 2") || !strings.Contains(lines[0], "malformed object") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if strings.Contains(lines[1], "page") && !strings.Contains(lines[1], "no page") {
		t.Errorf("warning without page scope should not carry a page prefix: %q", lines[1])
	}
}
