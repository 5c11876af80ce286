package decode

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/crosscheck/model"
)

// Default page dimensions (US Letter, points) used when a page carries no
// usable MediaBox.
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// Grouping thresholds for assembling positioned characters into lines.
const (
	// rowTolerance is the Y distance within which characters are
	// considered part of the same line.
	rowTolerance = 3.0

	// wordGapMultiplier is the fraction of the font size beyond which a
	// horizontal gap becomes a word boundary.
	wordGapMultiplier = 0.3
)

// PDFDecoder is a Decoder backed by the ledongthuc/pdf reader.
type PDFDecoder struct {
	f *os.File
	r *pdf.Reader
}

// Open opens a PDF file for decoding. The returned decoder must be closed
// when done.
func Open(path string) (*PDFDecoder, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &PDFDecoder{f: f, r: r}, nil
}

// Close releases the underlying file handle.
func (d *PDFDecoder) Close() error {
	if d.f != nil {
		err := d.f.Close()
		d.f = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (d *PDFDecoder) PageCount() (int, error) {
	if d.r == nil {
		return 0, fmt.Errorf("decoder is closed")
	}
	return d.r.NumPage(), nil
}

// Page decodes the 1-based page n into an ordered object stream: one
// "TextLine" object per assembled text line, then one "Rect" object per
// graphics rectangle, in resolution order.
func (d *PDFDecoder) Page(n int) (page *Page, err error) {
	if d.r == nil {
		return nil, fmt.Errorf("decoder is closed")
	}
	if n < 1 || n > d.r.NumPage() {
		return nil, &PageUnavailableError{Page: n, Err: fmt.Errorf("out of range 1-%d", d.r.NumPage())}
	}

	// The underlying reader panics on some malformed content streams;
	// surface that as a recoverable per-page error.
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = &PageUnavailableError{Page: n, Err: fmt.Errorf("content decode: %v", r)}
		}
	}()

	src := d.r.Page(n)
	if src.V.IsNull() {
		return nil, &PageUnavailableError{Page: n}
	}

	width, height := pageSize(src)
	content := src.Content()

	page = &Page{Number: n, Width: width, Height: height}
	for _, line := range assembleLines(content.Text) {
		page.Objects = append(page.Objects, line)
	}
	for _, r := range content.Rect {
		page.Objects = append(page.Objects, Object{
			Kind: "Rect",
			BBox: model.NewRect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y),
		})
	}
	return page, nil
}

// pageSize reads the page's MediaBox and falls back to US Letter when the
// page dictionary carries none.
func pageSize(p pdf.Page) (width, height float64) {
	box := p.V.Key("MediaBox")
	if box.IsNull() || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}
	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	return x1 - x0, y1 - y0
}

// assembleLines groups positioned characters into text line objects.
// Characters are bucketed into rows by Y coordinate, rows are emitted top
// to bottom (PDF coordinates are y-up), and characters within a row are
// joined left to right with spaces inserted at font-relative gaps.
func assembleLines(texts []pdf.Text) []Object {
	chars := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil
	}

	rows := groupRows(chars)
	lines := make([]Object, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		lines = append(lines, rowToLine(row))
	}
	return lines
}

type rowBucket struct {
	yMin, yMax float64
	chars      []pdf.Text
}

func groupRows(chars []pdf.Text) [][]pdf.Text {
	var buckets []rowBucket
	for _, t := range chars {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-rowTolerance && t.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].chars = append(buckets[i].chars, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, chars: []pdf.Text{t}})
		}
	}

	// Top of page first: higher Y is higher on the page.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		rows[i] = b.chars
	}
	return rows
}

// rowToLine joins one row of X-sorted characters into a TextLine object.
func rowToLine(row []pdf.Text) Object {
	var sb strings.Builder
	first := row[0]
	minX, maxX := first.X, first.X+first.W
	minY, maxY := first.Y, first.Y+first.FontSize
	sb.WriteString(first.S)
	lastEnd := first.X + first.W

	for _, t := range row[1:] {
		threshold := t.FontSize * wordGapMultiplier
		if threshold == 0 {
			threshold = 3.0
		}
		if t.X-lastEnd > threshold {
			sb.WriteString(" ")
		}
		sb.WriteString(t.S)

		if t.X < minX {
			minX = t.X
		}
		if t.X+t.W > maxX {
			maxX = t.X + t.W
		}
		if t.Y < minY {
			minY = t.Y
		}
		if t.Y+t.FontSize > maxY {
			maxY = t.Y + t.FontSize
		}
		lastEnd = t.X + t.W
	}

	return Object{
		Kind:    "TextLine",
		BBox:    model.NewRect(minX, minY, maxX, maxY),
		Text:    sb.String(),
		HasText: true,
	}
}
