// Package draw renders page content objects as annotated box diagrams,
// for visually checking extraction and reconciliation output. It consumes
// only the public object model fields.
package draw

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/crosscheck/model"
)

// PageRender is one page to draw: its dimensions in points and the objects
// to outline.
type PageRender struct {
	Width   float64
	Height  float64
	Objects []model.ContentObject
}

// Options controls rendering.
type Options struct {
	// Scale converts page points to pixels. Zero means 1.
	Scale float64

	// Spacing is the vertical gap between stacked pages, in pixels.
	Spacing int

	// Annotate draws each object's index and type at its top-left corner.
	Annotate bool

	// TextColor and BoxColor override the defaults (blue for text
	// objects, gray for non-text).
	TextColor color.Color
	BoxColor  color.Color
}

var (
	defaultTextColor = color.RGBA{R: 0x1f, G: 0x4e, B: 0xb0, A: 0xff}
	defaultBoxColor  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	pageBorderColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

const defaultSpacing = 12

// Pages renders the given pages stacked vertically into one image. Each
// page gets a border, each object an outlined box; PDF coordinates are
// y-up, so boxes are flipped into image space.
func Pages(pages []PageRender, opts Options) (image.Image, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to draw")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	textColor := opts.TextColor
	if textColor == nil {
		textColor = defaultTextColor
	}
	boxColor := opts.BoxColor
	if boxColor == nil {
		boxColor = defaultBoxColor
	}

	width := 0
	height := 0
	for _, p := range pages {
		w := int(p.Width*scale) + 1
		if w > width {
			width = w
		}
		height += int(p.Height*scale) + 1 + spacing
	}
	height -= spacing

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), color.White)

	top := 0
	for _, p := range pages {
		pw := int(p.Width * scale)
		ph := int(p.Height * scale)
		pageRect := image.Rect(0, top, pw, top+ph)
		outline(img, pageRect, pageBorderColor)

		for _, o := range p.Objects {
			// Flip y: bbox Y grows up the page, image y grows down.
			x0 := int(o.BBox.X0 * scale)
			x1 := int(o.BBox.X1 * scale)
			y0 := top + ph - int(o.BBox.Y1*scale)
			y1 := top + ph - int(o.BBox.Y0*scale)

			c := boxColor
			if o.IsText() {
				c = textColor
			}
			outline(img, image.Rect(x0, y0, x1, y1), c)

			if opts.Annotate {
				label := fmt.Sprintf("%d %s", o.Index, o.Type)
				drawLabel(img, x0+2, y0-2, label, c)
			}
		}
		top += ph + 1 + spacing
	}
	return img, nil
}

// WritePNG encodes the rendering of pages as PNG to w.
func WritePNG(w io.Writer, pages []PageRender, opts Options) error {
	img, err := Pages(pages, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders pages to a PNG file.
func SavePNG(path string, pages []PageRender, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return WritePNG(f, pages, opts)
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// outline draws a one-pixel rectangle border, clamped to the image.
func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Canon().Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel renders small annotation text with the fixed 7x13 face.
func drawLabel(img *image.RGBA, x, y int, label string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
