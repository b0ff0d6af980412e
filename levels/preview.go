package levels

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/xfmoulet/qoi"
	xdraw "golang.org/x/image/draw"

	"github.com/PvttJebus/OhMyGord/grid"
)

const (
	FormatPNG = "png"
	FormatQOI = "qoi"

	DefaultPreviewSize = 256
	previewCellPixels  = 4
)

var previewBackground = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Colors supplies swatch colours for preview rendering.
type Colors interface {
	TileColor(name string) color.RGBA
	TemplateColor(index int) color.RGBA
}

// RenderPreview draws a top down thumbnail of doc into a size x size image.
// The level is scaled to fit and centred.
func RenderPreview(doc *Document, g grid.Grid, colors Colors, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultPreviewSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	fill(dst, dst.Bounds(), previewBackground)
	if doc == nil || (len(doc.Tiles) == 0 && len(doc.Objects) == 0) {
		return dst
	}

	type box struct {
		r   grid.Rect
		col color.RGBA
	}
	var boxes []box
	for _, t := range doc.Tiles {
		col := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if colors != nil {
			col = colors.TileColor(t.TileName)
		}
		boxes = append(boxes, box{r: grid.Rect{X: float64(t.Position.X), Y: float64(t.Position.Y), Width: 1, Height: 1}, col: col})
	}
	cell := g.CellSize
	if cell <= 0 {
		cell = 1
	}
	for _, o := range doc.Objects {
		w := o.Size.X * nonZero(o.Scale.X) / cell
		h := o.Size.Y * nonZero(o.Scale.Y) / cell
		center := grid.Vec2{X: (o.Position.X - g.Origin.X) / cell, Y: (o.Position.Y - g.Origin.Y) / cell}
		col := color.RGBA{R: 70, G: 130, B: 180, A: 255}
		if colors != nil {
			col = colors.TemplateColor(o.PrefabIndex)
		}
		boxes = append(boxes, box{r: grid.RectAround(center, math.Max(w, 0.25), math.Max(h, 0.25)), col: col})
	}

	bounds := boxes[0].r
	for _, b := range boxes[1:] {
		bounds = bounds.Union(b.r)
	}
	srcW := int(math.Ceil(bounds.Width*previewCellPixels)) + 1
	srcH := int(math.Ceil(bounds.Height*previewCellPixels)) + 1
	src := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	fill(src, src.Bounds(), previewBackground)
	for _, b := range boxes {
		r := image.Rect(
			int(math.Floor((b.r.X-bounds.X)*previewCellPixels)),
			int(math.Floor((b.r.Y-bounds.Y)*previewCellPixels)),
			int(math.Ceil((b.r.X+b.r.Width-bounds.X)*previewCellPixels)),
			int(math.Ceil((b.r.Y+b.r.Height-bounds.Y)*previewCellPixels)),
		)
		fill(src, r, b.col)
	}

	scale := math.Min(float64(size)/float64(srcW), float64(size)/float64(srcH))
	outW := int(math.Max(1, float64(srcW)*scale))
	outH := int(math.Max(1, float64(srcH)*scale))
	offX := (size - outW) / 2
	offY := (size - outH) / 2
	xdraw.NearestNeighbor.Scale(dst, image.Rect(offX, offY, offX+outW, offY+outH), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// EncodePreview writes img in the given format.
func EncodePreview(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatQOI:
		return qoi.Encode(w, img)
	default:
		return fmt.Errorf("levels: unsupported preview format %q", format)
	}
}

// DecodePreview reads an image written by EncodePreview.
func DecodePreview(r io.Reader, format string) (image.Image, error) {
	switch format {
	case FormatPNG, "":
		return png.Decode(r)
	case FormatQOI:
		return qoi.Decode(r)
	default:
		return nil, fmt.Errorf("levels: unsupported preview format %q", format)
	}
}

// PreviewBytes renders and encodes a preview in one step.
func PreviewBytes(doc *Document, g grid.Grid, colors Colors, size int, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePreview(&buf, RenderPreview(doc, g, colors, size), format); err != nil {
		return nil, fmt.Errorf("levels: encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
