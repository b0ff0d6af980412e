package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/objects"
)

const previewDrawSize = 128

type drawColors struct {
	background     color.RGBA
	gridLine       color.RGBA
	object         color.RGBA
	highlight      color.RGBA
	groupHighlight color.RGBA
	brush          color.RGBA
	rubberBand     color.RGBA
}

func newDrawColors(cfg config.Config) drawColors {
	return drawColors{
		background:     color.RGBA{R: 24, G: 24, B: 32, A: 255},
		gridLine:       color.RGBA{R: 255, G: 255, B: 255, A: 24},
		object:         config.Color(cfg.Materials.Default, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		highlight:      config.Color(cfg.Materials.Highlight, color.RGBA{R: 255, G: 215, A: 255}),
		groupHighlight: config.Color(cfg.Materials.GroupHighlight, color.RGBA{R: 50, G: 205, B: 50, A: 255}),
		brush:          color.RGBA{R: 255, G: 255, B: 255, A: 160},
		rubberBand:     color.RGBA{R: 120, G: 170, B: 255, A: 255},
	}
}

// screenRect converts a world rectangle to screen pixels.
func (g *EditorGame) screenRect(r grid.Rect) (x, y, w, h float32) {
	cam := g.ed.Camera()
	p := cam.WorldToScreen(r.Min())
	return float32(p.X), float32(p.Y), float32(r.Width * cam.Zoom), float32(r.Height * cam.Zoom)
}

func (g *EditorGame) inView(r grid.Rect) bool {
	return g.ed.Camera().ViewRect().Overlaps(r)
}

func (g *EditorGame) drawTiles(screen *ebiten.Image) {
	gr := g.ed.Grid()
	tiles := g.ed.Tiles()
	palette := g.ed.Palette()
	for _, c := range tiles.Cells() {
		r := gr.CellRect(c)
		if !g.inView(r) {
			continue
		}
		name, _ := tiles.GetTile(c)
		x, y, w, h := g.screenRect(r)
		vector.DrawFilledRect(screen, x, y, w, h, palette.TileColor(name), false)
	}

	sel := g.ed.Selection()
	for _, c := range sel.Cells() {
		x, y, w, h := g.screenRect(gr.CellRect(c))
		vector.StrokeRect(screen, x, y, w, h, 2, g.colors.highlight, false)
	}
}

func (g *EditorGame) objectColor(id objects.ID) color.RGBA {
	reg := g.ed.Objects()
	if tint := reg.Tint(id); tint.A != 0 {
		return tint
	}
	if tpl, ok := reg.Template(id); ok {
		return g.ed.Palette().TemplateColor(tpl.Index)
	}
	return g.colors.object
}

func (g *EditorGame) drawObjects(screen *ebiten.Image) {
	reg := g.ed.Objects()
	for _, id := range reg.IDs() {
		r, ok := reg.Bounds(id)
		if !ok || !g.inView(r) {
			continue
		}
		x, y, w, h := g.screenRect(r)
		vector.DrawFilledRect(screen, x, y, w, h, g.objectColor(id), false)

		material, _ := reg.Material(id)
		switch material {
		case editor.MaterialHighlight:
			vector.StrokeRect(screen, x, y, w, h, 3, g.colors.highlight, false)
		case editor.MaterialGroupHighlight:
			vector.StrokeRect(screen, x, y, w, h, 3, g.colors.groupHighlight, false)
		default:
			vector.StrokeRect(screen, x, y, w, h, 1, g.colors.object, false)
		}
		if _, interactable := reg.Interactable(id); interactable {
			vector.DrawFilledCircle(screen, x+w/2, y+h/2, float32(math.Max(2, float64(w)/8)), g.colors.object, false)
		}
	}
}

func (g *EditorGame) drawOverlay(screen *ebiten.Image) {
	gr := g.ed.Grid()
	o := g.ed.Overlay()

	palette := g.ed.Palette()
	for _, t := range o.MovingTiles {
		r := gr.CellRect(t.Cell)
		r.X += o.DragOffset.X
		r.Y += o.DragOffset.Y
		x, y, w, h := g.screenRect(r)
		vector.DrawFilledRect(screen, x, y, w, h, palette.TileColor(t.Name), false)
		vector.StrokeRect(screen, x, y, w, h, 2, g.colors.highlight, false)
	}

	for _, c := range o.Brush {
		x, y, w, h := g.screenRect(gr.CellRect(c))
		vector.StrokeRect(screen, x, y, w, h, 1, g.colors.brush, false)
	}

	if o.HasRect {
		r := o.SelectionRect.Normalize()
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, g.colors.rubberBand, false)
	}
}

// drawGrid draws cell lines when cells are large enough to tell apart.
func (g *EditorGame) drawGrid(screen *ebiten.Image) {
	cam := g.ed.Camera()
	gr := g.ed.Grid()
	if cam.Zoom*gr.CellSize < 8 {
		return
	}
	lo, hi := gr.CellBounds(cam.ViewRect())
	for cx := lo.X; cx <= hi.X+1; cx++ {
		p := cam.WorldToScreen(gr.CellRect(grid.Cell{X: cx, Y: lo.Y}).Min())
		vector.StrokeLine(screen, float32(p.X), 0, float32(p.X), float32(cam.Height), 1, g.colors.gridLine, false)
	}
	for cy := lo.Y; cy <= hi.Y+1; cy++ {
		p := cam.WorldToScreen(gr.CellRect(grid.Cell{X: lo.X, Y: cy}).Min())
		vector.StrokeLine(screen, 0, float32(p.Y), float32(cam.Width), float32(p.Y), 1, g.colors.gridLine, false)
	}
}

func (g *EditorGame) drawStatus(screen *ebiten.Image) {
	ed := g.ed
	name := ed.LevelName()
	if name == "" {
		name = "(unsaved)"
	}
	cells, objs := ed.Selection().Counts()
	status := fmt.Sprintf("%s | %s | %s | tile %s | brush %d | cell %v | sel %d tiles %d objects | %s",
		ed.Mode(), ed.State(), ed.Tool(), ed.CurrentTile(), ed.BrushSize(), ed.PointerCell(), cells, objs, name)
	ebitenutil.DebugPrintAt(screen, status, leftPanelWidth+8, screen.Bounds().Dy()-20)
}

func (g *EditorGame) drawPreview(screen *ebiten.Image) {
	if g.preview == nil {
		return
	}
	b := screen.Bounds()
	pb := g.preview.Bounds()
	scale := float64(previewDrawSize) / math.Max(1, float64(max(pb.Dx(), pb.Dy())))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(b.Dx()-rightPanelWidth-previewDrawSize-8), float64(b.Dy()-previewDrawSize-32))
	screen.DrawImage(g.preview, op)
	ebitenutil.DebugPrintAt(screen, g.previewName, b.Dx()-rightPanelWidth-previewDrawSize-8, b.Dy()-previewDrawSize-48)
}
