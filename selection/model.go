// Package selection tracks which tiles and objects the editor has selected
// and which objects are drawn with a temporary highlight material.
package selection

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/objects"
)

// Projector converts between screen and world space.
type Projector interface {
	ScreenToWorld(p grid.Vec2) grid.Vec2
	WorldToScreen(p grid.Vec2) grid.Vec2
}

// Source exposes the tiles and objects a rectangle can select.
type Source interface {
	Grid() grid.Grid
	HasTile(c grid.Cell) bool
	ObjectIDs() []objects.ID
	ObjectBounds(id objects.ID) (grid.Rect, bool)
}

// Model is the current selection. Both sets may be non-empty at once.
type Model struct {
	cells   mapset.Set[grid.Cell]
	objects mapset.Set[objects.ID]
}

func NewModel() *Model {
	return &Model{
		cells:   mapset.New[grid.Cell](),
		objects: mapset.New[objects.ID](),
	}
}

func (m *Model) AddCell(c grid.Cell) { m.cells.Put(c) }

func (m *Model) RemoveCell(c grid.Cell) { m.cells.Remove(c) }

func (m *Model) HasCell(c grid.Cell) bool { return m.cells.Has(c) }

func (m *Model) AddObject(id objects.ID) { m.objects.Put(id) }

func (m *Model) RemoveObject(id objects.ID) { m.objects.Remove(id) }

func (m *Model) HasObject(id objects.ID) bool { return m.objects.Has(id) }

// ToggleCell flips membership of c and reports whether it is now selected.
func (m *Model) ToggleCell(c grid.Cell) bool {
	if m.cells.Has(c) {
		m.cells.Remove(c)
		return false
	}
	m.cells.Put(c)
	return true
}

// ToggleObject flips membership of id and reports whether it is now selected.
func (m *Model) ToggleObject(id objects.ID) bool {
	if m.objects.Has(id) {
		m.objects.Remove(id)
		return false
	}
	m.objects.Put(id)
	return true
}

func (m *Model) Clear() {
	m.cells = mapset.New[grid.Cell]()
	m.objects = mapset.New[objects.ID]()
}

// Empty reports whether nothing is selected.
func (m *Model) Empty() bool {
	return m.cells.Size() == 0 && m.objects.Size() == 0
}

// Counts returns the number of selected cells and objects.
func (m *Model) Counts() (cells, objs int) {
	return m.cells.Size(), m.objects.Size()
}

// IsMulti reports whether the selection holds more than one object or any
// tiles. Clicking an object inside a multi selection drags the whole set.
func (m *Model) IsMulti() bool {
	return m.objects.Size() > 1 || m.cells.Size() > 0
}

// Cells returns the selected cells ordered row by row.
func (m *Model) Cells() []grid.Cell {
	out := make([]grid.Cell, 0, m.cells.Size())
	m.cells.Each(func(c grid.Cell) { out = append(out, c) })
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Objects returns the selected objects ordered by handle.
func (m *Model) Objects() []objects.ID {
	out := make([]objects.ID, 0, m.objects.Size())
	m.objects.Each(func(id objects.ID) { out = append(out, id) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ReplaceCells swaps the whole cell selection.
func (m *Model) ReplaceCells(cells []grid.Cell) {
	m.cells = mapset.New[grid.Cell]()
	for _, c := range cells {
		m.cells.Put(c)
	}
}

// Prune drops objects that no longer exist and cells that are now empty.
func (m *Model) Prune(exists func(objects.ID) bool, hasTile func(grid.Cell) bool) {
	for _, id := range m.Objects() {
		if exists == nil || !exists(id) {
			m.objects.Remove(id)
		}
	}
	for _, c := range m.Cells() {
		if hasTile == nil || !hasTile(c) {
			m.cells.Remove(c)
		}
	}
}

// SelectRectangle adds everything inside the screen rectangle spanned by a
// and b. Non-empty cells inside the inclusive cell box are added, as are
// objects whose screen projected bounds overlap the rectangle.
func (m *Model) SelectRectangle(a, b grid.Vec2, proj Projector, src Source) {
	if proj == nil || src == nil {
		return
	}
	g := src.Grid()
	ca := g.WorldToCell(proj.ScreenToWorld(a))
	cb := g.WorldToCell(proj.ScreenToWorld(b))
	minX, maxX := ca.X, cb.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := ca.Y, cb.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := grid.Cell{X: x, Y: y}
			if src.HasTile(c) {
				m.cells.Put(c)
			}
		}
	}

	screen := grid.RectFromPoints(a, b)
	for _, id := range src.ObjectIDs() {
		bounds, ok := src.ObjectBounds(id)
		if !ok {
			continue
		}
		projected := grid.RectFromPoints(proj.WorldToScreen(bounds.Min()), proj.WorldToScreen(bounds.Max()))
		if projected.Overlaps(screen) {
			m.objects.Put(id)
		}
	}
}
