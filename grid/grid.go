package grid

import (
	"fmt"
	"math"
)

// Vec2 is a world or screen space position.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) Add(o Cell) Cell { return Cell{X: c.X + o.X, Y: c.Y + o.Y} }

func (c Cell) Sub(o Cell) Cell { return Cell{X: c.X - o.X, Y: c.Y - o.Y} }

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Less orders cells row by row.
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Neighbors4 returns the four edge-adjacent cells.
func (c Cell) Neighbors4() [4]Cell {
	return [4]Cell{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// Grid maps between world positions and cells.
type Grid struct {
	CellSize float64
	Origin   Vec2
}

// New returns a grid with the given cell size. Non-positive sizes fall back to 1.
func New(cellSize float64) Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Grid{CellSize: cellSize}
}

func (g Grid) size() float64 {
	if g.CellSize <= 0 {
		return 1
	}
	return g.CellSize
}

// WorldToCell returns the cell containing p.
func (g Grid) WorldToCell(p Vec2) Cell {
	s := g.size()
	return Cell{
		X: int(math.Floor((p.X - g.Origin.X) / s)),
		Y: int(math.Floor((p.Y - g.Origin.Y) / s)),
	}
}

// CellToWorld returns the world position of the centre of c.
func (g Grid) CellToWorld(c Cell) Vec2 {
	s := g.size()
	return Vec2{
		X: g.Origin.X + (float64(c.X)+0.5)*s,
		Y: g.Origin.Y + (float64(c.Y)+0.5)*s,
	}
}

// CellRect returns the world rect covered by c.
func (g Grid) CellRect(c Cell) Rect {
	s := g.size()
	return Rect{
		X:      g.Origin.X + float64(c.X)*s,
		Y:      g.Origin.Y + float64(c.Y)*s,
		Width:  s,
		Height: s,
	}
}

// SnapToGrid moves p to the centre of its cell.
func (g Grid) SnapToGrid(p Vec2) Vec2 {
	return g.CellToWorld(g.WorldToCell(p))
}

// SnapDelta rounds a world space offset to the nearest whole cell offset.
func (g Grid) SnapDelta(d Vec2) Cell {
	s := g.size()
	return Cell{
		X: int(math.Round(d.X / s)),
		Y: int(math.Round(d.Y / s)),
	}
}

// CellDeltaToWorld converts a cell offset into a world offset.
func (g Grid) CellDeltaToWorld(d Cell) Vec2 {
	s := g.size()
	return Vec2{X: float64(d.X) * s, Y: float64(d.Y) * s}
}

// CellBounds returns the inclusive cell range covered by r.
func (g Grid) CellBounds(r Rect) (min, max Cell) {
	r = r.Normalize()
	min = g.WorldToCell(Vec2{X: r.X, Y: r.Y})
	max = g.WorldToCell(Vec2{X: r.X + r.Width, Y: r.Y + r.Height})
	return min, max
}
