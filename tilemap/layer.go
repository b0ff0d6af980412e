// Package tilemap implements the editor's single sparse tile layer.
package tilemap

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/PvttJebus/OhMyGord/grid"
)

const (
	MinBrushSize = 1
	MaxBrushSize = 9
)

// Blocker reports whether a world position is covered by a collider.
type Blocker interface {
	Occupied(p grid.Vec2) bool
}

// Layer maps cells to tile names. Cells without an entry are empty.
type Layer struct {
	tiles map[grid.Cell]string
}

func NewLayer() *Layer {
	return &Layer{tiles: make(map[grid.Cell]string)}
}

// SetTile stores name at c. An empty name clears the cell.
func (l *Layer) SetTile(c grid.Cell, name string) {
	if l == nil {
		return
	}
	if l.tiles == nil {
		l.tiles = make(map[grid.Cell]string)
	}
	if name == "" {
		delete(l.tiles, c)
		return
	}
	l.tiles[c] = name
}

// GetTile returns the tile at c. ok is false for empty cells.
func (l *Layer) GetTile(c grid.Cell) (string, bool) {
	if l == nil {
		return "", false
	}
	name, ok := l.tiles[c]
	return name, ok
}

func (l *Layer) Has(c grid.Cell) bool {
	_, ok := l.GetTile(c)
	return ok
}

func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tiles)
}

func (l *Layer) Clear() {
	if l == nil {
		return
	}
	l.tiles = make(map[grid.Cell]string)
}

// Cells returns the non-empty cells ordered row by row.
func (l *Layer) Cells() []grid.Cell {
	if l == nil {
		return nil
	}
	out := make([]grid.Cell, 0, len(l.tiles))
	for c := range l.tiles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Bounds returns the inclusive cell range holding tiles.
func (l *Layer) Bounds() (min, max grid.Cell, ok bool) {
	if l.Len() == 0 {
		return grid.Cell{}, grid.Cell{}, false
	}
	first := true
	for c := range l.tiles {
		if first {
			min, max, first = c, c, false
			continue
		}
		min.X, min.Y = minInt(min.X, c.X), minInt(min.Y, c.Y)
		max.X, max.Y = maxInt(max.X, c.X), maxInt(max.Y, c.Y)
	}
	return min, max, true
}

func (l *Layer) Clone() *Layer {
	out := NewLayer()
	if l == nil {
		return out
	}
	for c, name := range l.tiles {
		out.tiles[c] = name
	}
	return out
}

// ClampBrushSize forces size odd and into [MinBrushSize, MaxBrushSize].
func ClampBrushSize(size int) int {
	size |= 1
	if size < MinBrushSize {
		return MinBrushSize
	}
	if size > MaxBrushSize {
		return MaxBrushSize
	}
	return size
}

// Footprint returns the cells of a square brush centred on center.
func Footprint(center grid.Cell, size int) []grid.Cell {
	size = ClampBrushSize(size)
	offset := (size - 1) / 2
	out := make([]grid.Cell, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out = append(out, grid.Cell{X: center.X - offset + x, Y: center.Y - offset + y})
		}
	}
	return out
}

// ApplyBrush paints name over the brush footprint, skipping cells whose
// centre lies inside a collider. It returns the number of cells painted.
func (l *Layer) ApplyBrush(g grid.Grid, center grid.Cell, name string, size int, blocker Blocker) int {
	if l == nil || name == "" {
		return 0
	}
	painted := 0
	for _, c := range Footprint(center, size) {
		if blocker != nil && blocker.Occupied(g.CellToWorld(c)) {
			continue
		}
		l.SetTile(c, name)
		painted++
	}
	return painted
}

// EraseBrush clears the brush footprint and returns the cells it covered.
func (l *Layer) EraseBrush(center grid.Cell, size int) []grid.Cell {
	cells := Footprint(center, size)
	for _, c := range cells {
		l.SetTile(c, "")
	}
	return cells
}

// FloodFill replaces the 4-connected region sharing the seed's value with
// name. The walk is bounded by the layer bounds grown to include the seed,
// so filling an empty region stops at the edge of the painted area.
func (l *Layer) FloodFill(seed grid.Cell, name string) int {
	if l == nil {
		return 0
	}
	target, _ := l.GetTile(seed)
	if target == name {
		return 0
	}
	min, max, ok := l.Bounds()
	if !ok {
		min, max = seed, seed
	}
	min.X, min.Y = minInt(min.X, seed.X), minInt(min.Y, seed.Y)
	max.X, max.Y = maxInt(max.X, seed.X), maxInt(max.Y, seed.Y)

	visited := mapset.New[grid.Cell]()
	queue := []grid.Cell{seed}
	visited.Put(seed)
	filled := 0
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		l.SetTile(c, name)
		filled++
		for _, n := range c.Neighbors4() {
			if n.X < min.X || n.X > max.X || n.Y < min.Y || n.Y > max.Y {
				continue
			}
			if visited.Has(n) {
				continue
			}
			if cur, _ := l.GetTile(n); cur != target {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return filled
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
