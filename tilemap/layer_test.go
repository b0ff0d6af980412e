package tilemap

import (
	"testing"

	"github.com/PvttJebus/OhMyGord/grid"
)

type cellBlocker struct {
	g     grid.Grid
	cells map[grid.Cell]bool
}

func (b cellBlocker) Occupied(p grid.Vec2) bool {
	return b.cells[b.g.WorldToCell(p)]
}

func TestSetGetClear(t *testing.T) {
	l := NewLayer()
	c := grid.Cell{X: 2, Y: -1}
	l.SetTile(c, "Grass")
	if name, ok := l.GetTile(c); !ok || name != "Grass" {
		t.Fatalf("expected Grass, got %q (ok=%v)", name, ok)
	}
	l.SetTile(c, "")
	if l.Has(c) || l.Len() != 0 {
		t.Fatalf("empty name should clear the cell")
	}
}

func TestClampBrushSize(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, 1}, {0, 1}, {1, 1}, {2, 3}, {4, 5}, {9, 9}, {10, 9}, {100, 9},
	}
	for _, c := range cases {
		if got := ClampBrushSize(c.in); got != c.want {
			t.Fatalf("ClampBrushSize(%d): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestApplyBrushFootprint(t *testing.T) {
	g := grid.New(1)
	cases := []struct {
		name string
		size int
		want int
	}{
		{"size_1", 1, 1},
		{"size_3", 3, 9},
		{"size_5", 5, 25},
		{"even_rounds_up", 2, 9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLayer()
			got := l.ApplyBrush(g, grid.Cell{}, "Dirt", c.size, nil)
			if got != c.want || l.Len() != c.want {
				t.Fatalf("expected %d painted, got %d (len %d)", c.want, got, l.Len())
			}
			half := (ClampBrushSize(c.size) - 1) / 2
			if !l.Has(grid.Cell{X: -half, Y: -half}) || !l.Has(grid.Cell{X: half, Y: half}) {
				t.Fatalf("footprint should be centred on the origin")
			}
		})
	}
}

func TestApplyBrushSkipsColliders(t *testing.T) {
	g := grid.New(1)
	blocked := grid.Cell{X: 1, Y: 0}
	b := cellBlocker{g: g, cells: map[grid.Cell]bool{blocked: true}}
	for _, size := range []int{1, 3, 5} {
		l := NewLayer()
		l.ApplyBrush(g, grid.Cell{X: 1, Y: 0}, "Grass", size, b)
		if l.Has(blocked) {
			t.Fatalf("size %d painted under a collider", size)
		}
		want := size*size - 1
		if l.Len() != want {
			t.Fatalf("size %d: expected %d tiles, got %d", size, want, l.Len())
		}
	}
}

func TestEraseBrush(t *testing.T) {
	g := grid.New(1)
	l := NewLayer()
	l.ApplyBrush(g, grid.Cell{}, "Stone", 5, nil)
	erased := l.EraseBrush(grid.Cell{}, 3)
	if len(erased) != 9 {
		t.Fatalf("expected 9 erased cells, got %d", len(erased))
	}
	if l.Len() != 16 {
		t.Fatalf("expected 16 tiles left, got %d", l.Len())
	}
}

func TestFloodFillReplacesRegion(t *testing.T) {
	l := NewLayer()
	// A 4x4 Grass square with a Dirt wall down column 2.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			name := "Grass"
			if x == 2 {
				name = "Dirt"
			}
			l.SetTile(grid.Cell{X: x, Y: y}, name)
		}
	}
	filled := l.FloodFill(grid.Cell{X: 0, Y: 0}, "Stone")
	if filled != 8 {
		t.Fatalf("expected 8 cells filled, got %d", filled)
	}
	if name, _ := l.GetTile(grid.Cell{X: 3, Y: 0}); name != "Grass" {
		t.Fatalf("fill crossed the wall: %q", name)
	}
	if name, _ := l.GetTile(grid.Cell{X: 1, Y: 3}); name != "Stone" {
		t.Fatalf("expected Stone at 1,3 got %q", name)
	}
}

func TestFloodFillIdempotent(t *testing.T) {
	l := NewLayer()
	for x := 0; x < 3; x++ {
		l.SetTile(grid.Cell{X: x}, "Grass")
	}
	l.FloodFill(grid.Cell{}, "Dirt")
	snapshot := l.Clone()
	if n := l.FloodFill(grid.Cell{}, "Dirt"); n != 0 {
		t.Fatalf("second fill should be a no-op, filled %d", n)
	}
	for _, c := range snapshot.Cells() {
		a, _ := snapshot.GetTile(c)
		b, _ := l.GetTile(c)
		if a != b {
			t.Fatalf("cell %v changed on repeat fill", c)
		}
	}
}

func TestFloodFillEmptyRegionBounded(t *testing.T) {
	l := NewLayer()
	// Ring of Stone around an empty 1x1 hole at 1,1 inside a 3x3 area.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			l.SetTile(grid.Cell{X: x, Y: y}, "Stone")
		}
	}
	if n := l.FloodFill(grid.Cell{X: 1, Y: 1}, "Ice"); n != 1 {
		t.Fatalf("expected 1 cell filled, got %d", n)
	}
	if n := l.FloodFill(grid.Cell{X: 10, Y: 10}, "Ice"); n == 0 {
		t.Fatalf("filling outside the bounds should still paint the seed")
	}
}

func TestBoundsAndCellsOrder(t *testing.T) {
	l := NewLayer()
	if _, _, ok := l.Bounds(); ok {
		t.Fatalf("empty layer should have no bounds")
	}
	l.SetTile(grid.Cell{X: 3, Y: 1}, "A")
	l.SetTile(grid.Cell{X: -1, Y: 1}, "B")
	l.SetTile(grid.Cell{X: 0, Y: -2}, "C")
	min, max, _ := l.Bounds()
	if min != (grid.Cell{X: -1, Y: -2}) || max != (grid.Cell{X: 3, Y: 1}) {
		t.Fatalf("unexpected bounds %v..%v", min, max)
	}
	cells := l.Cells()
	want := []grid.Cell{{X: 0, Y: -2}, {X: -1, Y: 1}, {X: 3, Y: 1}}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], cells[i])
		}
	}
}
