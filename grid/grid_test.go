package grid

import "testing"

func TestWorldToCellRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		size float64
		cell Cell
	}{
		{"origin", 1, Cell{0, 0}},
		{"positive", 1, Cell{3, 7}},
		{"negative", 1, Cell{-4, -1}},
		{"large_cells", 32, Cell{-2, 5}},
		{"fractional_cells", 0.5, Cell{9, -9}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(c.size)
			got := g.WorldToCell(g.CellToWorld(c.cell))
			if got != c.cell {
				t.Fatalf("expected %v, got %v", c.cell, got)
			}
		})
	}
}

func TestWorldToCellFloors(t *testing.T) {
	g := New(1)
	cases := []struct {
		p    Vec2
		want Cell
	}{
		{Vec2{0.99, 0.01}, Cell{0, 0}},
		{Vec2{-0.01, 0}, Cell{-1, 0}},
		{Vec2{2, -2}, Cell{2, -2}},
		{Vec2{-1.5, 3.5}, Cell{-2, 3}},
	}
	for _, c := range cases {
		if got := g.WorldToCell(c.p); got != c.want {
			t.Fatalf("WorldToCell(%v): expected %v, got %v", c.p, c.want, got)
		}
	}
}

func TestSnapToGridReturnsCellCentre(t *testing.T) {
	g := Grid{CellSize: 2, Origin: Vec2{X: 1, Y: 1}}
	got := g.SnapToGrid(Vec2{X: 3.9, Y: 1.1})
	want := Vec2{X: 4, Y: 2}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSnapDeltaRoundsToNearest(t *testing.T) {
	g := New(1)
	cases := []struct {
		d    Vec2
		want Cell
	}{
		{Vec2{0.4, -0.4}, Cell{0, 0}},
		{Vec2{0.6, -0.6}, Cell{1, -1}},
		{Vec2{2.49, 3.51}, Cell{2, 4}},
	}
	for _, c := range cases {
		if got := g.SnapDelta(c.d); got != c.want {
			t.Fatalf("SnapDelta(%v): expected %v, got %v", c.d, c.want, got)
		}
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	g := New(0)
	if g.CellSize != 1 {
		t.Fatalf("expected cell size 1, got %v", g.CellSize)
	}
	zero := Grid{}
	if got := zero.WorldToCell(Vec2{X: 2.5, Y: 0}); got != (Cell{2, 0}) {
		t.Fatalf("zero grid should behave as unit grid, got %v", got)
	}
}

func TestRectOverlapsIsStrict(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 1, Height: 1}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}, true},
		{"partial", Rect{X: 0.5, Y: 0.5, Width: 1, Height: 1}, true},
		{"edge_touch", Rect{X: 1, Y: 0, Width: 1, Height: 1}, false},
		{"apart", Rect{X: 3, Y: 3, Width: 1, Height: 1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Overlaps(c.b); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Vec2{X: 4, Y: 5}, Vec2{X: 1, Y: 2})
	want := Rect{X: 1, Y: 2, Width: 3, Height: 3}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestCellBoundsInclusive(t *testing.T) {
	g := New(1)
	min, max := g.CellBounds(RectFromPoints(Vec2{X: 2.5, Y: 2.5}, Vec2{X: 0.5, Y: 0.2}))
	if min != (Cell{0, 0}) || max != (Cell{2, 2}) {
		t.Fatalf("expected 0,0..2,2 got %v..%v", min, max)
	}
}
