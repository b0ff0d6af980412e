package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/params"
	"github.com/PvttJebus/OhMyGord/prefabs"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

const (
	tplCrate = iota
	tplDoor
	tplSwitch
	tplMover
)

func testPalette(t *testing.T) *prefabs.Palette {
	t.Helper()
	p, err := prefabs.NewPalette(prefabs.PaletteSpec{
		Templates: []prefabs.TemplateSpec{
			{Name: "crate"},
			{Name: "door", Kind: params.KindDoor, Interactable: true, ToggleScript: "door"},
			{Name: "switch", Kind: params.KindPressureSwitch, Interactable: true},
			{Name: "mover", Kind: params.KindMover, Interactable: true},
		},
		Tiles: []prefabs.TileSpec{{Name: "Grass"}, {Name: "Dirt"}, {Name: "Stone"}},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	return p
}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	p := testPalette(t)
	e, err := New(config.Default(), Deps{
		Palette: p,
		Tiles:   tilemap.NewLayer(),
		Objects: objects.NewRegistry(p),
		Store:   levels.NewDirStore(t.TempDir(), levels.FormatPNG),
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// at converts a world position to the screen position the editor expects.
func at(e *Editor, x, y float64) grid.Vec2 {
	return e.Camera().WorldToScreen(grid.Vec2{X: x, Y: y})
}

func move(cursor grid.Vec2) Input {
	return Input{Cursor: cursor}
}

func press(cursor grid.Vec2) Input {
	return Input{Cursor: cursor, Left: Button{Pressed: true, Held: true}}
}

func hold(cursor grid.Vec2) Input {
	return Input{Cursor: cursor, Left: Button{Held: true}}
}

func release(cursor grid.Vec2) Input {
	return Input{Cursor: cursor, Left: Button{Released: true}}
}

func click(e *Editor, x, y float64) {
	e.Update(press(at(e, x, y)))
	e.Update(release(at(e, x, y)))
}

func spawn(t *testing.T, e *Editor, index int, x, y float64) objects.ID {
	t.Helper()
	id, err := e.Objects().Spawn(index, grid.Vec2{X: x, Y: y})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return id
}

func positions(e *Editor) []grid.Vec2 {
	var out []grid.Vec2
	for _, id := range e.Objects().IDs() {
		p, _ := e.Objects().Position(id)
		out = append(out, p)
	}
	return out
}

func undoLen(e *Editor) int {
	n, _ := e.History().Len()
	return n
}

func TestNewMissingCollaborators(t *testing.T) {
	_, err := New(config.Default(), Deps{})
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("expected ErrMissingCollaborator, got %v", err)
	}
	for _, name := range []string{"palette", "tile layer", "object registry", "level store"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %q in %v", name, err)
		}
	}
}

func TestStartsIdle(t *testing.T) {
	e := newTestEditor(t)
	if e.State() != StateIdle || e.Mode() != ModeEdit {
		t.Fatalf("expected Idle in Edit mode, got %s in %s", e.State(), e.Mode())
	}
	e.Update(move(at(e, 3, 3)))
	if e.State() != StateIdle {
		t.Fatalf("expected cursor movement to keep Idle, got %s", e.State())
	}
	e.Update(press(at(e, 3, 3)))
	if e.State() != StateSelecting {
		t.Fatalf("expected press to start Selecting, got %s", e.State())
	}
	if o := e.Overlay(); !o.HasRect {
		t.Fatalf("expected the press to start a rectangle in the same frame")
	}
}

func TestEmptyRectangleSelection(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	spawn(t, e, tplCrate, 0.5, 5.5)

	e.Update(press(at(e, 10.5, 10.5)))
	e.Update(hold(at(e, 12, 12)))
	e.Update(release(at(e, 14, 14)))
	if !e.Selection().Empty() {
		cells, objs := e.Selection().Counts()
		t.Fatalf("expected empty selection, got %d cells and %d objects", cells, objs)
	}
	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting, got %s", e.State())
	}
}

func TestDragTwoObjectsSingleHistoryEntry(t *testing.T) {
	e := newTestEditor(t)
	a := spawn(t, e, tplCrate, 1.5, 1.5)
	b := spawn(t, e, tplCrate, 2.5, 1.5)

	e.Update(press(at(e, 0.2, 0.2)))
	e.Update(hold(at(e, 2, 2)))
	e.Update(release(at(e, 4, 3)))
	if !e.Selection().HasObject(a) || !e.Selection().HasObject(b) {
		t.Fatalf("expected rectangle to select both objects")
	}

	e.Update(press(at(e, 1.5, 1.5)))
	if e.State() != StateDraggingSelected {
		t.Fatalf("expected DraggingSelected, got %s", e.State())
	}
	e.Update(hold(at(e, 2.5, 1.6)))
	e.Update(hold(at(e, 3.5, 1.25)))
	if o := e.Overlay(); o.DragOffset != (grid.Vec2{X: 2, Y: -0.25}) {
		t.Fatalf("expected live drag offset, got %v", o.DragOffset)
	}
	e.Update(release(at(e, 4.5, 1.5)))

	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting after release, got %s", e.State())
	}
	pa, _ := e.Objects().Position(a)
	pb, _ := e.Objects().Position(b)
	if pa != (grid.Vec2{X: 4.5, Y: 1.5}) || pb != (grid.Vec2{X: 5.5, Y: 1.5}) {
		t.Fatalf("expected objects moved by 3,0, got %v and %v", pa, pb)
	}
	if e.Objects().IsEditing(a) {
		t.Fatalf("expected editing flag cleared")
	}
	if n := undoLen(e); n != 1 {
		t.Fatalf("expected one history entry for the drag, got %d", n)
	}

	if ok, err := e.Undo(); !ok || err != nil {
		t.Fatalf("Undo: %v %v", ok, err)
	}
	got := positions(e)
	if len(got) != 2 || got[0] != (grid.Vec2{X: 1.5, Y: 1.5}) || got[1] != (grid.Vec2{X: 2.5, Y: 1.5}) {
		t.Fatalf("expected undo to restore original positions, got %v", got)
	}
}

func TestClickWithoutMoveAddsNoHistory(t *testing.T) {
	e := newTestEditor(t)
	id := spawn(t, e, tplCrate, 1.5, 1.5)
	click(e, 1.5, 1.5)
	if !e.Selection().HasObject(id) {
		t.Fatalf("expected click to select the object")
	}
	if m, _ := e.Objects().Material(id); m != MaterialHighlight {
		t.Fatalf("expected highlight material, got %q", m)
	}
	if n := undoLen(e); n != 0 {
		t.Fatalf("expected no history entry, got %d", n)
	}
}

func TestClickUnselectedObjectCollapsesSelection(t *testing.T) {
	e := newTestEditor(t)
	a := spawn(t, e, tplCrate, 1.5, 1.5)
	b := spawn(t, e, tplCrate, 3.5, 1.5)
	c := spawn(t, e, tplCrate, 8.5, 1.5)

	e.Update(press(at(e, 0.2, 0.2)))
	e.Update(release(at(e, 4.8, 2.8)))
	e.Update(press(at(e, 8.5, 1.5)))
	e.Update(release(at(e, 8.5, 1.5)))

	if e.Selection().HasObject(a) || e.Selection().HasObject(b) || !e.Selection().HasObject(c) {
		t.Fatalf("expected selection collapsed to the clicked object, got %v", e.Selection().Objects())
	}
	if m, _ := e.Objects().Material(a); m != "default" {
		t.Fatalf("expected a's material restored, got %q", m)
	}
}

func TestCtrlToggle(t *testing.T) {
	e := newTestEditor(t)
	a := spawn(t, e, tplCrate, 1.5, 1.5)
	b := spawn(t, e, tplCrate, 3.5, 1.5)
	e.Tiles().SetTile(grid.Cell{X: 5, Y: 1}, "Grass")

	ctrlClick := func(x, y float64) {
		in := press(at(e, x, y))
		in.Ctrl = true
		e.Update(in)
		in = release(at(e, x, y))
		in.Ctrl = true
		e.Update(in)
	}
	ctrlClick(1.5, 1.5)
	ctrlClick(3.5, 1.5)
	ctrlClick(5.5, 1.5)
	ctrlClick(1.5, 1.5)

	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"a removed", e.Selection().HasObject(a), false},
		{"b kept", e.Selection().HasObject(b), true},
		{"cell added", e.Selection().HasCell(grid.Cell{X: 5, Y: 1}), true},
		{"a unhighlighted", e.Highlighter().IsHighlighted(a), false},
		{"b highlighted", e.Highlighter().IsHighlighted(b), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Fatalf("expected %v, got %v", c.want, c.got)
			}
		})
	}
	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting, got %s", e.State())
	}
}

func TestDragTiles(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	e.Tiles().SetTile(grid.Cell{X: 1, Y: 0}, "Dirt")

	e.Update(press(at(e, 0.5, 0.5)))
	e.Update(release(at(e, 1.5, 0.5)))
	if cells, _ := e.Selection().Counts(); cells != 2 {
		t.Fatalf("expected 2 selected cells, got %d", cells)
	}

	e.Update(press(at(e, 0.5, 0.5)))
	if e.State() != StateDraggingSelected {
		t.Fatalf("expected DraggingSelected, got %s", e.State())
	}
	if e.Tiles().Len() != 0 {
		t.Fatalf("expected tiles lifted during the drag")
	}
	if o := e.Overlay(); len(o.MovingTiles) != 2 {
		t.Fatalf("expected 2 moving tiles, got %v", o.MovingTiles)
	}
	e.Update(hold(at(e, 2.4, 1.6)))
	e.Update(release(at(e, 2.4, 1.6)))

	want := map[grid.Cell]string{{X: 2, Y: 1}: "Grass", {X: 3, Y: 1}: "Dirt"}
	if e.Tiles().Len() != len(want) {
		t.Fatalf("expected %d tiles, got %v", len(want), e.Tiles().Cells())
	}
	for c, name := range want {
		if got, _ := e.Tiles().GetTile(c); got != name {
			t.Fatalf("expected %s at %v, got %q", name, c, got)
		}
		if !e.Selection().HasCell(c) {
			t.Fatalf("expected %v selected", c)
		}
	}
}

func TestInterruptedDragRollsBack(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	id := spawn(t, e, tplCrate, 1.5, 0.5)

	e.Update(press(at(e, 0.2, 0.2)))
	e.Update(release(at(e, 1.8, 0.8)))
	e.Update(press(at(e, 1.5, 0.5)))
	e.Update(hold(at(e, 4.5, 3.5)))

	in := hold(at(e, 4.5, 3.5))
	in.Keys = []Key{KeyReturn}
	e.Update(in)

	if e.Mode() != ModePlay || e.State() != StateIdle {
		t.Fatalf("expected Play mode and Idle, got %s and %s", e.Mode(), e.State())
	}
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 0, Y: 0}); got != "Grass" {
		t.Fatalf("expected lifted tile restored, got %q", got)
	}
	if p, _ := e.Objects().Position(id); p != (grid.Vec2{X: 1.5, Y: 0.5}) {
		t.Fatalf("expected object rolled back, got %v", p)
	}
	if e.Objects().IsEditing(id) {
		t.Fatalf("expected editing flag cleared")
	}
}

func TestDoubleClickFlood(t *testing.T) {
	e := newTestEditor(t)
	for x := 0; x < 3; x++ {
		e.Tiles().SetTile(grid.Cell{X: x, Y: 0}, "Grass")
	}
	e.Tiles().SetTile(grid.Cell{X: 3, Y: 0}, "Stone")
	e.Tiles().SetTile(grid.Cell{X: 5, Y: 0}, "Grass")
	if err := e.SetCurrentTile("Dirt"); err != nil {
		t.Fatalf("SetCurrentTile: %v", err)
	}

	clickAt := func(x, y, ts float64) {
		in := press(at(e, x, y))
		in.Time = ts
		e.Update(in)
		in = release(at(e, x, y))
		in.Time = ts + 0.01
		e.Update(in)
	}
	clickAt(0.5, 0.5, 1.0)
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 1, Y: 0}); got != "Grass" {
		t.Fatalf("expected single click to paint only the brush, got %q at 1,0", got)
	}
	clickAt(0.5, 0.5, 1.1)

	want := map[grid.Cell]string{
		{X: 0, Y: 0}: "Dirt",
		{X: 1, Y: 0}: "Dirt",
		{X: 2, Y: 0}: "Dirt",
		{X: 3, Y: 0}: "Stone",
		{X: 5, Y: 0}: "Grass",
	}
	for c, name := range want {
		if got, _ := e.Tiles().GetTile(c); got != name {
			t.Fatalf("expected %s at %v, got %q", name, c, got)
		}
	}

	// A third quick click is a fresh single click, not another flood.
	e.currentTile = "Grass"
	clickAt(0.5, 0.5, 1.15)
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 1, Y: 0}); got != "Dirt" {
		t.Fatalf("expected no chained flood, got %q at 1,0", got)
	}
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 0, Y: 0}); got != "Grass" {
		t.Fatalf("expected third click to paint, got %q at 0,0", got)
	}
}

func TestSlowClicksDoNotFlood(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	e.Tiles().SetTile(grid.Cell{X: 1, Y: 0}, "Grass")
	_ = e.SetCurrentTile("Dirt")

	for _, ts := range []float64{1.0, 1.5} {
		in := press(at(e, 0.5, 0.5))
		in.Time = ts
		e.Update(in)
		in = release(at(e, 0.5, 0.5))
		in.Time = ts
		e.Update(in)
	}
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 1, Y: 0}); got != "Grass" {
		t.Fatalf("expected no flood for slow clicks, got %q", got)
	}
	if n := undoLen(e); n != 2 {
		t.Fatalf("expected one history entry per click, got %d", n)
	}
}

func TestClickAtThresholdDoesNotFlood(t *testing.T) {
	e := newTestEditor(t)
	e.cfg.DoubleClickSeconds = 0.5
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	e.Tiles().SetTile(grid.Cell{X: 1, Y: 0}, "Grass")
	_ = e.SetCurrentTile("Dirt")

	for _, ts := range []float64{1.0, 1.5} {
		in := press(at(e, 0.5, 0.5))
		in.Time = ts
		e.Update(in)
		in = release(at(e, 0.5, 0.5))
		in.Time = ts
		e.Update(in)
	}
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 1, Y: 0}); got != "Grass" {
		t.Fatalf("expected a click exactly at the threshold to be single, got %q", got)
	}
}

func TestPaintDragRepaintsOnCellChange(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SetCurrentTile("Stone")
	e.Update(press(at(e, 0.5, 0.5)))
	e.Update(hold(at(e, 0.7, 0.6)))
	e.Update(hold(at(e, 1.5, 0.5)))
	e.Update(hold(at(e, 2.5, 0.5)))
	e.Update(release(at(e, 2.5, 0.5)))
	e.Update(move(at(e, 3.5, 0.5)))
	if e.Tiles().Len() != 3 {
		t.Fatalf("expected 3 painted cells, got %v", e.Tiles().Cells())
	}
	if n := undoLen(e); n != 1 {
		t.Fatalf("expected one history entry for the stroke, got %d", n)
	}
}

func TestBrushSkipsColliders(t *testing.T) {
	for _, size := range []int{1, 3, 5} {
		t.Run(string(rune('0'+size)), func(t *testing.T) {
			e := newTestEditor(t)
			spawn(t, e, tplCrate, 5.5, 5.5)
			e.SetBrushSize(size)
			_ = e.SetCurrentTile("Grass")
			click(e, 5.5, 5.5)
			if e.Tiles().Has(grid.Cell{X: 5, Y: 5}) {
				t.Fatalf("expected no tile under the collider")
			}
			if got, want := e.Tiles().Len(), size*size-1; got != want {
				t.Fatalf("expected %d painted cells, got %d", want, got)
			}
		})
	}
}

func TestRightClickWhileDrawing(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 2, Y: 2}, "Grass")
	id := spawn(t, e, tplCrate, 2.5, 2.5)
	_ = e.SetCurrentTile("Grass")

	e.Update(Input{Cursor: at(e, 2.5, 2.5), Right: Button{Pressed: true, Held: true}})
	if e.Tiles().Has(grid.Cell{X: 2, Y: 2}) || e.Objects().Exists(id) {
		t.Fatalf("expected right click to clear the cell and its object")
	}
	if n := undoLen(e); n != 1 {
		t.Fatalf("expected a history entry, got %d", n)
	}
}

func TestEraser(t *testing.T) {
	e := newTestEditor(t)
	for x := 0; x < 6; x++ {
		e.Tiles().SetTile(grid.Cell{X: x, Y: 3}, "Dirt")
	}
	inside := spawn(t, e, tplCrate, 4.5, 4.5)
	outside := spawn(t, e, tplCrate, 8.5, 4.5)
	e.SelectTool(ToolErase)
	e.SetBrushSize(3)

	e.Update(press(at(e, 3.5, 3.5)))
	e.Update(release(at(e, 3.5, 3.5)))

	for x := 0; x < 6; x++ {
		c := grid.Cell{X: x, Y: 3}
		if want := x < 2 || x > 4; e.Tiles().Has(c) != want {
			t.Fatalf("cell %v: expected present=%v", c, want)
		}
	}
	if e.Objects().Exists(inside) || !e.Objects().Exists(outside) {
		t.Fatalf("expected only the object under the brush destroyed")
	}
	if e.State() != StateErasingTiles {
		t.Fatalf("expected eraser to stay active, got %s", e.State())
	}
}

func TestAltPick(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 1, Y: 1}, "Stone")

	in := press(at(e, 1.5, 1.5))
	in.Alt = true
	e.Update(in)
	if e.State() != StateDrawingTiles || e.CurrentTile() != "Stone" {
		t.Fatalf("expected DrawingTiles with Stone, got %s with %s", e.State(), e.CurrentTile())
	}

	e.SelectTool(ToolSelect)
	in = press(at(e, 7.5, 7.5))
	in.Alt = true
	e.Update(in)
	if e.State() != StateErasingTiles {
		t.Fatalf("expected ErasingTiles, got %s", e.State())
	}
}

func TestStickySpawnAndAltClone(t *testing.T) {
	e := newTestEditor(t)
	e.Update(move(at(e, 2.5, 2.5)))
	a, err := e.SpawnTemplate(tplCrate)
	if err != nil {
		t.Fatalf("SpawnTemplate: %v", err)
	}
	if e.State() != StateStickySpawning {
		t.Fatalf("expected StickySpawning, got %s", e.State())
	}
	if p, _ := e.Objects().Position(a); p != (grid.Vec2{X: 2.5, Y: 2.5}) {
		t.Fatalf("expected spawn at 2.5,2.5, got %v", p)
	}

	// The release of the click that spawned the object is swallowed.
	e.Update(release(at(e, 5.3, 5.8)))
	if e.State() != StateStickySpawning {
		t.Fatalf("expected first release to be suppressed, got %s", e.State())
	}
	if p, _ := e.Objects().Position(a); p != (grid.Vec2{X: 5.5, Y: 5.5}) {
		t.Fatalf("expected object to follow the snapped cursor, got %v", p)
	}

	alt := func(in Input) Input { in.Alt = true; return in }
	e.Update(alt(press(at(e, 5.5, 5.5))))
	e.Update(alt(release(at(e, 5.5, 5.5))))

	clone, ok := e.Sticky()
	if !ok || clone == a {
		t.Fatalf("expected the clone to become sticky")
	}
	if e.Objects().Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", e.Objects().Len())
	}
	for _, id := range []objects.ID{a, clone} {
		tpl, _ := e.Objects().Template(id)
		p, _ := e.Objects().Position(id)
		if tpl.Index != tplCrate || p != (grid.Vec2{X: 5.5, Y: 5.5}) {
			t.Fatalf("expected %v to be a crate at 5.5,5.5, got %d at %v", id, tpl.Index, p)
		}
	}
	if e.Highlighter().IsHighlighted(a) {
		t.Fatalf("expected the placed original to lose its highlight")
	}

	e.Update(move(at(e, 7.2, 7.7)))
	e.Update(press(at(e, 7.2, 7.7)))
	e.Update(release(at(e, 7.2, 7.7)))
	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting after plain release, got %s", e.State())
	}
	if p, _ := e.Objects().Position(clone); p != (grid.Vec2{X: 7.5, Y: 7.5}) {
		t.Fatalf("expected clone at 7.5,7.5, got %v", p)
	}
	if n := undoLen(e); n != 2 {
		t.Fatalf("expected spawn and clone history entries, got %d", n)
	}
}

func TestStickyStartPosition(t *testing.T) {
	e := newTestEditor(t)
	e.Update(move(at(e, 1.5, 1.5)))
	id, _ := e.SpawnTemplate(tplMover)
	e.Update(release(at(e, 3.5, 1.5)))
	e.Update(press(at(e, 3.5, 1.5)))
	e.Update(release(at(e, 3.5, 1.5)))
	if v, _ := e.Objects().Parameters(id).String("startPosition"); v != "3.5,1.5" {
		t.Fatalf("expected startPosition 3.5,1.5, got %q", v)
	}
}

func TestStickyObjectDisappears(t *testing.T) {
	e := newTestEditor(t)
	id, _ := e.SpawnTemplate(tplCrate)
	e.Objects().Destroy(id)
	e.Update(move(at(e, 1, 1)))
	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting, got %s", e.State())
	}
}

func TestUndoRedoPaint(t *testing.T) {
	e := newTestEditor(t)
	_ = e.SetCurrentTile("Grass")
	click(e, 0.5, 0.5)
	if !e.Tiles().Has(grid.Cell{}) {
		t.Fatalf("expected painted tile")
	}

	e.Update(Input{Cursor: at(e, 9, 9), Ctrl: true, Keys: []Key{KeyZ}})
	if e.Tiles().Has(grid.Cell{}) {
		t.Fatalf("expected undo to remove the tile")
	}
	if e.State() != StateDrawingTiles {
		t.Fatalf("expected the drawing tool to survive undo, got %s", e.State())
	}
	e.Update(Input{Cursor: at(e, 9, 9), Ctrl: true, Keys: []Key{KeyY}})
	if !e.Tiles().Has(grid.Cell{}) {
		t.Fatalf("expected redo to restore the tile")
	}
	e.Update(Input{Cursor: at(e, 9, 9), Ctrl: true, Keys: []Key{KeyZ}})
	e.Update(Input{Cursor: at(e, 9, 9), Ctrl: true, Shift: true, Keys: []Key{KeyZ}})
	if !e.Tiles().Has(grid.Cell{}) {
		t.Fatalf("expected ctrl+shift+z to redo")
	}
	if ok, _ := e.Undo(); !ok {
		t.Fatalf("expected one undo entry")
	}
	if ok, _ := e.Undo(); ok {
		t.Fatalf("expected nothing left to undo")
	}
}

func TestDeleteSelection(t *testing.T) {
	e := newTestEditor(t)
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	id := spawn(t, e, tplDoor, 1.5, 0.5)
	g := e.Groups().Create("g")
	_ = e.Groups().AddMember(g, id)

	e.Update(press(at(e, 0.2, 0.2)))
	e.Update(release(at(e, 1.8, 0.8)))
	e.Update(Input{Keys: []Key{KeyDelete}})

	if e.Tiles().Len() != 0 || e.Objects().Len() != 0 {
		t.Fatalf("expected selection deleted")
	}
	if len(e.Groups().Members(g)) != 0 {
		t.Fatalf("expected group membership dropped")
	}
	if !e.Selection().Empty() {
		t.Fatalf("expected empty selection")
	}
	if err := e.DeleteSelection(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if e.Tiles().Len() != 1 || e.Objects().Len() != 1 || len(e.Groups().All()[0].Members) != 1 {
		t.Fatalf("expected undo to restore tiles, objects and group")
	}
}

type memClipboard struct{ data []byte }

func (c *memClipboard) Read() ([]byte, error) {
	if c.data == nil {
		return nil, errors.New("empty")
	}
	return c.data, nil
}

func (c *memClipboard) Write(data []byte) error {
	c.data = append([]byte(nil), data...)
	return nil
}

func TestCopyPaste(t *testing.T) {
	e := newTestEditor(t)
	clip := &memClipboard{}
	e.clipboard = clip
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	spawn(t, e, tplCrate, 1.5, 0.5)

	e.Update(press(at(e, 0.2, 0.2)))
	e.Update(release(at(e, 1.8, 0.8)))
	e.Update(Input{Cursor: at(e, 1.8, 0.8), Ctrl: true, Keys: []Key{KeyC}})
	if clip.data == nil {
		t.Fatalf("expected clipboard to hold the copy")
	}

	e.Update(Input{Cursor: at(e, 5.5, 5.5), Ctrl: true, Keys: []Key{KeyV}})
	if got, _ := e.Tiles().GetTile(grid.Cell{X: 5, Y: 5}); got != "Grass" {
		t.Fatalf("expected pasted tile at 5,5, got %q", got)
	}
	got := positions(e)
	if len(got) != 2 || got[1] != (grid.Vec2{X: 6.5, Y: 5.5}) {
		t.Fatalf("expected pasted crate at 6.5,5.5, got %v", got)
	}
	if cells, objs := e.Selection().Counts(); cells != 1 || objs != 1 {
		t.Fatalf("expected pasted content selected, got %d cells %d objects", cells, objs)
	}
	if n := undoLen(e); n != 1 {
		t.Fatalf("expected one history entry, got %d", n)
	}
}

func TestSetParameter(t *testing.T) {
	e := newTestEditor(t)
	id := spawn(t, e, tplDoor, 0.5, 0.5)
	if err := e.SetParameter(id, "isOpen", "true"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	if err := e.SetParameter(id, "isOpen", "true"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	if n := undoLen(e); n != 1 {
		t.Fatalf("expected unchanged value to skip history, got %d entries", n)
	}
	if err := e.SetParameter(id, "isOpen", "perhaps"); !errors.Is(err, params.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	mover := spawn(t, e, tplMover, 2.5, 0.5)
	_ = e.SetParameter(mover, "mass", "0")
	if v, _ := e.Objects().Parameters(mover).Float("mass"); v != 0.01 {
		t.Fatalf("expected mass clamped to 0.01, got %v", v)
	}
}

func TestGroupEditing(t *testing.T) {
	e := newTestEditor(t)
	door := spawn(t, e, tplDoor, 1.5, 1.5)
	sw := spawn(t, e, tplSwitch, 3.5, 1.5)
	crate := spawn(t, e, tplCrate, 5.5, 1.5)
	g := e.CreateGroup("entrance")

	if err := e.EditGroup(g); err != nil {
		t.Fatalf("EditGroup: %v", err)
	}
	click(e, 1.5, 1.5)
	click(e, 3.5, 1.5)
	click(e, 5.5, 1.5)
	if got := e.Groups().Members(g); len(got) != 2 || got[0] != door || got[1] != sw {
		t.Fatalf("expected door and switch in the group, got %v", got)
	}
	if _, ok := e.Groups().GroupOf(crate); ok {
		t.Fatalf("expected non-interactable crate to be ignored")
	}
	if m, _ := e.Objects().Material(door); m != MaterialGroupHighlight {
		t.Fatalf("expected group highlight, got %q", m)
	}

	click(e, 1.5, 1.5)
	if _, ok := e.Groups().GroupOf(door); ok {
		t.Fatalf("expected second click to remove the door")
	}
	if m, _ := e.Objects().Material(door); m != "default" {
		t.Fatalf("expected door material restored, got %q", m)
	}

	e.Update(Input{Keys: []Key{KeyEscape}})
	if e.State() != StateSelecting {
		t.Fatalf("expected Selecting after escape, got %s", e.State())
	}
	if m, _ := e.Objects().Material(sw); m != MaterialHighlight {
		t.Fatalf("expected switch to stay selected with the selection highlight, got %q", m)
	}
}

func TestUndoKeepsActiveGroup(t *testing.T) {
	e := newTestEditor(t)
	door := spawn(t, e, tplDoor, 1.5, 1.5)
	first := e.CreateGroup("first")
	second := e.CreateGroup("second")
	if err := e.DeleteGroup(first); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if err := e.EditGroup(second); err != nil {
		t.Fatalf("EditGroup: %v", err)
	}
	click(e, 1.5, 1.5)
	if g, ok := e.Groups().GroupOf(door); !ok || g != second {
		t.Fatalf("expected door in group %v, got %v", second, g)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	all := e.Groups().All()
	if len(all) != 1 || all[0].Name != "second" {
		t.Fatalf("expected only the second group, got %+v", all)
	}
	if all[0].ID != 1 {
		t.Fatalf("expected restored group numbered from 1, got %v", all[0].ID)
	}
	if e.ActiveGroup() != all[0].ID {
		t.Fatalf("expected active group %v, got %v", all[0].ID, e.ActiveGroup())
	}
}

func TestPlayModeToggles(t *testing.T) {
	e := newTestEditor(t)
	door := spawn(t, e, tplDoor, 1.5, 1.5)
	sw := spawn(t, e, tplSwitch, 3.5, 1.5)
	lone := spawn(t, e, tplDoor, 6.5, 1.5)
	g := e.Groups().Create("pair")
	_ = e.Groups().AddMember(g, door)
	_ = e.Groups().AddMember(g, sw)

	e.Update(Input{Keys: []Key{KeyReturn}})
	if e.Mode() != ModePlay {
		t.Fatalf("expected Play mode")
	}
	click(e, 3.5, 1.5)
	if v, _ := e.Objects().Parameters(door).Bool("isOpen"); !v {
		t.Fatalf("expected grouped door to open")
	}
	if v, _ := e.Objects().Parameters(sw).Bool("isActive"); !v {
		t.Fatalf("expected switch to activate")
	}
	if v, _ := e.Objects().Parameters(lone).Bool("isOpen"); v {
		t.Fatalf("expected lone door untouched")
	}
	click(e, 6.5, 1.5)
	if v, _ := e.Objects().Parameters(lone).Bool("isOpen"); !v {
		t.Fatalf("expected lone door to open")
	}

	e.Update(Input{Keys: []Key{KeyReturn}})
	if e.Mode() != ModeEdit || e.State() != StateSelecting {
		t.Fatalf("expected Edit mode in Selecting, got %s in %s", e.State(), e.Mode())
	}
}

func TestSaveLoadLevels(t *testing.T) {
	e := newTestEditor(t)
	dir := e.store.(*levels.DirStore).Dir
	e.Tiles().SetTile(grid.Cell{X: 0, Y: 0}, "Grass")
	spawn(t, e, tplDoor, 1.5, 0.5)

	if err := e.Save("L1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "L1.png")); err != nil {
		t.Fatalf("expected preview image: %v", err)
	}
	img, err := e.LevelPreview("L1")
	if err != nil {
		t.Fatalf("LevelPreview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Fatalf("expected a 256x256 preview, got %v", b)
	}
	name, err := e.SaveAsNew()
	if err != nil || name != "L2" {
		t.Fatalf("expected L2, got %q (%v)", name, err)
	}

	e.NewLevel()
	if e.Tiles().Len() != 0 || e.Objects().Len() != 0 || e.LevelName() != "" {
		t.Fatalf("expected an empty level")
	}
	if err := e.Load("L1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.Tiles().Len() != 1 || e.Objects().Len() != 1 || e.LevelName() != "L1" {
		t.Fatalf("expected L1 restored")
	}
	if e.History().CanUndo() {
		t.Fatalf("expected history cleared on load")
	}

	next, err := e.NextLevel()
	if err != nil || next != "L2" {
		t.Fatalf("expected next level L2, got %q (%v)", next, err)
	}
	entries, _ := e.Levels()
	if len(entries) != 2 {
		t.Fatalf("expected 2 levels, got %v", entries)
	}
	if err := e.DeleteLevel("L2"); err != nil {
		t.Fatalf("DeleteLevel: %v", err)
	}
	if e.LevelName() != "" {
		t.Fatalf("expected level name cleared after deleting the open level")
	}
	if err := e.Load("L2"); !errors.Is(err, levels.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBrushSize(t *testing.T) {
	e := newTestEditor(t)
	cases := []struct {
		name string
		step func()
		want int
	}{
		{"grow", e.GrowBrush, 3},
		{"grow again", e.GrowBrush, 5},
		{"shrink", e.ShrinkBrush, 3},
		{"step up", func() { e.StepBrush(3) }, 9},
		{"clamped", e.GrowBrush, 9},
		{"set even", func() { e.SetBrushSize(4) }, 5},
		{"step down", func() { e.StepBrush(-9) }, 1},
	}
	for _, c := range cases {
		c.step()
		if e.BrushSize() != c.want {
			t.Fatalf("%s: expected %d, got %d", c.name, c.want, e.BrushSize())
		}
	}
}

func TestSetCurrentTileUnknown(t *testing.T) {
	e := newTestEditor(t)
	if err := e.SetCurrentTile("Lava"); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
}
