package editor

import (
	"bytes"
	"log"

	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

// StateID names an interaction state.
type StateID string

const (
	StateIdle             StateID = "Idle"
	StateSelecting        StateID = "Selecting"
	StateDraggingSelected StateID = "DraggingSelected"
	StateDrawingTiles     StateID = "DrawingTiles"
	StateErasingTiles     StateID = "ErasingTiles"
	StateStickySpawning   StateID = "StickySpawning"
	StateGroupEditing     StateID = "GroupEditing"
)

// source lets the selection model query the editor's tiles and objects.
type source struct{ e *Editor }

func (s source) Grid() grid.Grid { return s.e.grid }
func (s source) HasTile(c grid.Cell) bool { return s.e.tiles.Has(c) }
func (s source) ObjectIDs() []objects.ID { return s.e.objects.IDs() }
func (s source) ObjectBounds(id objects.ID) (grid.Rect, bool) { return s.e.objects.Bounds(id) }

type idleState struct {
	e *Editor
}

func (s *idleState) update() {
	if s.e.input.Left.Pressed {
		s.e.machine.ChangeState(StateSelecting)
		s.e.machine.Update()
	}
}

type selectingState struct {
	e *Editor

	rectActive bool
	rectStart  grid.Vec2
	rectEnd    grid.Vec2
}

func (s *selectingState) enter() {
	s.e.prune()
	s.e.highlightSelection()
}

func (s *selectingState) exit() {
	s.rectActive = false
	s.e.highlighter.RestoreAll()
}

func (s *selectingState) update() {
	e := s.e
	in := e.input
	if in.Left.Pressed {
		s.press()
		return
	}
	if !s.rectActive {
		return
	}
	s.rectEnd = in.Cursor
	if in.Left.Released || !in.Left.Held {
		s.rectActive = false
		e.selection.SelectRectangle(s.rectStart, s.rectEnd, e.camera, source{e})
		e.highlightSelection()
	}
}

func (s *selectingState) press() {
	e := s.e
	in := e.input
	p := e.Pointer()
	cell := e.grid.WorldToCell(p)
	id, onObject := e.objects.TopAt(p)

	if in.Ctrl {
		switch {
		case onObject:
			if e.selection.ToggleObject(id) {
				e.highlighter.Apply(id, MaterialHighlight)
			} else {
				e.highlighter.Restore(id)
			}
		case e.tiles.Has(cell):
			e.selection.ToggleCell(cell)
		}
		return
	}

	if onObject {
		if !e.selection.HasObject(id) || !e.selection.IsMulti() {
			e.clearSelection()
			e.selection.AddObject(id)
			e.highlighter.Apply(id, MaterialHighlight)
		}
		e.machine.ChangeState(StateDraggingSelected)
		return
	}

	if in.Alt {
		if name, ok := e.tiles.GetTile(cell); ok {
			e.currentTile = name
			e.machine.ChangeState(StateDrawingTiles)
		} else {
			e.machine.ChangeState(StateErasingTiles)
		}
		return
	}

	if e.selection.HasCell(cell) {
		e.machine.ChangeState(StateDraggingSelected)
		return
	}

	e.clearSelection()
	s.rectActive = true
	s.rectStart = in.Cursor
	s.rectEnd = in.Cursor
}

// rect returns the rubber band rectangle in screen space.
func (s *selectingState) rect() (grid.Rect, bool) {
	if !s.rectActive {
		return grid.Rect{}, false
	}
	return grid.RectFromPoints(s.rectStart, s.rectEnd), true
}

type movingTile struct {
	cell grid.Cell
	name string
}

type draggingState struct {
	e *Editor

	start     grid.Vec2
	delta     grid.Vec2
	objects   []objects.ID
	origins   map[objects.ID]grid.Vec2
	tiles     []movingTile
	snapshot  []byte
	committed bool
}

func (s *draggingState) enter() {
	e := s.e
	e.prune()
	snap, err := e.Snapshot()
	if err != nil {
		log.Printf("editor: drag snapshot: %v", err)
	}
	s.snapshot = snap
	s.start = e.Pointer()
	s.delta = grid.Vec2{}
	s.committed = false

	s.objects = e.selection.Objects()
	s.origins = make(map[objects.ID]grid.Vec2, len(s.objects))
	for _, id := range s.objects {
		pos, _ := e.objects.Position(id)
		s.origins[id] = pos
		e.objects.SetEditing(id, true)
		e.highlighter.Apply(id, MaterialHighlight)
	}

	s.tiles = s.tiles[:0]
	for _, c := range e.selection.Cells() {
		name, ok := e.tiles.GetTile(c)
		if !ok {
			continue
		}
		s.tiles = append(s.tiles, movingTile{cell: c, name: name})
		e.tiles.SetTile(c, "")
	}
}

func (s *draggingState) update() {
	e := s.e
	s.delta = e.Pointer().Sub(s.start)
	for _, id := range s.objects {
		if !e.objects.Exists(id) {
			continue
		}
		_ = e.objects.SetPosition(id, s.origins[id].Add(s.delta))
	}
	if e.input.Left.Released || !e.input.Left.Held {
		s.commit()
		e.machine.ChangeState(StateSelecting)
	}
}

func (s *draggingState) commit() {
	e := s.e
	cellDelta := e.grid.SnapDelta(s.delta)

	cells := make([]grid.Cell, 0, len(s.tiles))
	for _, t := range s.tiles {
		c := t.cell.Add(cellDelta)
		e.tiles.SetTile(c, t.name)
		cells = append(cells, c)
	}
	e.selection.ReplaceCells(cells)

	for _, id := range s.objects {
		if !e.objects.Exists(id) {
			continue
		}
		pos := s.origins[id].Add(s.delta)
		if e.snapping {
			pos = e.grid.SnapToGrid(pos)
		}
		_ = e.objects.SetPosition(id, pos)
		e.setStartPosition(id, pos)
	}

	after, err := e.Snapshot()
	if err != nil {
		log.Printf("editor: drag snapshot: %v", err)
	}
	if s.snapshot != nil && !bytes.Equal(s.snapshot, after) {
		e.history.Push(s.snapshot)
	}
	s.committed = true
}

// exit settles an interrupted drag back to where it started.
func (s *draggingState) exit() {
	e := s.e
	if !s.committed {
		for _, t := range s.tiles {
			e.tiles.SetTile(t.cell, t.name)
		}
		for _, id := range s.objects {
			if e.objects.Exists(id) {
				_ = e.objects.SetPosition(id, s.origins[id])
			}
		}
	}
	for _, id := range s.objects {
		e.objects.SetEditing(id, false)
	}
	e.highlighter.RestoreAll()
	s.objects = nil
	s.tiles = nil
	s.snapshot = nil
	s.delta = grid.Vec2{}
}

type drawingState struct {
	e *Editor

	hasClick    bool
	lastClick   float64
	clickCell   grid.Cell
	floodTarget string
	painting    bool
	paintCell   grid.Cell
}

func (s *drawingState) enter() {
	s.hasClick = false
	s.painting = false
}

func (s *drawingState) exit() {
	s.painting = false
}

func (s *drawingState) update() {
	e := s.e
	in := e.input
	p := e.Pointer()
	cell := e.grid.WorldToCell(p)
	visible := e.camera.Visible(p)

	if in.Right.Pressed && visible {
		e.saveState()
	}
	if in.Right.Held && visible {
		e.tiles.SetTile(cell, "")
		for _, id := range e.objects.ObjectsAt(p) {
			e.destroyObject(id)
		}
		e.selection.RemoveCell(cell)
	}

	if in.Left.Pressed && visible && e.currentTile != "" {
		if s.isDoubleClick(in.Time, cell) {
			e.tiles.SetTile(cell, s.floodTarget)
			n := e.tiles.FloodFill(cell, e.currentTile)
			log.Printf("editor: flood filled %d cells with %s", n, e.currentTile)
			s.hasClick = false
			s.painting = false
			return
		}
		s.floodTarget, _ = e.tiles.GetTile(cell)
		s.lastClick = in.Time
		s.clickCell = cell
		s.hasClick = true
		s.painting = true
		s.paintCell = cell
		e.saveState()
		e.tiles.ApplyBrush(e.grid, cell, e.currentTile, e.brushSize, e.objects)
		return
	}

	if s.painting {
		if !in.Left.Held || in.Left.Released {
			s.painting = false
			return
		}
		if visible && cell != s.paintCell {
			s.paintCell = cell
			e.tiles.ApplyBrush(e.grid, cell, e.currentTile, e.brushSize, e.objects)
		}
	}
}

// isDoubleClick reports whether a press at cell follows the previous
// qualifying click within the configured threshold.
func (s *drawingState) isDoubleClick(now float64, cell grid.Cell) bool {
	if !s.hasClick || cell != s.clickCell {
		return false
	}
	return now-s.lastClick < s.e.cfg.DoubleClickSeconds
}

type erasingState struct {
	e *Editor
}

func (s *erasingState) update() {
	e := s.e
	in := e.input
	p := e.Pointer()
	if !e.camera.Visible(p) {
		return
	}
	if in.Left.Pressed || in.Right.Pressed {
		e.saveState()
	}
	if !in.Left.Held && !in.Right.Held {
		return
	}
	for _, c := range e.tiles.EraseBrush(e.grid.WorldToCell(p), e.brushSize) {
		e.selection.RemoveCell(c)
		for _, id := range e.objects.ObjectsAt(e.grid.CellToWorld(c)) {
			e.destroyObject(id)
		}
	}
}

type stickyState struct {
	e *Editor

	id       objects.ID
	waiting  bool
	suppress bool
}

func (s *stickyState) enter() {
	s.e.highlighter.Apply(s.id, MaterialHighlight)
	s.e.objects.SetEditing(s.id, true)
	s.waiting = s.e.input.Left.Held
	s.suppress = true
}

func (s *stickyState) exit() {
	s.e.objects.SetEditing(s.id, false)
	s.e.highlighter.Restore(s.id)
}

func (s *stickyState) update() {
	e := s.e
	if !e.objects.Exists(s.id) {
		e.machine.ChangeState(StateSelecting)
		return
	}
	pos := e.SnappedPointer()
	_ = e.objects.SetPosition(s.id, pos)

	in := e.input
	if in.Left.Pressed {
		s.waiting = true
	}
	if !in.Left.Released {
		return
	}
	if s.suppress {
		s.suppress = false
		s.waiting = false
		return
	}
	if !s.waiting {
		return
	}
	s.finalize(pos, in.Alt)
}

func (s *stickyState) finalize(pos grid.Vec2, clone bool) {
	e := s.e
	_ = e.objects.SetPosition(s.id, pos)
	e.setStartPosition(s.id, pos)
	if !clone {
		e.machine.ChangeState(StateSelecting)
		return
	}

	e.saveState()
	next, err := e.objects.Clone(s.id, pos)
	if err != nil {
		log.Printf("editor: clone %v: %v", s.id, err)
		e.machine.ChangeState(StateSelecting)
		return
	}
	e.objects.SetEditing(s.id, false)
	e.highlighter.Restore(s.id)
	s.id = next
	e.highlighter.Apply(next, MaterialHighlight)
	e.objects.SetEditing(next, true)
	// The release that placed the original is already consumed.
	s.waiting = false
	s.suppress = e.input.Left.Held
}

type groupEditingState struct {
	e *Editor
}

func (s *groupEditingState) enter() {
	e := s.e
	e.prune()
	for _, id := range e.groups.Members(e.activeGroup) {
		e.highlighter.Apply(id, MaterialGroupHighlight)
		e.selection.AddObject(id)
	}
}

func (s *groupEditingState) exit() {
	s.e.highlighter.RestoreAll()
}

func (s *groupEditingState) update() {
	e := s.e
	in := e.input
	if in.JustPressed(KeyEscape) {
		e.machine.ChangeState(StateSelecting)
		return
	}
	if !in.Left.Pressed {
		return
	}
	id, ok := e.objects.TopAt(e.Pointer())
	if !ok {
		return
	}
	if _, interactable := e.objects.Interactable(id); !interactable {
		return
	}
	e.saveState()
	if g, ok := e.groups.GroupOf(id); ok && g == e.activeGroup {
		e.groups.RemoveMember(g, id)
		e.highlighter.Restore(id)
		e.selection.RemoveObject(id)
		return
	}
	if err := e.groups.AddMember(e.activeGroup, id); err != nil {
		log.Printf("editor: add %v to group: %v", id, err)
		return
	}
	e.highlighter.Apply(id, MaterialGroupHighlight)
	e.selection.AddObject(id)
}

var _ tilemap.Blocker = (*objects.Registry)(nil)
