package editor

import (
	"fmt"
	"log"

	"github.com/PvttJebus/OhMyGord/groups"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

// Tool is a toolbar tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolDraw
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "Draw"
	case ToolErase:
		return "Erase"
	default:
		return "Select"
	}
}

// Clipboard moves copied level fragments in and out of the editor.
type Clipboard interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// SelectTool switches to the state behind tool.
func (e *Editor) SelectTool(tool Tool) {
	e.SetMode(ModeEdit)
	switch tool {
	case ToolDraw:
		e.machine.ChangeState(StateDrawingTiles)
	case ToolErase:
		e.machine.ChangeState(StateErasingTiles)
	default:
		e.machine.ChangeState(StateSelecting)
	}
}

// Tool returns the tool matching the current state.
func (e *Editor) Tool() Tool {
	switch e.machine.Current() {
	case StateDrawingTiles:
		return ToolDraw
	case StateErasingTiles:
		return ToolErase
	default:
		return ToolSelect
	}
}

// SetCurrentTile picks the brush tile and switches to drawing.
func (e *Editor) SetCurrentTile(name string) error {
	if !e.palette.HasTile(name) {
		return fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	e.currentTile = name
	e.SelectTool(ToolDraw)
	return nil
}

func (e *Editor) SetBrushSize(size int) {
	e.brushSize = tilemap.ClampBrushSize(size)
}

// GrowBrush and ShrinkBrush step through the odd brush sizes.
func (e *Editor) GrowBrush()   { e.StepBrush(1) }
func (e *Editor) ShrinkBrush() { e.StepBrush(-1) }

// StepBrush moves the brush by steps odd sizes.
func (e *Editor) StepBrush(steps int) {
	size := e.brushSize + 2*steps
	if size < tilemap.MinBrushSize {
		size = tilemap.MinBrushSize
	}
	e.SetBrushSize(size)
}

func (e *Editor) SetSnapping(on bool) {
	e.snapping = on
}

// SpawnTemplate places a new object from the palette under the cursor and
// makes it follow the pointer until it is dropped.
func (e *Editor) SpawnTemplate(index int) (objects.ID, error) {
	e.SetMode(ModeEdit)
	if _, ok := e.palette.Template(index); !ok {
		return 0, fmt.Errorf("%w: %d", objects.ErrUnknownTemplate, index)
	}
	e.machine.ChangeState(StateIdle)
	e.saveState()
	id, err := e.objects.Spawn(index, e.SnappedPointer())
	if err != nil {
		return 0, err
	}
	e.sticky.id = id
	e.machine.ChangeState(StateStickySpawning)
	return id, nil
}

// settle force-exits the current state, committing or rolling back any
// interaction in flight, and returns the state to resume afterwards.
func (e *Editor) settle() StateID {
	resume := StateSelecting
	switch cur := e.machine.Current(); cur {
	case StateDrawingTiles, StateErasingTiles:
		resume = cur
	}
	e.machine.ChangeState(StateIdle)
	return resume
}

func (e *Editor) Undo() (bool, error) {
	resume := e.settle()
	ok, err := e.history.Undo(e)
	e.machine.ChangeState(resume)
	return ok, err
}

func (e *Editor) Redo() (bool, error) {
	resume := e.settle()
	ok, err := e.history.Redo(e)
	e.machine.ChangeState(resume)
	return ok, err
}

// DeleteSelection removes every selected tile and object.
func (e *Editor) DeleteSelection() error {
	resume := e.settle()
	defer e.machine.ChangeState(resume)
	e.prune()
	if e.selection.Empty() {
		return ErrEmptySelection
	}
	e.saveState()
	for _, c := range e.selection.Cells() {
		e.tiles.SetTile(c, "")
	}
	for _, id := range e.selection.Objects() {
		e.destroyObject(id)
	}
	e.clearSelection()
	return nil
}

// CopySelection encodes the selected tiles and objects as a level
// fragment.
func (e *Editor) CopySelection() ([]byte, error) {
	e.prune()
	if e.selection.Empty() {
		return nil, ErrEmptySelection
	}
	doc := levels.CaptureSelection(e.World(), e.selection.Cells(), e.selection.Objects())
	return levels.Marshal(doc)
}

// Paste adds a fragment produced by CopySelection with its top left cell
// under the cursor, and selects what was pasted.
func (e *Editor) Paste(data []byte) error {
	doc, err := levels.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("editor: paste: %w", err)
	}
	origin, ok := doc.Origin(e.grid)
	if !ok {
		return ErrEmptySelection
	}
	e.settle()
	e.saveState()

	offset := e.PointerCell().Sub(origin)
	w := e.World()
	w.Groups = nil
	report, cells, ids := levels.Merge(w, doc, offset, e.grid.CellDeltaToWorld(offset))
	if report.SkippedTiles > 0 || report.SkippedObjects > 0 {
		log.Printf("editor: paste skipped %d tiles and %d objects", report.SkippedTiles, report.SkippedObjects)
	}

	e.clearSelection()
	for _, c := range cells {
		e.selection.AddCell(c)
	}
	for _, id := range ids {
		e.selection.AddObject(id)
	}
	e.machine.ChangeState(StateSelecting)
	return nil
}

func (e *Editor) CopyToClipboard() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	data, err := e.CopySelection()
	if err != nil {
		return err
	}
	return e.clipboard.Write(data)
}

func (e *Editor) PasteFromClipboard() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	data, err := e.clipboard.Read()
	if err != nil {
		return err
	}
	return e.Paste(data)
}

// SetParameter validates, clamps and stores a parameter of id.
func (e *Editor) SetParameter(id objects.ID, name, value string) error {
	if !e.objects.Exists(id) {
		return fmt.Errorf("%w: %v", objects.ErrNotFound, id)
	}
	if p, ok := e.objects.Parameters(id).Get(name); ok && p.Value == value {
		return nil
	}
	e.saveState()
	return e.objects.SetParameter(id, name, value)
}

func (e *Editor) CreateGroup(name string) groups.ID {
	e.saveState()
	return e.groups.Create(name)
}

func (e *Editor) DeleteGroup(id groups.ID) error {
	if _, ok := e.groups.Get(id); !ok {
		return fmt.Errorf("%w: %d", groups.ErrNotFound, id)
	}
	if e.machine.Current() == StateGroupEditing && e.activeGroup == id {
		e.machine.ChangeState(StateSelecting)
	}
	e.saveState()
	return e.groups.Delete(id)
}

func (e *Editor) RenameGroup(id groups.ID, name string) error {
	if _, ok := e.groups.Get(id); !ok {
		return fmt.Errorf("%w: %d", groups.ErrNotFound, id)
	}
	e.saveState()
	return e.groups.Rename(id, name)
}

// EditGroup enters GroupEditing for id.
func (e *Editor) EditGroup(id groups.ID) error {
	if _, ok := e.groups.Get(id); !ok {
		return fmt.Errorf("%w: %d", groups.ErrNotFound, id)
	}
	e.SetMode(ModeEdit)
	e.machine.ChangeState(StateIdle)
	e.clearSelection()
	e.activeGroup = id
	e.machine.ChangeState(StateGroupEditing)
	return nil
}
