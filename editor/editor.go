// Package editor is the in-game level editor: a session that owns the tile
// layer, placed objects, selection and history, and an interaction state
// machine that interprets one frame of input at a time.
package editor

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/fsm"
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/groups"
	"github.com/PvttJebus/OhMyGord/history"
	"github.com/PvttJebus/OhMyGord/levels"
	"github.com/PvttJebus/OhMyGord/objects"
	"github.com/PvttJebus/OhMyGord/prefabs"
	"github.com/PvttJebus/OhMyGord/script"
	"github.com/PvttJebus/OhMyGord/selection"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

var (
	ErrMissingCollaborator = errors.New("editor: missing collaborator")
	ErrEmptySelection      = errors.New("editor: nothing selected")
	ErrUnknownTile         = errors.New("editor: unknown tile")
	ErrNoClipboard         = errors.New("editor: no clipboard")
)

// Materials assigned while highlighting.
const (
	MaterialHighlight      = "highlight"
	MaterialGroupHighlight = "group_highlight"
)

const (
	defaultScreenWidth  = 1280
	defaultScreenHeight = 720
)

// Deps are the collaborators an Editor works against. Palette, Tiles,
// Objects and Store are required; the rest get defaults.
type Deps struct {
	Palette   *prefabs.Palette
	Tiles     *tilemap.Layer
	Objects   *objects.Registry
	Groups    *groups.Registry
	Store     levels.Store
	Toggler   groups.Toggler
	Clipboard Clipboard
	// Now stamps saved levels. Defaults to time.Now.
	Now func() time.Time
}

// Editor is one editing session. It is not safe for concurrent use; call
// it from the frame loop only.
type Editor struct {
	cfg       config.Config
	grid      grid.Grid
	palette   *prefabs.Palette
	tiles     *tilemap.Layer
	objects   *objects.Registry
	groups    *groups.Registry
	store     levels.Store
	toggler   groups.Toggler
	clipboard Clipboard
	now       func() time.Time

	history     *history.History
	selection   *selection.Model
	highlighter *selection.Highlighter
	camera      *Camera

	machine *fsm.Machine[StateID]
	mode    *fsm.Machine[Mode]

	idle     *idleState
	selecter *selectingState
	dragging *draggingState
	drawing  *drawingState
	erasing  *erasingState
	sticky   *stickyState
	grouping *groupEditingState

	input       Input
	prevCursor  grid.Vec2
	panning     bool
	currentTile string
	brushSize   int
	snapping    bool
	activeGroup groups.ID
	levelName   string
}

// New validates deps and returns an editor in the Idle state.
func New(cfg config.Config, deps Deps) (*Editor, error) {
	var missing []string
	if deps.Palette == nil {
		missing = append(missing, "palette")
	}
	if deps.Tiles == nil {
		missing = append(missing, "tile layer")
	}
	if deps.Objects == nil {
		missing = append(missing, "object registry")
	}
	if deps.Store == nil {
		missing = append(missing, "level store")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollaborator, strings.Join(missing, ", "))
	}

	e := &Editor{
		cfg:       cfg,
		grid:      grid.New(cfg.CellSize),
		palette:   deps.Palette,
		tiles:     deps.Tiles,
		objects:   deps.Objects,
		groups:    deps.Groups,
		store:     deps.Store,
		toggler:   deps.Toggler,
		clipboard: deps.Clipboard,
		now:       deps.Now,
		history:   history.New(cfg.MaxHistory),
		selection: selection.NewModel(),
		camera:    NewCamera(cfg.Camera, defaultScreenWidth, defaultScreenHeight),
		brushSize: tilemap.ClampBrushSize(cfg.BrushSize),
		snapping:  cfg.GridSnapping,
	}
	if e.groups == nil {
		e.groups = groups.NewRegistry()
	}
	if e.toggler == nil {
		e.toggler = script.NewRuntime(e.objects)
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.objects.SetTemplates(e.palette)
	e.highlighter = selection.NewHighlighter(e.objects)
	if tiles := e.palette.Tiles(); len(tiles) > 0 {
		e.currentTile = tiles[0]
	}

	e.setupStates()
	e.setupModes()
	return e, nil
}

func (e *Editor) setupStates() {
	e.machine = fsm.New[StateID]()
	e.idle = &idleState{e: e}
	e.selecter = &selectingState{e: e}
	e.dragging = &draggingState{e: e}
	e.drawing = &drawingState{e: e}
	e.erasing = &erasingState{e: e}
	e.sticky = &stickyState{e: e}
	e.grouping = &groupEditingState{e: e}

	e.machine.AddState(StateIdle, nil, nil, e.idle.update)
	e.machine.AddState(StateSelecting, e.selecter.enter, e.selecter.exit, e.selecter.update)
	e.machine.AddState(StateDraggingSelected, e.dragging.enter, e.dragging.exit, e.dragging.update)
	e.machine.AddState(StateDrawingTiles, e.drawing.enter, e.drawing.exit, e.drawing.update)
	e.machine.AddState(StateErasingTiles, nil, nil, e.erasing.update)
	e.machine.AddState(StateStickySpawning, e.sticky.enter, e.sticky.exit, e.sticky.update)
	e.machine.AddState(StateGroupEditing, e.grouping.enter, e.grouping.exit, e.grouping.update)
	e.machine.OnChange = func(from, to StateID) {
		log.Printf("editor: entered %s", to)
	}
	e.machine.ChangeState(StateIdle)
}

// Update processes one frame of input.
func (e *Editor) Update(in Input) {
	e.input = in.masked()
	defer func() { e.prevCursor = in.Cursor }()

	if e.input.JustPressed(KeyReturn) {
		e.ToggleMode()
	}
	if e.mode.Current() == ModePlay {
		e.mode.Update()
		return
	}
	e.handleHotkeys()
	e.updateCamera(in)
	if e.panning {
		return
	}
	e.machine.Update()
}

func (e *Editor) handleHotkeys() {
	in := e.input
	switch {
	case in.Ctrl && in.JustPressed(KeyZ) && in.Shift, in.Ctrl && in.JustPressed(KeyY):
		if _, err := e.Redo(); err != nil {
			log.Printf("editor: redo: %v", err)
		}
	case in.Ctrl && in.JustPressed(KeyZ):
		if _, err := e.Undo(); err != nil {
			log.Printf("editor: undo: %v", err)
		}
	case in.Ctrl && in.JustPressed(KeyC):
		if err := e.CopyToClipboard(); err != nil {
			log.Printf("editor: copy: %v", err)
		}
	case in.Ctrl && in.JustPressed(KeyV):
		if err := e.PasteFromClipboard(); err != nil {
			log.Printf("editor: paste: %v", err)
		}
	case in.JustPressed(KeyDelete), in.JustPressed(KeyBackspace):
		if err := e.DeleteSelection(); err != nil && !errors.Is(err, ErrEmptySelection) {
			log.Printf("editor: delete: %v", err)
		}
	case in.JustPressed(KeyUp):
		e.GrowBrush()
	case in.JustPressed(KeyDown):
		e.ShrinkBrush()
	}
}

func (e *Editor) updateCamera(raw Input) {
	in := e.input
	switch {
	case in.Middle.Pressed:
		e.panning = true
	case !in.Middle.Held:
		e.panning = false
	case e.panning:
		e.camera.Pan(raw.Cursor.Sub(e.prevCursor))
	}
	if in.Wheel != 0 {
		factor := 1.1
		if in.Wheel < 0 {
			factor = 1 / factor
		}
		e.camera.ZoomAt(raw.Cursor, factor)
	}
	if in.Pan != (grid.Vec2{}) {
		e.camera.Pan(in.Pan.Scale(-e.cfg.Camera.PanSpeed))
	}
}

// Pointer returns the cursor position in world space.
func (e *Editor) Pointer() grid.Vec2 {
	return e.camera.ScreenToWorld(e.input.Cursor)
}

func (e *Editor) PointerCell() grid.Cell {
	return e.grid.WorldToCell(e.Pointer())
}

// SnappedPointer returns the centre of the cell under the cursor when
// snapping is on, otherwise the precise cursor position.
func (e *Editor) SnappedPointer() grid.Vec2 {
	if e.snapping {
		return e.grid.SnapToGrid(e.Pointer())
	}
	return e.Pointer()
}

// World bundles the editable state for capture and apply.
func (e *Editor) World() levels.World {
	return levels.World{Tiles: e.tiles, Objects: e.objects, Groups: e.groups, Palette: e.palette}
}

// Snapshot captures the whole editable state. Timestamps are left out so
// identical states produce identical bytes.
func (e *Editor) Snapshot() ([]byte, error) {
	return levels.Marshal(levels.Capture(e.World()))
}

// Restore replaces the whole editable state with a snapshot.
func (e *Editor) Restore(data []byte) error {
	doc, err := levels.Unmarshal(data)
	if err != nil {
		return err
	}
	active := e.groups.IndexOf(e.activeGroup)
	levels.Apply(e.World(), doc)
	e.activeGroup = 0
	if all := e.groups.All(); active >= 0 && active < len(all) {
		e.activeGroup = all[active].ID
	}
	e.highlighter.Forget()
	e.prune()
	return nil
}

// saveState pushes a history entry, logging failures.
func (e *Editor) saveState() {
	if err := e.history.SaveState(e); err != nil {
		log.Printf("editor: save state: %v", err)
	}
}

// prune drops references to objects and tiles that no longer exist.
func (e *Editor) prune() {
	e.selection.Prune(e.objects.Exists, e.tiles.Has)
	e.groups.RemoveNullMembers(e.objects.Exists)
}

// destroyObject removes id and every reference to it.
func (e *Editor) destroyObject(id objects.ID) {
	e.highlighter.Restore(id)
	e.selection.RemoveObject(id)
	if g, ok := e.groups.GroupOf(id); ok {
		e.groups.RemoveMember(g, id)
	}
	e.objects.Destroy(id)
}

// clearSelection empties the selection and drops its highlights.
func (e *Editor) clearSelection() {
	e.selection.Clear()
	e.highlighter.RestoreAll()
}

func (e *Editor) highlightSelection() {
	for _, id := range e.selection.Objects() {
		e.highlighter.Apply(id, MaterialHighlight)
	}
}

// setStartPosition records pos in the startPosition parameter, if the
// object has one.
func (e *Editor) setStartPosition(id objects.ID, pos grid.Vec2) {
	store := e.objects.Parameters(id)
	if _, ok := store.Get("startPosition"); !ok {
		return
	}
	if err := store.SetVector2("startPosition", pos); err != nil {
		log.Printf("editor: start position of %v: %v", id, err)
	}
}

func (e *Editor) Config() config.Config { return e.cfg }
func (e *Editor) Grid() grid.Grid { return e.grid }
func (e *Editor) Palette() *prefabs.Palette { return e.palette }
func (e *Editor) Tiles() *tilemap.Layer { return e.tiles }
func (e *Editor) Objects() *objects.Registry { return e.objects }
func (e *Editor) Groups() *groups.Registry { return e.groups }
func (e *Editor) Selection() *selection.Model { return e.selection }
func (e *Editor) Highlighter() *selection.Highlighter { return e.highlighter }
func (e *Editor) History() *history.History { return e.history }
func (e *Editor) Camera() *Camera { return e.camera }
func (e *Editor) State() StateID { return e.machine.Current() }
func (e *Editor) CurrentTile() string { return e.currentTile }
func (e *Editor) BrushSize() int { return e.brushSize }
func (e *Editor) Snapping() bool { return e.snapping }
func (e *Editor) ActiveGroup() groups.ID { return e.activeGroup }
func (e *Editor) LevelName() string { return e.levelName }

// Sticky returns the object following the cursor, if any.
func (e *Editor) Sticky() (objects.ID, bool) {
	if e.machine.Current() != StateStickySpawning || !e.objects.Exists(e.sticky.id) {
		return 0, false
	}
	return e.sticky.id, true
}

// SetPalette swaps in a reloaded palette. Placed objects keep their
// components; new spawns use the new templates.
func (e *Editor) SetPalette(p *prefabs.Palette) {
	if p == nil {
		return
	}
	e.palette = p
	e.objects.SetTemplates(p)
	if !p.HasTile(e.currentTile) {
		e.currentTile = ""
		if tiles := p.Tiles(); len(tiles) > 0 {
			e.currentTile = tiles[0]
		}
	}
}
