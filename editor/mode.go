package editor

import (
	"log"

	"github.com/PvttJebus/OhMyGord/fsm"
	"github.com/PvttJebus/OhMyGord/objects"
)

// Mode is the top level editor mode.
type Mode string

const (
	ModeEdit Mode = "Edit"
	ModePlay Mode = "Play"
)

func (e *Editor) setupModes() {
	e.mode = fsm.New[Mode]()
	e.mode.AddState(ModeEdit, nil, nil, nil)
	e.mode.AddState(ModePlay, e.enterPlay, e.exitPlay, e.updatePlay)
	e.mode.OnChange = func(from, to Mode) {
		log.Printf("editor: %s mode", to)
	}
	e.mode.ChangeState(ModeEdit)
}

func (e *Editor) Mode() Mode { return e.mode.Current() }

func (e *Editor) SetMode(m Mode) {
	e.mode.ChangeState(m)
}

func (e *Editor) ToggleMode() {
	if e.mode.Current() == ModePlay {
		e.SetMode(ModeEdit)
		return
	}
	e.SetMode(ModePlay)
}

func (e *Editor) enterPlay() {
	e.machine.ChangeState(StateIdle)
	e.clearSelection()
}

func (e *Editor) exitPlay() {
	e.machine.ChangeState(StateSelecting)
}

func (e *Editor) updatePlay() {
	if !e.input.Left.Pressed {
		return
	}
	id, ok := e.objects.TopAt(e.Pointer())
	if !ok {
		return
	}
	if _, interactable := e.objects.Interactable(id); !interactable {
		return
	}
	if err := e.Toggle(id); err != nil {
		log.Printf("editor: toggle %v: %v", id, err)
	}
}

// Toggle activates id, or its whole group when it belongs to one.
func (e *Editor) Toggle(id objects.ID) error {
	if g, ok := e.groups.GroupOf(id); ok {
		return e.groups.ActivateAll(g, e.toggler)
	}
	return e.toggler.ToggleSelf(id)
}
