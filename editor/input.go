package editor

import (
	"slices"

	"github.com/PvttJebus/OhMyGord/grid"
)

// Key is a keyboard key the editor reacts to.
type Key int

const (
	KeyReturn Key = iota
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyZ
	KeyY
	KeyC
	KeyV
	KeyUp
	KeyDown
)

// Button is the state of one pointer button during a frame.
type Button struct {
	Pressed  bool
	Held     bool
	Released bool
}

// Input is one frame of sampled input. Cursor is in screen pixels and Time
// is a monotonic clock in seconds.
type Input struct {
	Time   float64
	Cursor grid.Vec2

	Left   Button
	Right  Button
	Middle Button

	Ctrl  bool
	Shift bool
	Alt   bool

	// Keys holds the keys pressed this frame.
	Keys []Key
	// Wheel is the vertical scroll amount.
	Wheel float64
	// Pan is the held WASD direction, each axis in [-1, 1].
	Pan grid.Vec2
	// OverUI is set when the cursor is above a UI widget.
	OverUI bool
}

func (in Input) JustPressed(k Key) bool {
	return slices.Contains(in.Keys, k)
}

// masked drops the presses that belong to the UI.
func (in Input) masked() Input {
	if !in.OverUI {
		return in
	}
	in.Left.Pressed = false
	in.Right.Pressed = false
	in.Middle.Pressed = false
	in.Wheel = 0
	return in
}
