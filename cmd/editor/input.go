package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/PvttJebus/OhMyGord/editor"
	"github.com/PvttJebus/OhMyGord/grid"
)

var keyBindings = map[ebiten.Key]editor.Key{
	ebiten.KeyEnter:     editor.KeyReturn,
	ebiten.KeyEscape:    editor.KeyEscape,
	ebiten.KeyDelete:    editor.KeyDelete,
	ebiten.KeyBackspace: editor.KeyBackspace,
	ebiten.KeyZ:         editor.KeyZ,
	ebiten.KeyY:         editor.KeyY,
	ebiten.KeyC:         editor.KeyC,
	ebiten.KeyV:         editor.KeyV,
	ebiten.KeyArrowUp:   editor.KeyUp,
	ebiten.KeyArrowDown: editor.KeyDown,
}

func sampleButton(b ebiten.MouseButton) editor.Button {
	return editor.Button{
		Pressed:  inpututil.IsMouseButtonJustPressed(b),
		Held:     ebiten.IsMouseButtonPressed(b),
		Released: inpututil.IsMouseButtonJustReleased(b),
	}
}

// sampleInput reads one frame of ebiten input. Keyboard input is dropped
// while a text field has focus.
func sampleInput(start time.Time, overUI, typing bool) editor.Input {
	cx, cy := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	in := editor.Input{
		Time:   time.Since(start).Seconds(),
		Cursor: grid.Vec2{X: float64(cx), Y: float64(cy)},
		Left:   sampleButton(ebiten.MouseButtonLeft),
		Right:  sampleButton(ebiten.MouseButtonRight),
		Middle: sampleButton(ebiten.MouseButtonMiddle),
		Wheel:  wy,
		OverUI: overUI,
	}
	if typing {
		return in
	}

	in.Ctrl = ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	in.Shift = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.Alt = ebiten.IsKeyPressed(ebiten.KeyAlt)
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if mapped, ok := keyBindings[k]; ok {
			in.Keys = append(in.Keys, mapped)
		}
	}
	if !in.Ctrl {
		in.Pan = panAxis()
	}
	return in
}

func panAxis() grid.Vec2 {
	var p grid.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		p.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		p.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		p.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		p.Y++
	}
	return p
}
