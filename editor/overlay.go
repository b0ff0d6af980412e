package editor

import (
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/tilemap"
)

// MovingTile is a tile lifted off the layer by an active drag.
type MovingTile struct {
	Cell grid.Cell
	Name string
}

// Overlay is the transient, draw-only state of the active interaction.
type Overlay struct {
	// Brush is the footprint under the cursor while drawing or erasing.
	Brush []grid.Cell
	// DragOffset is the live world delta of a drag.
	DragOffset grid.Vec2
	// MovingTiles are drawn at their cell plus DragOffset.
	MovingTiles []MovingTile
	// SelectionRect is the rubber band in screen space.
	SelectionRect grid.Rect
	HasRect       bool
}

func (e *Editor) Overlay() Overlay {
	var o Overlay
	switch e.machine.Current() {
	case StateDrawingTiles, StateErasingTiles:
		if e.camera.Visible(e.Pointer()) {
			o.Brush = tilemap.Footprint(e.PointerCell(), e.brushSize)
		}
	case StateDraggingSelected:
		o.DragOffset = e.dragging.delta
		for _, t := range e.dragging.tiles {
			o.MovingTiles = append(o.MovingTiles, MovingTile{Cell: t.cell, Name: t.name})
		}
	case StateSelecting:
		o.SelectionRect, o.HasRect = e.selecter.rect()
	}
	return o
}
