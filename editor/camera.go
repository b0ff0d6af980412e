package editor

import (
	"github.com/PvttJebus/OhMyGord/config"
	"github.com/PvttJebus/OhMyGord/grid"
)

// Camera maps between screen pixels and world units. Offset is the world
// position drawn at the top left corner of the screen.
type Camera struct {
	Offset  grid.Vec2
	Zoom    float64
	Width   float64
	Height  float64
	MinZoom float64
	MaxZoom float64
}

func NewCamera(cfg config.Camera, width, height float64) *Camera {
	c := &Camera{Zoom: cfg.Zoom, MinZoom: cfg.MinZoom, MaxZoom: cfg.MaxZoom, Width: width, Height: height}
	if c.MinZoom <= 0 {
		c.MinZoom = 1
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = c.MinZoom
	}
	c.Zoom = grid.Clamp(c.Zoom, c.MinZoom, c.MaxZoom)
	return c
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

func (c *Camera) ScreenToWorld(p grid.Vec2) grid.Vec2 {
	return c.Offset.Add(p.Scale(1 / c.zoom()))
}

func (c *Camera) WorldToScreen(p grid.Vec2) grid.Vec2 {
	return p.Sub(c.Offset).Scale(c.zoom())
}

// Visible reports whether a world position is inside the viewport.
func (c *Camera) Visible(p grid.Vec2) bool {
	s := c.WorldToScreen(p)
	return s.X >= 0 && s.Y >= 0 && s.X < c.Width && s.Y < c.Height
}

// ViewRect returns the visible area in world units.
func (c *Camera) ViewRect() grid.Rect {
	z := c.zoom()
	return grid.Rect{X: c.Offset.X, Y: c.Offset.Y, Width: c.Width / z, Height: c.Height / z}
}

// Pan moves the view by a screen space delta, as when dragging the canvas.
func (c *Camera) Pan(screenDelta grid.Vec2) {
	c.Offset = c.Offset.Sub(screenDelta.Scale(1 / c.zoom()))
}

// ZoomAt scales the view by factor keeping the world point under screen
// fixed.
func (c *Camera) ZoomAt(screen grid.Vec2, factor float64) {
	if factor <= 0 {
		return
	}
	before := c.ScreenToWorld(screen)
	c.Zoom = grid.Clamp(c.zoom()*factor, c.MinZoom, c.MaxZoom)
	after := c.ScreenToWorld(screen)
	c.Offset = c.Offset.Add(before.Sub(after))
}

func (c *Camera) Resize(width, height float64) {
	c.Width, c.Height = width, height
}

// CenterOn moves the view so p is in the middle of the screen.
func (c *Camera) CenterOn(p grid.Vec2) {
	z := c.zoom()
	c.Offset = grid.Vec2{X: p.X - c.Width/(2*z), Y: p.Y - c.Height/(2*z)}
}
