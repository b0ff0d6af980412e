package ecs

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/PvttJebus/OhMyGord/grid"
)

const collisionTypeObject cp.CollisionType = 1

// PhysicsWorld owns the Chipmunk space holding one static box per placed
// object. The editor never steps the simulation; it only asks which
// colliders sit under a point or inside a box.
type PhysicsWorld struct {
	space *cp.Space

	entityShapes  map[Entity]*cp.Shape
	shapeToEntity map[*cp.Shape]Entity
	bounds        map[Entity]grid.Rect
}

// NewPhysicsWorld creates an empty query space.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:         cp.NewSpace(),
		entityShapes:  make(map[Entity]*cp.Shape),
		shapeToEntity: make(map[*cp.Shape]Entity),
		bounds:        make(map[Entity]grid.Rect),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// SetBox places the collider of e. box is the unrotated world rect and
// rotation is in degrees around its centre. Any previous shape is replaced.
func (pw *PhysicsWorld) SetBox(e Entity, box grid.Rect, rotation float64) {
	if pw == nil || pw.space == nil || !e.Valid() {
		return
	}
	pw.Remove(e)
	box = box.Normalize()
	if box.Width <= 0 || box.Height <= 0 {
		return
	}

	var shape *cp.Shape
	if math.Mod(rotation, 360) == 0 {
		bb := cp.BB{L: box.X, B: box.Y, R: box.X + box.Width, T: box.Y + box.Height}
		shape = cp.NewBox2(pw.space.StaticBody, bb, 0)
	} else {
		verts := rotatedCorners(box, rotation)
		shape = cp.NewPolyShapeRaw(pw.space.StaticBody, len(verts), verts, 0)
		box = cornerBounds(verts)
	}
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeObject)
	pw.space.AddShape(shape)

	pw.entityShapes[e] = shape
	pw.shapeToEntity[shape] = e
	pw.bounds[e] = box
}

// Remove drops the collider of e.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	shape, ok := pw.entityShapes[e]
	if !ok {
		return
	}
	if pw.space != nil {
		pw.space.RemoveShape(shape)
	}
	delete(pw.entityShapes, e)
	delete(pw.shapeToEntity, shape)
	delete(pw.bounds, e)
}

// Clear removes every collider.
func (pw *PhysicsWorld) Clear() {
	if pw == nil {
		return
	}
	for e := range pw.entityShapes {
		pw.Remove(e)
	}
}

func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.entityShapes)
}

// Bounds returns the axis aligned bounds of the collider of e.
func (pw *PhysicsWorld) Bounds(e Entity) (grid.Rect, bool) {
	if pw == nil {
		return grid.Rect{}, false
	}
	r, ok := pw.bounds[e]
	return r, ok
}

// QueryPoint returns the entities whose collider strictly contains p.
func (pw *PhysicsWorld) QueryPoint(p grid.Vec2) []Entity {
	if pw == nil || pw.space == nil || len(pw.entityShapes) == 0 {
		return nil
	}
	pt := cp.Vector{X: p.X, Y: p.Y}
	var hits []Entity
	pw.space.BBQuery(cp.BB{L: p.X, B: p.Y, R: p.X, T: p.Y}, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if shape.PointQuery(pt).Distance >= 0 {
			return
		}
		if e, ok := pw.shapeToEntity[shape]; ok {
			hits = append(hits, e)
		}
	}, nil)
	return hits
}

// QueryRect returns the entities whose collider bounds overlap r with
// positive area.
func (pw *PhysicsWorld) QueryRect(r grid.Rect) []Entity {
	if pw == nil || pw.space == nil || len(pw.entityShapes) == 0 {
		return nil
	}
	r = r.Normalize()
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	var hits []Entity
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok {
			return
		}
		if pw.bounds[e].Overlaps(r) {
			hits = append(hits, e)
		}
	}, nil)
	return hits
}

func rotatedCorners(box grid.Rect, degrees float64) []cp.Vector {
	c := box.Center()
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	hw, hh := box.Width/2, box.Height/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	verts := make([]cp.Vector, 0, 4)
	for _, v := range local {
		verts = append(verts, cp.Vector{
			X: c.X + v[0]*cos - v[1]*sin,
			Y: c.Y + v[0]*sin + v[1]*cos,
		})
	}
	return verts
}

func cornerBounds(verts []cp.Vector) grid.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return grid.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
