// Package objects owns every placed object instance of a level.
package objects

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/PvttJebus/OhMyGord/ecs"
	"github.com/PvttJebus/OhMyGord/ecs/component"
	"github.com/PvttJebus/OhMyGord/grid"
	"github.com/PvttJebus/OhMyGord/params"
	"github.com/PvttJebus/OhMyGord/prefabs"
)

var (
	ErrUnknownTemplate = errors.New("objects: unknown template")
	ErrNotFound        = errors.New("objects: object not found")
)

// ID identifies a placed object. Handles of destroyed objects never match a
// live object again.
type ID = ecs.Entity

// Templates resolves template indices to their specs and parameter schemas.
type Templates interface {
	Template(index int) (prefabs.TemplateSpec, bool)
	Schema(index int) params.Schema
}

// Registry is the sole owner of placed objects. Objects are ECS entities;
// their colliders live in a PhysicsWorld so point and box queries are cheap.
type Registry struct {
	world     *ecs.World
	physics   *ecs.PhysicsWorld
	templates Templates
	seq       uint64
}

func NewRegistry(templates Templates) *Registry {
	return &Registry{
		world:     ecs.NewWorld(),
		physics:   ecs.NewPhysicsWorld(),
		templates: templates,
	}
}

// SetTemplates swaps the template source, e.g. after the palette reloads.
func (r *Registry) SetTemplates(templates Templates) {
	if r == nil {
		return
	}
	r.templates = templates
}

// Templates returns the template source.
func (r *Registry) Templates() Templates {
	if r == nil {
		return nil
	}
	return r.templates
}

// Spawn instantiates the template at index centred on pos.
func (r *Registry) Spawn(index int, pos grid.Vec2) (ID, error) {
	if r == nil || r.templates == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTemplate, index)
	}
	tpl, ok := r.templates.Template(index)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTemplate, index)
	}

	e := ecs.CreateEntity(r.world)
	r.seq++
	store := params.NewStore(r.templates.Schema(index))
	tint := color.RGBA{A: 255}
	if tpl.Color != nil {
		tint = tpl.Color.RGBA8(tint)
	}

	_ = ecs.Add(r.world, e, component.TemplateComponent, component.Template{Index: index, Name: tpl.Name, Kind: tpl.Kind, Seq: r.seq})
	_ = ecs.Add(r.world, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(r.world, e, component.SizeComponent, component.Size{Width: tpl.Size.Width, Height: tpl.Size.Height})
	if tpl.Collider != nil {
		_ = ecs.Add(r.world, e, component.ColliderComponent, component.Collider{
			Width:   tpl.Collider.Width,
			Height:  tpl.Collider.Height,
			OffsetX: tpl.Collider.OffsetX,
			OffsetY: tpl.Collider.OffsetY,
		})
	}
	_ = ecs.Add(r.world, e, component.AppearanceComponent, component.Appearance{Material: tpl.Material, Tint: tint})
	_ = ecs.Add(r.world, e, component.ParametersComponent, component.Parameters{Store: store})
	if tpl.Interactable {
		_ = ecs.Add(r.world, e, component.InteractableComponent, component.Interactable{
			ToggleParam:  tpl.ToggleParam,
			ToggleScript: tpl.ToggleScript,
		})
	}
	r.applyScale(e)
	r.sync(e)
	return e, nil
}

// Clone spawns a copy of id at pos with the same template, transform and
// parameters.
func (r *Registry) Clone(id ID, pos grid.Vec2) (ID, error) {
	tpl, ok := r.Template(id)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	clone, err := r.Spawn(tpl.Index, pos)
	if err != nil {
		return 0, err
	}
	if errs := r.ImportParameters(clone, r.ExportParameters(id)); len(errs) > 0 {
		log.Printf("objects: clone %v parameters: %v", id, errors.Join(errs...))
	}
	t, _ := r.Transform(id)
	t.X, t.Y = pos.X, pos.Y
	_ = r.SetTransform(clone, t)
	if size, ok := r.Size(id); ok {
		_ = r.SetSize(clone, size)
	}
	return clone, nil
}

// Destroy removes id. It reports false when the object does not exist.
func (r *Registry) Destroy(id ID) bool {
	if !r.Exists(id) {
		return false
	}
	r.physics.Remove(id)
	return ecs.DestroyEntity(r.world, id)
}

// Clear destroys every object.
func (r *Registry) Clear() {
	if r == nil {
		return
	}
	r.physics.Clear()
	ecs.Clear(r.world)
}

func (r *Registry) Exists(id ID) bool {
	if r == nil {
		return false
	}
	return ecs.IsAlive(r.world, id)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(ecs.Entities(r.world))
}

// IDs returns live objects in spawn order.
func (r *Registry) IDs() []ID {
	if r == nil {
		return nil
	}
	ids := ecs.Entities(r.world)
	r.sortBySeq(ids)
	return ids
}

func (r *Registry) sortBySeq(ids []ID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return r.seqOf(ids[i]) < r.seqOf(ids[j])
	})
}

func (r *Registry) seqOf(id ID) uint64 {
	t, _ := ecs.Get(r.world, id, component.TemplateComponent)
	return t.Seq
}

// Template returns the template record of id.
func (r *Registry) Template(id ID) (component.Template, bool) {
	if r == nil {
		return component.Template{}, false
	}
	return ecs.Get(r.world, id, component.TemplateComponent)
}

func (r *Registry) Transform(id ID) (component.Transform, bool) {
	if r == nil {
		return component.Transform{}, false
	}
	return ecs.Get(r.world, id, component.TransformComponent)
}

// SetTransform replaces the transform of id and moves its collider.
func (r *Registry) SetTransform(id ID, t component.Transform) error {
	if !r.Exists(id) {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err := ecs.Add(r.world, id, component.TransformComponent, t); err != nil {
		return err
	}
	if store := r.Parameters(id); store != nil {
		if _, ok := store.Get("scale"); ok && t.ScaleX > 0 {
			_ = store.SetFloat("scale", t.ScaleX)
		}
	}
	r.sync(id)
	return nil
}

func (r *Registry) Position(id ID) (grid.Vec2, bool) {
	t, ok := r.Transform(id)
	if !ok {
		return grid.Vec2{}, false
	}
	return grid.Vec2{X: t.X, Y: t.Y}, true
}

func (r *Registry) SetPosition(id ID, pos grid.Vec2) error {
	t, ok := r.Transform(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	t.X, t.Y = pos.X, pos.Y
	if err := ecs.Add(r.world, id, component.TransformComponent, t); err != nil {
		return err
	}
	r.sync(id)
	return nil
}

func (r *Registry) Size(id ID) (component.Size, bool) {
	if r == nil {
		return component.Size{}, false
	}
	return ecs.Get(r.world, id, component.SizeComponent)
}

func (r *Registry) SetSize(id ID, size component.Size) error {
	if !r.Exists(id) {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("objects: set size %v: non-positive size %gx%g", id, size.Width, size.Height)
	}
	return ecs.Add(r.world, id, component.SizeComponent, size)
}

// Bounds returns the world space render bounds of id: its size scaled and
// centred on the transform, expanded to cover rotation.
func (r *Registry) Bounds(id ID) (grid.Rect, bool) {
	t, ok := r.Transform(id)
	if !ok {
		return grid.Rect{}, false
	}
	size, _ := r.Size(id)
	w := size.Width * math.Abs(scaleOr1(t.ScaleX))
	h := size.Height * math.Abs(scaleOr1(t.ScaleY))
	if rot := math.Mod(t.Rotation, 180); rot != 0 {
		rad := t.Rotation * math.Pi / 180
		sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
		w, h = w*cos+h*sin, w*sin+h*cos
	}
	return grid.RectAround(grid.Vec2{X: t.X, Y: t.Y}, w, h), true
}

func scaleOr1(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

func (r *Registry) SetEditing(id ID, editing bool) {
	if !r.Exists(id) {
		return
	}
	if editing {
		_ = ecs.Add(r.world, id, component.EditingComponent, component.Editing{})
		return
	}
	ecs.Remove(r.world, id, component.EditingComponent)
}

func (r *Registry) IsEditing(id ID) bool {
	if r == nil {
		return false
	}
	return ecs.Has(r.world, id, component.EditingComponent)
}

// Material returns the current material of id.
func (r *Registry) Material(id ID) (string, bool) {
	if r == nil {
		return "", false
	}
	a, ok := ecs.Get(r.world, id, component.AppearanceComponent)
	return a.Material, ok
}

func (r *Registry) SetMaterial(id ID, material string) error {
	if r == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	a, ok := ecs.Get(r.world, id, component.AppearanceComponent)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	a.Material = material
	return ecs.Add(r.world, id, component.AppearanceComponent, a)
}

// Tint returns the swatch colour of id.
func (r *Registry) Tint(id ID) color.RGBA {
	if r == nil {
		return color.RGBA{}
	}
	a, _ := ecs.Get(r.world, id, component.AppearanceComponent)
	return a.Tint
}

// Interactable reports the toggle behaviour of id, if it has one.
func (r *Registry) Interactable(id ID) (component.Interactable, bool) {
	if r == nil {
		return component.Interactable{}, false
	}
	return ecs.Get(r.world, id, component.InteractableComponent)
}

// Parameters returns the live parameter store of id.
func (r *Registry) Parameters(id ID) *params.Store {
	if r == nil {
		return nil
	}
	p, ok := ecs.Get(r.world, id, component.ParametersComponent)
	if !ok {
		return nil
	}
	return p.Store
}

func (r *Registry) ExportParameters(id ID) []params.Parameter {
	return r.Parameters(id).Export()
}

// ImportParameters applies a persisted parameter list to id. Bad entries
// keep their current value and are returned.
func (r *Registry) ImportParameters(id ID, list []params.Parameter) []error {
	store := r.Parameters(id)
	if store == nil {
		return []error{fmt.Errorf("%w: %v", ErrNotFound, id)}
	}
	errs := store.Import(list)
	r.applyScale(id)
	r.sync(id)
	return errs
}

// SetParameter validates and stores a single parameter of id.
func (r *Registry) SetParameter(id ID, name, value string) error {
	store := r.Parameters(id)
	if store == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err := store.Set(name, value); err != nil {
		return fmt.Errorf("objects: set %s on %v: %w", name, id, err)
	}
	if name == "scale" {
		r.applyScale(id)
		r.sync(id)
	}
	return nil
}

func (r *Registry) applyScale(id ID) {
	scale, ok := r.Parameters(id).Float("scale")
	if !ok {
		return
	}
	t, ok := ecs.Get(r.world, id, component.TransformComponent)
	if !ok {
		return
	}
	t.ScaleX, t.ScaleY = scale, scale
	_ = ecs.Add(r.world, id, component.TransformComponent, t)
}

// sync rebuilds the collider shape of id from its transform.
func (r *Registry) sync(id ID) {
	t, ok := ecs.Get(r.world, id, component.TransformComponent)
	if !ok {
		return
	}
	c, ok := ecs.Get(r.world, id, component.ColliderComponent)
	if !ok {
		r.physics.Remove(id)
		return
	}
	sx, sy := math.Abs(scaleOr1(t.ScaleX)), math.Abs(scaleOr1(t.ScaleY))
	center := grid.Vec2{X: t.X + c.OffsetX*sx, Y: t.Y + c.OffsetY*sy}
	r.physics.SetBox(id, grid.RectAround(center, c.Width*sx, c.Height*sy), t.Rotation)
}

// ObjectsAt returns the objects whose collider contains p, most recently
// spawned first.
func (r *Registry) ObjectsAt(p grid.Vec2) []ID {
	if r == nil {
		return nil
	}
	hits := r.physics.QueryPoint(p)
	r.sortBySeq(hits)
	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits
}

// TopAt returns the most recently spawned object under p.
func (r *Registry) TopAt(p grid.Vec2) (ID, bool) {
	hits := r.ObjectsAt(p)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[0], true
}

// ObjectsIn returns objects whose collider overlaps rect, in spawn order.
func (r *Registry) ObjectsIn(rect grid.Rect) []ID {
	if r == nil {
		return nil
	}
	hits := r.physics.QueryRect(rect)
	r.sortBySeq(hits)
	return hits
}

// Occupied reports whether any collider covers p.
func (r *Registry) Occupied(p grid.Vec2) bool {
	return len(r.ObjectsAt(p)) > 0
}
