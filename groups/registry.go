// Package groups manages named sets of interactable objects that toggle
// together.
package groups

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PvttJebus/OhMyGord/objects"
)

var ErrNotFound = errors.New("groups: group not found")

type ID int

// Group is a named, ordered set of objects.
type Group struct {
	ID      ID
	Name    string
	Members []objects.ID
}

// Toggler activates a single object.
type Toggler interface {
	ToggleSelf(id objects.ID) error
}

// Registry owns every group. An object belongs to at most one group.
type Registry struct {
	nextID   ID
	order    []ID
	groups   map[ID]*Group
	memberOf map[objects.ID]ID
}

func NewRegistry() *Registry {
	return &Registry{
		groups:   make(map[ID]*Group),
		memberOf: make(map[objects.ID]ID),
	}
}

// Create adds an empty group. Blank names get a generated one.
func (r *Registry) Create(name string) ID {
	r.nextID++
	id := r.nextID
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Group %d", id)
	}
	r.groups[id] = &Group{ID: id, Name: name}
	r.order = append(r.order, id)
	return id
}

// Delete removes a group and releases its members.
func (r *Registry) Delete(id ID) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	for _, m := range g.Members {
		delete(r.memberOf, m)
	}
	delete(r.groups, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) Rename(id ID, name string) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if name = strings.TrimSpace(name); name != "" {
		g.Name = name
	}
	return nil
}

// Get returns a copy of the group.
func (r *Registry) Get(id ID) (Group, bool) {
	g, ok := r.groups[id]
	if !ok {
		return Group{}, false
	}
	out := *g
	out.Members = append([]objects.ID(nil), g.Members...)
	return out, true
}

// All returns every group in creation order.
func (r *Registry) All() []Group {
	out := make([]Group, 0, len(r.order))
	for _, id := range r.order {
		g, _ := r.Get(id)
		out = append(out, g)
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }

// IndexOf returns the position of id in creation order, or -1.
func (r *Registry) IndexOf(id ID) int {
	for i, g := range r.order {
		if g == id {
			return i
		}
	}
	return -1
}

// AddMember puts obj into group id, moving it out of any other group.
func (r *Registry) AddMember(id ID, obj objects.ID) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if prev, ok := r.memberOf[obj]; ok {
		if prev == id {
			return nil
		}
		r.removeFrom(prev, obj)
	}
	g.Members = append(g.Members, obj)
	r.memberOf[obj] = id
	return nil
}

// RemoveMember takes obj out of group id. It reports whether obj was a member.
func (r *Registry) RemoveMember(id ID, obj objects.ID) bool {
	if cur, ok := r.memberOf[obj]; !ok || cur != id {
		return false
	}
	r.removeFrom(id, obj)
	return true
}

func (r *Registry) removeFrom(id ID, obj objects.ID) {
	delete(r.memberOf, obj)
	g, ok := r.groups[id]
	if !ok {
		return
	}
	for i, m := range g.Members {
		if m == obj {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return
		}
	}
}

// GroupOf returns the group obj belongs to.
func (r *Registry) GroupOf(obj objects.ID) (ID, bool) {
	id, ok := r.memberOf[obj]
	return id, ok
}

func (r *Registry) Members(id ID) []objects.ID {
	g, ok := r.groups[id]
	if !ok {
		return nil
	}
	return append([]objects.ID(nil), g.Members...)
}

// RemoveNullMembers drops members that no longer exist.
func (r *Registry) RemoveNullMembers(exists func(objects.ID) bool) {
	for _, id := range r.order {
		for _, m := range r.Members(id) {
			if exists == nil || !exists(m) {
				r.removeFrom(id, m)
			}
		}
	}
}

// ActivateAll toggles every member of id in member order. A failing member
// does not stop the others; all failures are returned joined.
func (r *Registry) ActivateAll(id ID, t Toggler) error {
	g, ok := r.groups[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if t == nil {
		return nil
	}
	var errs []error
	for _, m := range append([]objects.ID(nil), g.Members...) {
		if err := t.ToggleSelf(m); err != nil {
			errs = append(errs, fmt.Errorf("groups: activate %s member %v: %w", g.Name, m, err))
		}
	}
	return errors.Join(errs...)
}

// Clear removes every group and restarts ID numbering.
func (r *Registry) Clear() {
	r.nextID = 0
	r.order = nil
	r.groups = make(map[ID]*Group)
	r.memberOf = make(map[objects.ID]ID)
}
