package ecs

import (
	"github.com/PvttJebus/OhMyGord/ecs/component"
)

type store interface {
	remove(e Entity) bool
	len() int
}

type typedStore[T any] struct {
	set SparseSet[T]
}

func (s *typedStore[T]) remove(e Entity) bool { return s.set.Remove(e) }

func (s *typedStore[T]) len() int { return s.set.Len() }

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns the live entities in creation order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, len(w.entities.order))
	copy(out, w.entities.order)
	return out
}

// Clear destroys every entity.
func Clear(w *World) {
	if w == nil {
		return
	}
	for _, e := range Entities(w) {
		DestroyEntity(w, e)
	}
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *typedStore[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		ts := &typedStore[T]{}
		w.stores[kind.ID()] = ts
		return ts
	}
	ts, _ := s.(*typedStore[T])
	return ts
}
