package ecs

import "github.com/PvttJebus/OhMyGord/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, handle.Kind(), true).set.Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		return false
	}
	return s.set.Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle.Kind(), false)
	return s != nil && s.set.Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.set.Get(e)
}

// ForEach calls fn for every entity holding the component. fn must not add
// or remove components of the same kind.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	s := storeFor(w, handle.Kind(), false)
	if s == nil || fn == nil {
		return
	}
	ents := s.set.Entities()
	vals := s.set.Values()
	for i := range ents {
		fn(ents[i], vals[i])
	}
}

// Count returns how many entities hold the component.
func Count[T any](w *World, handle component.ComponentHandle[T]) int {
	s := storeFor(w, handle.Kind(), false)
	if s == nil {
		return 0
	}
	return s.len()
}
