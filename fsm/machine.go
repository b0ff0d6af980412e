// Package fsm is a small enter/update/exit state machine.
package fsm

import (
	"fmt"
	"log"
)

type state struct {
	enter  func()
	exit   func()
	update func()
}

// Machine runs one active state at a time. Any handler may be nil.
type Machine[S comparable] struct {
	states  map[S]state
	current S
	started bool

	// OnChange, when set, is called after every completed transition.
	OnChange func(from, to S)
}

func New[S comparable]() *Machine[S] {
	return &Machine[S]{states: make(map[S]state)}
}

// AddState registers the handlers for id, replacing any earlier ones.
func (m *Machine[S]) AddState(id S, enter, exit, update func()) {
	if m.states == nil {
		m.states = make(map[S]state)
	}
	m.states[id] = state{enter: enter, exit: exit, update: update}
}

// ChangeState exits the current state and enters id. Changing to the
// active state does nothing. It reports whether a transition happened.
func (m *Machine[S]) ChangeState(id S) bool {
	next, ok := m.states[id]
	if !ok {
		log.Printf("fsm: unknown state %v", id)
		return false
	}
	if m.started && m.current == id {
		return false
	}
	from := m.current
	wasStarted := m.started
	if wasStarted {
		if cur := m.states[m.current]; cur.exit != nil {
			cur.exit()
		}
	}
	m.current = id
	m.started = true
	if next.enter != nil {
		next.enter()
	}
	if wasStarted && m.OnChange != nil {
		m.OnChange(from, id)
	}
	return true
}

// Update runs the update handler of the active state.
func (m *Machine[S]) Update() {
	if !m.started {
		return
	}
	if cur := m.states[m.current]; cur.update != nil {
		cur.update()
	}
}

// Current returns the active state.
func (m *Machine[S]) Current() S {
	return m.current
}

// Started reports whether any state has been entered.
func (m *Machine[S]) Started() bool {
	return m.started
}

func (m *Machine[S]) String() string {
	if !m.started {
		return "fsm(not started)"
	}
	return fmt.Sprintf("fsm(%v)", m.current)
}
