// Package history keeps capped undo and redo stacks of full editor snapshots.
package history

import (
	"fmt"
)

// DefaultMaxHistory bounds the undo stack when no limit is configured.
const DefaultMaxHistory = 50

// Snapshotter captures and restores the complete editable state.
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore(snapshot []byte) error
}

// History is an undo/redo stack of opaque snapshots.
type History struct {
	max  int
	undo [][]byte
	redo [][]byte
}

// New returns a history that keeps at most max undo entries.
func New(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{max: max}
}

// SaveState captures s and pushes it. Redo is cleared.
func (h *History) SaveState(s Snapshotter) error {
	if h == nil || s == nil {
		return nil
	}
	snap, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("history: capture: %w", err)
	}
	h.Push(snap)
	return nil
}

// Push records an already captured snapshot. Redo is cleared and the oldest
// entries are dropped past the cap.
func (h *History) Push(snap []byte) {
	if h == nil {
		return
	}
	h.undo = append(h.undo, snap)
	if over := len(h.undo) - h.max; over > 0 {
		h.undo = append(h.undo[:0:0], h.undo[over:]...)
	}
	h.redo = nil
}

// Undo restores the most recent snapshot. The current state moves to redo.
// It reports false when there is nothing to undo.
func (h *History) Undo(s Snapshotter) (bool, error) {
	if h == nil || s == nil || len(h.undo) == 0 {
		return false, nil
	}
	current, err := s.Snapshot()
	if err != nil {
		return false, fmt.Errorf("history: undo: capture: %w", err)
	}
	prev := h.undo[len(h.undo)-1]
	if err := s.Restore(prev); err != nil {
		return false, fmt.Errorf("history: undo: restore: %w", err)
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return true, nil
}

// Redo reapplies the most recently undone snapshot.
func (h *History) Redo(s Snapshotter) (bool, error) {
	if h == nil || s == nil || len(h.redo) == 0 {
		return false, nil
	}
	current, err := s.Snapshot()
	if err != nil {
		return false, fmt.Errorf("history: redo: capture: %w", err)
	}
	next := h.redo[len(h.redo)-1]
	if err := s.Restore(next); err != nil {
		return false, fmt.Errorf("history: redo: restore: %w", err)
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return true, nil
}

func (h *History) CanUndo() bool { return h != nil && len(h.undo) > 0 }

func (h *History) CanRedo() bool { return h != nil && len(h.redo) > 0 }

// Len returns the undo and redo depths.
func (h *History) Len() (undo, redo int) {
	if h == nil {
		return 0, 0
	}
	return len(h.undo), len(h.redo)
}

func (h *History) Max() int {
	if h == nil {
		return 0
	}
	return h.max
}

func (h *History) Clear() {
	if h == nil {
		return
	}
	h.undo = nil
	h.redo = nil
}
