package selection

import (
	"log"
	"sort"

	"github.com/PvttJebus/OhMyGord/objects"
)

// MaterialTarget reads and swaps object materials.
type MaterialTarget interface {
	Material(id objects.ID) (string, bool)
	SetMaterial(id objects.ID, material string) error
}

// Highlighter swaps object materials and remembers the originals. The
// stored original is never replaced while a highlight is active.
type Highlighter struct {
	target    MaterialTarget
	originals map[objects.ID]string
}

func NewHighlighter(target MaterialTarget) *Highlighter {
	return &Highlighter{target: target, originals: make(map[objects.ID]string)}
}

// Apply draws id with material.
func (h *Highlighter) Apply(id objects.ID, material string) {
	if h == nil || h.target == nil {
		return
	}
	if _, stored := h.originals[id]; !stored {
		orig, ok := h.target.Material(id)
		if !ok {
			return
		}
		h.originals[id] = orig
	}
	if err := h.target.SetMaterial(id, material); err != nil {
		log.Printf("selection: highlight %v: %v", id, err)
	}
}

// Restore puts back the original material of id.
func (h *Highlighter) Restore(id objects.ID) {
	if h == nil {
		return
	}
	orig, ok := h.originals[id]
	if !ok {
		return
	}
	delete(h.originals, id)
	if h.target == nil {
		return
	}
	// The object may have been destroyed since; that is fine.
	_ = h.target.SetMaterial(id, orig)
}

// RestoreAll restores every highlighted object.
func (h *Highlighter) RestoreAll() {
	if h == nil {
		return
	}
	for _, id := range h.Highlighted() {
		h.Restore(id)
	}
}

func (h *Highlighter) IsHighlighted(id objects.ID) bool {
	if h == nil {
		return false
	}
	_, ok := h.originals[id]
	return ok
}

// Highlighted lists highlighted objects ordered by handle.
func (h *Highlighter) Highlighted() []objects.ID {
	if h == nil {
		return nil
	}
	out := make([]objects.ID, 0, len(h.originals))
	for id := range h.originals {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Forget drops every stored original without touching any object. Used
// after a history restore replaced all objects.
func (h *Highlighter) Forget() {
	if h == nil {
		return
	}
	h.originals = make(map[objects.ID]string)
}
