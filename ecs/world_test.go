package ecs

import (
	"testing"

	"github.com/PvttJebus/OhMyGord/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for dead entity")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	DestroyEntity(w, a)
	b := CreateEntity(w)
	if a == b {
		t.Fatalf("recycled entity reused handle %v", a)
	}
	if a.id() != b.id() {
		t.Fatalf("expected id reuse, got %d and %d", a.id(), b.id())
	}
	if b.generation() != a.generation()+1 {
		t.Fatalf("expected generation %d, got %d", a.generation()+1, b.generation())
	}
	if IsAlive(w, a) {
		t.Fatalf("stale handle reported alive")
	}
}

func TestEntitiesKeepCreationOrder(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)
	c := CreateEntity(w)
	DestroyEntity(w, b)
	d := CreateEntity(w)
	got := Entities(w)
	want := []Entity{a, c, d}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func intPtr(i int) *int {
	return &i
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[*int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 7) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || v != 7 {
					t.Fatalf("expected 7, got %d (ok=%v)", v, ok)
				}
				if Has(w, e2, h1) {
					t.Fatalf("e2 should not have int component")
				}
			},
		},
		{
			name:  "overwrite_int",
			setup: func() error { return Add(w, e1, h1, 9) },
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, h1); v != 9 {
					t.Fatalf("expected 9, got %d", v)
				}
				if Count(w, h1) != 1 {
					t.Fatalf("expected 1 int component, got %d", Count(w, h1))
				}
			},
		},
		{
			name:  "add_string_to_e2",
			setup: func() error { return Add(w, e2, h2, "door") },
			check: func(t *testing.T) {
				if v, ok := Get(w, e2, h2); !ok || v != "door" {
					t.Fatalf("expected door, got %q", v)
				}
			},
		},
		{
			name:  "pointer_component",
			setup: func() error { return Add(w, e2, h3, intPtr(3)) },
			check: func(t *testing.T) {
				p, ok := Get(w, e2, h3)
				if !ok || p == nil || *p != 3 {
					t.Fatalf("expected pointer to 3")
				}
				*p = 4
				p2, _ := Get(w, e2, h3)
				if *p2 != 4 {
					t.Fatalf("expected shared pointer value 4, got %d", *p2)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.setup(); err != nil {
				t.Fatalf("setup: %v", err)
			}
			tt.check(t)
		})
	}

	t.Run("foreach_visits_all", func(t *testing.T) {
		if err := Add(w, e2, h1, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
		sum := 0
		ForEach(w, h1, func(e Entity, v int) { sum += v })
		if sum != 10 {
			t.Fatalf("expected sum 10, got %d", sum)
		}
	})

	t.Run("destroy_removes_components", func(t *testing.T) {
		DestroyEntity(w, e1)
		if Has(w, e1, h1) {
			t.Fatalf("destroyed entity still has component")
		}
		if Count(w, h1) != 1 {
			t.Fatalf("expected 1 remaining int component, got %d", Count(w, h1))
		}
		if err := Add(w, e1, h1, 5); err != component.ErrEntityNotAlive {
			t.Fatalf("expected ErrEntityNotAlive, got %v", err)
		}
	})

	t.Run("remove_component", func(t *testing.T) {
		if !Remove(w, e2, h2) {
			t.Fatalf("expected Remove to succeed")
		}
		if Remove(w, e2, h2) {
			t.Fatalf("second Remove should report false")
		}
	})
}

func TestNilWorldIsSafe(t *testing.T) {
	var w *World
	h := component.NewComponent[int]()
	if CreateEntity(w).Valid() {
		t.Fatalf("nil world should not create entities")
	}
	if Has(w, 1, h) || IsAlive(w, 1) || len(Entities(w)) != 0 {
		t.Fatalf("nil world should report empty")
	}
}
