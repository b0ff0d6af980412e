package fsm

import (
	"strings"
	"testing"
)

func TestChangeStateRunsExitThenEnter(t *testing.T) {
	var log []string
	m := New[string]()
	for _, name := range []string{"a", "b"} {
		m.AddState(name,
			func() { log = append(log, "enter "+name) },
			func() { log = append(log, "exit "+name) },
			func() { log = append(log, "update "+name) },
		)
	}
	m.Update()
	if len(log) != 0 {
		t.Fatalf("update before start should do nothing, got %v", log)
	}
	m.ChangeState("a")
	m.Update()
	m.ChangeState("b")
	m.Update()

	want := "enter a,update a,exit a,enter b,update b"
	if got := strings.Join(log, ","); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if m.Current() != "b" {
		t.Fatalf("expected current b, got %q", m.Current())
	}
}

func TestChangeToSameStateIsNoop(t *testing.T) {
	enters := 0
	m := New[int]()
	m.AddState(1, func() { enters++ }, nil, nil)
	if !m.ChangeState(1) {
		t.Fatalf("first change should happen")
	}
	if m.ChangeState(1) {
		t.Fatalf("re-entering the active state should be a no-op")
	}
	if enters != 1 {
		t.Fatalf("expected 1 enter, got %d", enters)
	}
}

func TestUnknownStateIgnored(t *testing.T) {
	m := New[int]()
	m.AddState(1, nil, nil, nil)
	m.ChangeState(1)
	if m.ChangeState(7) {
		t.Fatalf("unknown state should not be entered")
	}
	if m.Current() != 1 {
		t.Fatalf("expected to stay in 1")
	}
}

func TestChangeFromInsideUpdate(t *testing.T) {
	m := New[string]()
	var changes []string
	m.OnChange = func(from, to string) { changes = append(changes, from+">"+to) }
	m.AddState("idle", nil, nil, func() { m.ChangeState("busy") })
	m.AddState("busy", nil, nil, nil)
	m.ChangeState("idle")
	m.Update()
	if m.Current() != "busy" {
		t.Fatalf("expected busy, got %s", m.Current())
	}
	if len(changes) != 1 || changes[0] != "idle>busy" {
		t.Fatalf("unexpected change log %v", changes)
	}
}
