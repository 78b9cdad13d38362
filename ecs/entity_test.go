package ecs

import "testing"

func TestEntityReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	if e1.String() != "1:1" {
		t.Fatalf("expected 1:1, got %s", e1)
	}
	DestroyEntity(w, e1)

	e2 := CreateEntity(w)
	if e2.String() != "1:2" {
		t.Fatalf("expected recycled slot 1:2, got %s", e2)
	}
	if IsAlive(w, e1) {
		t.Fatalf("stale handle %s should not resolve", e1)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	w.Events.Push(Event{Entity: e, Type: "emit", Data: "step"})
	w.Events.Push(Event{Entity: e, Type: "sound"})
	if w.Events.Len() != 2 {
		t.Fatalf("expected 2 queued events, got %d", w.Events.Len())
	}

	got := w.Events.Drain()
	if len(got) != 2 || got[0].Type != "emit" || got[1].Type != "sound" {
		t.Fatalf("unexpected drain %+v", got)
	}
	if w.Events.Len() != 0 || len(w.Events.Drain()) != 0 {
		t.Fatalf("queue should be empty after drain")
	}
}
