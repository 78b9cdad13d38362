package ecs

import "github.com/milk9111/animsheet/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System

	// Events collects frame events raised during Update.
	Events EventQueue

	// iterating counts nested ForEach calls; destroyed entities keep their
	// components until the outermost iteration finishes.
	iterating int
	pending   []entityID
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) beginIter() { w.iterating++ }

func (w *World) endIter() {
	w.iterating--
	if w.iterating > 0 {
		return
	}
	pending := w.pending
	w.pending = nil
	for _, id := range pending {
		w.purge(id)
	}
}

func (w *World) purge(id entityID) {
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.entities.release(id)
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops its components. It is safe to call from
// inside ForEach callbacks and systems; components are dropped once the
// iteration ends.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.kill(e) {
		return false
	}
	if w.iterating > 0 {
		w.pending = append(w.pending, e.id())
		return true
	}
	w.purge(e.id())
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	return w.entities.list()
}
