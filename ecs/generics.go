package ecs

import "github.com/milk9111/animsheet/ecs/component"

// Add attaches value to e, replacing any previous component of the kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// Remove detaches the component of kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e.id())
}

// Has reports whether e carries a component of kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

// Get returns the component of kind attached to e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e.id()).(*T)
	return v, ok
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.denseEntities {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every live entity carrying kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	w.beginIter()
	defer w.endIter()
	for i := 0; i < len(s.denseEntities); i++ {
		e := s.denseEntities[i]
		if !IsAlive(w, e) {
			continue
		}
		fn(e, s.denseValues[i].(*T))
	}
}

// ForEach2 visits live entities carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	w.beginIter()
	defer w.endIter()
	for _, e := range intersect(sa, sb) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.Get(e.id()).(*A)
		b, okB := sb.Get(e.id()).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach3 visits live entities carrying all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	w.beginIter()
	defer w.endIter()
	for _, e := range intersect(sa, sb, sc) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.Get(e.id()).(*A)
		b, okB := sb.Get(e.id()).(*B)
		c, okC := sc.Get(e.id()).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// ForEach4 visits live entities carrying all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	w.beginIter()
	defer w.endIter()
	for _, e := range intersect(sa, sb, sc, sd) {
		if !IsAlive(w, e) {
			continue
		}
		a, okA := sa.Get(e.id()).(*A)
		b, okB := sb.Get(e.id()).(*B)
		c, okC := sc.Get(e.id()).(*C)
		d, okD := sd.Get(e.id()).(*D)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}
