package ecs

import "github.com/milk9111/candlelit/ecs/component"

// Add attaches a component to an entity, replacing any existing value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if w == nil || !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.table(handle.ID(), true).Set(int(e.id()), value)
	return nil
}

// Get returns the component attached to an entity, or false.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.table(handle.ID(), false).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether an entity carries a component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.table(handle.ID(), false).Has(int(e.id()))
}

// Remove detaches a component from an entity if present.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.table(handle.ID(), false).Remove(int(e.id()))
}

// First returns any one entity carrying the component, or false. With at most
// one holder (singletons, tags on the player) it is a cheap lookup.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	t := w.table(handle.ID(), false)
	for _, id := range t.Entities() {
		if e, ok := w.entities.handleFor(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Count returns the number of entities carrying the component.
func Count[T any](w *World, handle component.ComponentHandle[T]) int {
	if w == nil {
		return 0
	}
	return w.table(handle.ID(), false).Len()
}

// ForEach visits every entity carrying the component. The iteration order is
// the dense table order; callbacks may destroy entities, including the one
// being visited.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	t := w.table(handle.ID(), false)
	ids := append([]int(nil), t.Entities()...)
	for _, id := range ids {
		e, ok := w.entities.handleFor(id)
		if !ok {
			continue
		}
		v, ok := t.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits every entity carrying both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	ta := w.table(ha.ID(), false)
	tb := w.table(hb.ID(), false)
	if ta.Len() > tb.Len() {
		ForEach(w, hb, func(e Entity, b *B) {
			if a, ok := ta.Get(int(e.id())).(*A); ok {
				fn(e, a, b)
			}
		})
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := tb.Get(int(e.id())).(*B); ok {
			fn(e, a, b)
		}
	})
}
