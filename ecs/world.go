package ecs

import "github.com/milk9111/candlelit/ecs/component"

// World owns entities, component tables, and the per-tick event queue.
type World struct {
	entities entityStore
	tables   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. Destroying an
// already-dead handle is a no-op and returns false.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, table := range w.tables {
		table.Remove(int(e.id()))
	}
	return true
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) table(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if t, ok := w.tables[id]; ok {
		return t
	}
	if !create {
		return nil
	}
	t := &SparseSet{}
	w.tables[id] = t
	return t
}
