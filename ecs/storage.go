package ecs

// entityStore tracks entity generations and free slot ids.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gens))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gens[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || e.id() == 0 || int(e.id()) > len(s.gens) {
		return false
	}
	idx := e.id() - 1
	return s.alive[idx] && s.gens[idx] == e.generation()
}

// handleFor rebuilds the live handle for a slot id, if the slot is occupied.
func (s *entityStore) handleFor(id int) (Entity, bool) {
	if s == nil || id <= 0 || id > len(s.gens) || !s.alive[id-1] {
		return 0, false
	}
	return makeEntity(entityID(id), s.gens[id-1]), true
}

func (s *entityStore) all() []Entity {
	if s == nil || s.count == 0 {
		return nil
	}
	out := make([]Entity, 0, s.count)
	for i := range s.gens {
		if s.alive[i] {
			out = append(out, makeEntity(entityID(i+1), s.gens[i]))
		}
	}
	return out
}
