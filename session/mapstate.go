package session

import "github.com/milk9111/candlelit/levels"

// MapState records which rooms the player has seen, for the progressive map
// reveal. It only ever grows: a room once explored never reverts within a
// session.
type MapState struct {
	visited map[levels.RoomID]bool
}

func NewMapState() *MapState {
	return &MapState{visited: make(map[levels.RoomID]bool)}
}

// MarkExplored sets a room visited. Idempotent.
func (m *MapState) MarkExplored(room levels.RoomID) {
	if m == nil || room <= 0 {
		return
	}
	if m.visited == nil {
		m.visited = make(map[levels.RoomID]bool)
	}
	m.visited[room] = true
}

// IsExplored reports whether a room has been visited. Unseen ids are false.
func (m *MapState) IsExplored(room levels.RoomID) bool {
	if m == nil {
		return false
	}
	return m.visited[room]
}

// Snapshot returns a copy of the visited set for serialization.
func (m *MapState) Snapshot() map[levels.RoomID]bool {
	if m == nil || len(m.visited) == 0 {
		return map[levels.RoomID]bool{}
	}
	out := make(map[levels.RoomID]bool, len(m.visited))
	for room, seen := range m.visited {
		if seen {
			out[room] = true
		}
	}
	return out
}

// Restore merges a stored visited set. Only true entries are applied, so a
// restore can never un-explore a room.
func (m *MapState) Restore(visited map[levels.RoomID]bool) {
	if m == nil {
		return
	}
	for room, seen := range visited {
		if seen {
			m.MarkExplored(room)
		}
	}
}
