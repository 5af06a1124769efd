package session

import "github.com/milk9111/candlelit/levels"

// RoomDelta is the mutable overlay for one room: what the player changed on
// top of the static level data.
type RoomDelta struct {
	Collected map[string]bool
	Puzzles   map[string]bool
	Doors     map[levels.RoomID]bool
}

func newRoomDelta() *RoomDelta {
	return &RoomDelta{
		Collected: make(map[string]bool),
		Puzzles:   make(map[string]bool),
		Doors:     make(map[levels.RoomID]bool),
	}
}

// Deltas tracks per-room mutable state: collected items, puzzle results, and
// unlocked doors. The spawner consults it on every room spawn so a collected
// item stays collected on re-entry, and the save manager serializes it.
type Deltas struct {
	rooms map[levels.RoomID]*RoomDelta
}

func NewDeltas() *Deltas {
	return &Deltas{rooms: make(map[levels.RoomID]*RoomDelta)}
}

func (d *Deltas) room(room levels.RoomID, create bool) *RoomDelta {
	if d == nil {
		return nil
	}
	if rd, ok := d.rooms[room]; ok {
		return rd
	}
	if !create {
		return nil
	}
	if d.rooms == nil {
		d.rooms = make(map[levels.RoomID]*RoomDelta)
	}
	rd := newRoomDelta()
	d.rooms[room] = rd
	return rd
}

// CollectItem records that an item was taken.
func (d *Deltas) CollectItem(room levels.RoomID, itemID string) {
	if itemID == "" {
		return
	}
	if rd := d.room(room, true); rd != nil {
		rd.Collected[itemID] = true
	}
}

// ItemCollected reports whether an item was already taken.
func (d *Deltas) ItemCollected(room levels.RoomID, itemID string) bool {
	rd := d.room(room, false)
	return rd != nil && rd.Collected[itemID]
}

// SetPuzzleSolved records a puzzle's pass signal.
func (d *Deltas) SetPuzzleSolved(room levels.RoomID, puzzleID string, solved bool) {
	if puzzleID == "" {
		return
	}
	if rd := d.room(room, true); rd != nil {
		rd.Puzzles[puzzleID] = solved
	}
}

// PuzzleSolved reports a puzzle's stored state.
func (d *Deltas) PuzzleSolved(room levels.RoomID, puzzleID string) bool {
	rd := d.room(room, false)
	return rd != nil && rd.Puzzles[puzzleID]
}

// UnlockDoor records that the door toward target was unlocked.
func (d *Deltas) UnlockDoor(room, target levels.RoomID) {
	if rd := d.room(room, true); rd != nil {
		rd.Doors[target] = true
	}
}

// DoorUnlocked reports whether the door toward target was unlocked.
func (d *Deltas) DoorUnlocked(room, target levels.RoomID) bool {
	rd := d.room(room, false)
	return rd != nil && rd.Doors[target]
}

// Snapshot returns a deep copy of all room deltas for serialization.
func (d *Deltas) Snapshot() map[levels.RoomID]*RoomDelta {
	out := make(map[levels.RoomID]*RoomDelta)
	if d == nil {
		return out
	}
	for room, rd := range d.rooms {
		copied := newRoomDelta()
		for k, v := range rd.Collected {
			copied.Collected[k] = v
		}
		for k, v := range rd.Puzzles {
			copied.Puzzles[k] = v
		}
		for k, v := range rd.Doors {
			copied.Doors[k] = v
		}
		out[room] = copied
	}
	return out
}

// Restore replaces all deltas with the stored set.
func (d *Deltas) Restore(rooms map[levels.RoomID]*RoomDelta) {
	if d == nil {
		return
	}
	d.rooms = make(map[levels.RoomID]*RoomDelta)
	for room, rd := range rooms {
		if rd == nil {
			continue
		}
		for itemID, v := range rd.Collected {
			if v {
				d.CollectItem(room, itemID)
			}
		}
		for puzzleID, v := range rd.Puzzles {
			d.SetPuzzleSolved(room, puzzleID, v)
		}
		for target, v := range rd.Doors {
			if v {
				d.UnlockDoor(room, target)
			}
		}
	}
}
