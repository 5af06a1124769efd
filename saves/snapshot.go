package saves

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/levels"
	"github.com/milk9111/candlelit/session"
)

// Version is the save format version this build reads and writes. Older files
// are migrated through registered migration steps; newer files are rejected.
const Version = 2

// Snapshot is one full capture of mutable session state. It is assembled
// fresh for every save and discarded after the write; nothing holds one
// between saves.
type Snapshot struct {
	Version int    `json:"version"`
	Session string `json:"session"`

	Player PlayerState                 `json:"player_state"`
	Rooms  map[levels.RoomID]RoomState `json:"room_state"`
	Map    map[levels.RoomID]bool      `json:"map_state"`
	Stats  Stats                       `json:"stats"`
}

// Position is a serializable point.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func positionOf(v cp.Vector) Position {
	return Position{X: v.X, Y: v.Y}
}

type PlayerState struct {
	CurrentRoom   levels.RoomID  `json:"current_room"`
	SpawnPosition Position       `json:"spawn_position"`
	Inventory     InventoryState `json:"inventory"`
	CandleWax     float64        `json:"candle_wax"`
	CandleMaxWax  float64        `json:"candle_max_wax"`
	CandleState   string         `json:"candle_state"`
	Abilities     AbilityState   `json:"abilities"`
}

type InventoryState struct {
	Matches int                    `json:"matches"`
	Keys    map[levels.KeyType]int `json:"keys,omitempty"`
	Items   []string               `json:"items,omitempty"`
}

type AbilityState struct {
	DoubleJump bool `json:"double_jump"`
	WallGrab   bool `json:"wall_grab"`
	Anchor     bool `json:"anchor"`
}

type RoomState struct {
	CollectedItems []string        `json:"collected_items,omitempty"`
	PuzzleStates   map[string]bool `json:"puzzle_states,omitempty"`
	UnlockedDoors  []levels.RoomID `json:"unlocked_doors,omitempty"`
}

type Stats struct {
	CompletionTime   float64  `json:"completion_time"`
	CollectedSecrets []string `json:"collected_secrets,omitempty"`
	Deaths           int      `json:"deaths"`
}

func roomStatesFrom(deltas map[levels.RoomID]*session.RoomDelta) map[levels.RoomID]RoomState {
	out := make(map[levels.RoomID]RoomState, len(deltas))
	for room, rd := range deltas {
		if rd == nil {
			continue
		}
		var rs RoomState
		for itemID, taken := range rd.Collected {
			if taken {
				rs.CollectedItems = append(rs.CollectedItems, itemID)
			}
		}
		sort.Strings(rs.CollectedItems)
		if len(rd.Puzzles) > 0 {
			rs.PuzzleStates = make(map[string]bool, len(rd.Puzzles))
			for puzzleID, solved := range rd.Puzzles {
				rs.PuzzleStates[puzzleID] = solved
			}
		}
		for target, unlocked := range rd.Doors {
			if unlocked {
				rs.UnlockedDoors = append(rs.UnlockedDoors, target)
			}
		}
		sort.Slice(rs.UnlockedDoors, func(i, j int) bool { return rs.UnlockedDoors[i] < rs.UnlockedDoors[j] })
		out[room] = rs
	}
	return out
}

func roomDeltasFrom(rooms map[levels.RoomID]RoomState) map[levels.RoomID]*session.RoomDelta {
	out := make(map[levels.RoomID]*session.RoomDelta, len(rooms))
	for room, rs := range rooms {
		rd := &session.RoomDelta{
			Collected: make(map[string]bool, len(rs.CollectedItems)),
			Puzzles:   make(map[string]bool, len(rs.PuzzleStates)),
			Doors:     make(map[levels.RoomID]bool, len(rs.UnlockedDoors)),
		}
		for _, itemID := range rs.CollectedItems {
			rd.Collected[itemID] = true
		}
		for puzzleID, solved := range rs.PuzzleStates {
			rd.Puzzles[puzzleID] = solved
		}
		for _, target := range rs.UnlockedDoors {
			rd.Doors[target] = true
		}
		out[room] = rd
	}
	return out
}
