package levels

import "github.com/jakecoffman/cp"

// TileSize is the side of one tile in world units.
const TileSize = 32.0

// RoomID identifies a room file. Connections and map entries refer to rooms
// by this id.
type RoomID int

// Floor is the mansion floor a room sits on.
type Floor string

const (
	FloorGround   Floor = "Ground"
	FloorFirst    Floor = "First"
	FloorSecond   Floor = "Second"
	FloorBasement Floor = "Basement"
)

// KeyType names the key that opens a lock. Empty means unlocked.
//
// NOTE: intentionally a string type so it serializes cleanly in level and
// save files and is easy to extend.
type KeyType string

const (
	KeyNone     KeyType = ""
	KeyBrass    KeyType = "brass"
	KeyIron     KeyType = "iron"
	KeySkeleton KeyType = "skeleton"
)

// ConnectionType is how two rooms join.
type ConnectionType string

const (
	ConnectionDoor      ConnectionType = "door"
	ConnectionStaircase ConnectionType = "staircase"
	ConnectionLadder    ConnectionType = "ladder"
	ConnectionHidden    ConnectionType = "hidden"
)

// SpawnKind is the closed set of entity tags a level file may spawn. Tags are
// decoded once at parse time; anything else becomes SpawnUnknown, which the
// spawner logs and skips so newer level files still load.
type SpawnKind int

const (
	SpawnUnknown SpawnKind = iota
	SpawnPlayer
	SpawnDoor
	SpawnItem
	SpawnTrap
	SpawnPuzzle
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnPlayer:
		return "player"
	case SpawnDoor:
		return "door"
	case SpawnItem:
		return "item"
	case SpawnTrap:
		return "trap"
	case SpawnPuzzle:
		return "puzzle"
	default:
		return "unknown"
	}
}

func spawnKindFromTag(tag string) SpawnKind {
	switch tag {
	case "player":
		return SpawnPlayer
	case "door":
		return SpawnDoor
	case "item":
		return SpawnItem
	case "trap":
		return SpawnTrap
	case "puzzle":
		return SpawnPuzzle
	default:
		return SpawnUnknown
	}
}

// SpawnDescriptor is one entry of a level's spawn list. It is consumed by the
// spawner at room load and not retained afterwards.
type SpawnDescriptor struct {
	Kind SpawnKind
	// Tag is the raw entity_type from the file, kept for unknown-tag logging.
	Tag string
	// ID names items and puzzles within their room for the per-room deltas.
	ID         string
	Pos        cp.Vector
	TargetRoom RoomID
	Lock       KeyType
	Key        KeyType
	ItemKind   string
}

// Connection joins this room to another.
type Connection struct {
	TargetRoom RoomID
	Kind       ConnectionType
	Pos        cp.Vector
	Lock       KeyType
}

// Bounds is the room's world-space rectangle.
type Bounds struct {
	Min cp.Vector
	Max cp.Vector
}

// Clamp pulls a point inside the bounds.
func (b Bounds) Clamp(v cp.Vector) cp.Vector {
	return cp.Vector{
		X: clamp(v.X, b.Min.X, b.Max.X),
		Y: clamp(v.Y, b.Min.Y, b.Max.Y),
	}
}

// Contains reports whether a point lies inside the bounds.
func (b Bounds) Contains(v cp.Vector) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X && v.Y >= b.Min.Y && v.Y <= b.Max.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Level is the parsed, validated static description of one room. Immutable
// once loaded; the loader cache shares one copy per room for the process
// lifetime.
type Level struct {
	ID          RoomID
	Floor       Floor
	Name        string
	Bounds      Bounds
	Tiles       [][]int
	Entities    []SpawnDescriptor
	Connections []Connection
}

// SpawnPoint returns the position of the level's player descriptor, which is
// the room's entry point. The second return is false if the file has none.
func (l *Level) SpawnPoint() (cp.Vector, bool) {
	if l == nil {
		return cp.Vector{}, false
	}
	for _, d := range l.Entities {
		if d.Kind == SpawnPlayer {
			return d.Pos, true
		}
	}
	return cp.Vector{}, false
}
