package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/log"
)

// Loader reads and validates room files and caches the result. Repeated loads
// of the same room return the same shared *Level; levels are never re-parsed
// within a session.
type Loader struct {
	fsys  fs.FS
	mu    sync.RWMutex
	cache map[RoomID]*Level
}

// NewLoader creates a loader over fsys. A nil fsys uses the embedded level
// files.
func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = LevelsFS
	}
	return &Loader{
		fsys:  fsys,
		cache: make(map[RoomID]*Level),
	}
}

// FileName returns the level file name for a room id.
func FileName(room RoomID) string {
	return fmt.Sprintf("room_%d.json", room)
}

// Load returns the level for a room. Errors are *NotFoundError, *ParseError,
// or *ValidationError; Load never panics.
func (l *Loader) Load(room RoomID) (*Level, error) {
	if l == nil {
		return nil, &NotFoundError{Room: room}
	}

	l.mu.RLock()
	if lvl, ok := l.cache[room]; ok {
		l.mu.RUnlock()
		return lvl, nil
	}
	l.mu.RUnlock()

	data, err := fs.ReadFile(l.fsys, FileName(room))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Room: room}
		}
		return nil, &ParseError{Room: room, Err: err}
	}

	var file levelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Room: room, Err: err}
	}

	lvl, err := file.toLevel(room)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[room] = lvl
	l.mu.Unlock()
	return lvl, nil
}

type vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v vec) vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type levelFile struct {
	ID     int    `json:"id"`
	Floor  string `json:"floor"`
	Name   string `json:"name"`
	Bounds struct {
		Min vec `json:"min"`
		Max vec `json:"max"`
	} `json:"bounds"`
	Tiles       [][]int          `json:"tiles"`
	Entities    []entityFile     `json:"entities"`
	Connections []connectionFile `json:"connections"`
}

type entityFile struct {
	Type       string `json:"entity_type"`
	ID         string `json:"id,omitempty"`
	Position   vec    `json:"position"`
	TargetRoom int    `json:"target_room,omitempty"`
	Locked     string `json:"locked,omitempty"`
	KeyType    string `json:"key_type,omitempty"`
	ItemKind   string `json:"item_kind,omitempty"`
}

type connectionFile struct {
	TargetRoom     int    `json:"target_room"`
	ConnectionType string `json:"connection_type"`
	Position       vec    `json:"position"`
	Locked         string `json:"locked,omitempty"`
}

func (f *levelFile) toLevel(room RoomID) (*Level, error) {
	if RoomID(f.ID) != room {
		return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("file id %d does not match room %d", f.ID, room)}
	}

	floor, ok := parseFloor(f.Floor)
	if !ok {
		return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("unknown floor %q", f.Floor)}
	}

	bounds := Bounds{Min: f.Bounds.Min.vector(), Max: f.Bounds.Max.vector()}
	if bounds.Max.X <= bounds.Min.X || bounds.Max.Y <= bounds.Min.Y {
		return nil, &ValidationError{Room: room, Reason: "empty bounds"}
	}

	cols := int(math.Round((bounds.Max.X - bounds.Min.X) / TileSize))
	rows := int(math.Round((bounds.Max.Y - bounds.Min.Y) / TileSize))
	if len(f.Tiles) != rows {
		return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("tile grid has %d rows, bounds require %d", len(f.Tiles), rows)}
	}
	for i, tileRow := range f.Tiles {
		if len(tileRow) != cols {
			return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("tile row %d has %d columns, bounds require %d", i, len(tileRow), cols)}
		}
	}

	entities := make([]SpawnDescriptor, 0, len(f.Entities))
	for i, ent := range f.Entities {
		d := SpawnDescriptor{
			Kind:       spawnKindFromTag(strings.ToLower(ent.Type)),
			Tag:        ent.Type,
			ID:         ent.ID,
			Pos:        ent.Position.vector(),
			TargetRoom: RoomID(ent.TargetRoom),
			Lock:       KeyType(ent.Locked),
			Key:        KeyType(ent.KeyType),
			ItemKind:   ent.ItemKind,
		}
		if d.ID == "" {
			d.ID = fmt.Sprintf("room%d_%s_%d", room, strings.ToLower(ent.Type), i)
		}
		// Out-of-range positions are authoring mistakes, not fatal ones.
		if !bounds.Contains(d.Pos) {
			clamped := bounds.Clamp(d.Pos)
			log.Warn("levels: room %d entity %q at (%.1f, %.1f) outside bounds, clamped to (%.1f, %.1f)",
				room, d.ID, d.Pos.X, d.Pos.Y, clamped.X, clamped.Y)
			d.Pos = clamped
		}
		if d.Kind == SpawnDoor && d.TargetRoom <= 0 {
			return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("door %q has no target room", d.ID)}
		}
		entities = append(entities, d)
	}

	connections := make([]Connection, 0, len(f.Connections))
	for i, conn := range f.Connections {
		if conn.TargetRoom <= 0 {
			return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("connection %d has no target room", i)}
		}
		kind, ok := parseConnectionType(conn.ConnectionType)
		if !ok {
			return nil, &ValidationError{Room: room, Reason: fmt.Sprintf("connection %d has unknown type %q", i, conn.ConnectionType)}
		}
		connections = append(connections, Connection{
			TargetRoom: RoomID(conn.TargetRoom),
			Kind:       kind,
			Pos:        conn.Position.vector(),
			Lock:       KeyType(conn.Locked),
		})
	}

	return &Level{
		ID:          room,
		Floor:       floor,
		Name:        f.Name,
		Bounds:      bounds,
		Tiles:       f.Tiles,
		Entities:    entities,
		Connections: connections,
	}, nil
}

func parseFloor(s string) (Floor, bool) {
	switch strings.ToLower(s) {
	case "ground":
		return FloorGround, true
	case "first":
		return FloorFirst, true
	case "second":
		return FloorSecond, true
	case "basement":
		return FloorBasement, true
	default:
		return "", false
	}
}

func parseConnectionType(s string) (ConnectionType, bool) {
	switch strings.ToLower(s) {
	case "door":
		return ConnectionDoor, true
	case "staircase":
		return ConnectionStaircase, true
	case "ladder":
		return ConnectionLadder, true
	case "hidden":
		return ConnectionHidden, true
	default:
		return "", false
	}
}
