package saves

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/ecs/entity"
	"github.com/milk9111/candlelit/levels"
	"github.com/milk9111/candlelit/log"
	"github.com/milk9111/candlelit/session"
)

const (
	dataDirName  = "candlelit"
	saveFileName = "save.json"
)

// Source bundles the live state a snapshot is assembled from.
type Source struct {
	World  *ecs.World
	State  *session.State
	Map    *session.MapState
	Deltas *session.Deltas
}

// Reloader drives the despawn/load/spawn path for a room. The room transition
// manager implements it; Apply reuses it instead of duplicating the spawn
// machinery. The returned id is the room actually spawned, which is the
// fallback's id when the stored room cannot be loaded.
type Reloader interface {
	Reload(w *ecs.World, target levels.RoomID) levels.RoomID
}

// Manager serializes session snapshots to the single save slot and back.
type Manager struct {
	path       string
	sessionID  string
	migrations map[int]Migration
}

// NewManager creates a manager writing to dir. An empty dir uses the
// platform's per-user config directory.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, &IoError{Op: "resolve user config dir", Err: err}
		}
		dir = filepath.Join(base, dataDirName)
	}
	return &Manager{
		path:       filepath.Join(dir, saveFileName),
		sessionID:  uuid.NewString(),
		migrations: make(map[int]Migration),
	}, nil
}

// Path returns the save file path.
func (m *Manager) Path() string {
	if m == nil {
		return ""
	}
	return m.path
}

// Assemble builds a snapshot of the current session. It reads the player's
// components, the room deltas, and the map state; it does not touch disk.
func (m *Manager) Assemble(src Source) (*Snapshot, error) {
	if m == nil || src.World == nil || src.State == nil {
		return nil, &SerializeError{Err: fmt.Errorf("incomplete snapshot source")}
	}

	player, ok := entity.FindPersistentActor(src.World, component.PlayerActorID)
	if !ok {
		return nil, &SerializeError{Err: fmt.Errorf("no persistent player actor in world")}
	}

	ps := PlayerState{
		CurrentRoom:   src.State.CurrentRoom,
		SpawnPosition: positionOf(src.State.LastEntryPoint),
	}
	if inv, ok := ecs.Get(src.World, player, component.InventoryComponent); ok {
		ps.Inventory = InventoryState{
			Matches: inv.Matches,
			Items:   append([]string(nil), inv.Items...),
		}
		if len(inv.Keys) > 0 {
			ps.Inventory.Keys = make(map[levels.KeyType]int, len(inv.Keys))
			for k, n := range inv.Keys {
				ps.Inventory.Keys[k] = n
			}
		}
	}
	if candle, ok := ecs.Get(src.World, player, component.CandleComponent); ok {
		ps.CandleWax = candle.Wax
		ps.CandleMaxWax = candle.MaxWax
		ps.CandleState = string(candle.State)
	}
	if ab, ok := ecs.Get(src.World, player, component.AbilitiesComponent); ok {
		ps.Abilities = AbilityState{
			DoubleJump: ab.DoubleJump,
			WallGrab:   ab.WallGrab,
			Anchor:     ab.Anchor,
		}
	}

	return &Snapshot{
		Version: Version,
		Session: m.sessionID,
		Player:  ps,
		Rooms:   roomStatesFrom(src.Deltas.Snapshot()),
		Map:     src.Map.Snapshot(),
		Stats: Stats{
			CompletionTime:   src.State.Elapsed.Seconds(),
			CollectedSecrets: src.State.Secrets(),
			Deaths:           src.State.Deaths,
		},
	}, nil
}

// Save assembles a snapshot and writes it. Failures are returned for logging
// but leave the in-memory session untouched; gameplay continues.
func (m *Manager) Save(src Source) error {
	snap, err := m.Assemble(src)
	if err != nil {
		return err
	}
	return m.Write(snap)
}

// Write persists a snapshot via write-to-temp-then-rename, so a crash
// mid-write can never leave a torn save file.
func (m *Manager) Write(snap *Snapshot) error {
	if m == nil || snap == nil {
		return &SerializeError{Err: fmt.Errorf("nil snapshot")}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &SerializeError{Err: err}
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IoError{Op: "create save dir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, saveFileName+".*.tmp")
	if err != nil {
		return &IoError{Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IoError{Op: "write temp file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IoError{Op: "close temp file", Err: err}
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return &IoError{Op: "rename temp file", Err: err}
	}

	log.Debug("saves: wrote %s", m.path)
	return nil
}

// Load reads and decodes the save file, migrating older versions through the
// registered chain. A version with no path to the current format returns a
// *VersionError and nothing is applied.
func (m *Manager) Load() (*Snapshot, error) {
	if m == nil {
		return nil, &IoError{Op: "read", Err: os.ErrInvalid}
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, &IoError{Op: "read", Err: err}
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ParseError{Err: err}
	}
	if probe.Version > Version {
		return nil, &VersionError{Version: probe.Version}
	}
	if probe.Version < Version {
		data, err = m.migrate(data, probe.Version)
		if err != nil {
			return nil, err
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &ParseError{Err: err}
	}
	// Old or hand-edited files may omit maps entirely.
	if snap.Rooms == nil {
		snap.Rooms = make(map[levels.RoomID]RoomState)
	}
	if snap.Map == nil {
		snap.Map = make(map[levels.RoomID]bool)
	}
	return &snap, nil
}

// Apply restores a loaded snapshot into the live session: deltas and map
// state first, then the stored room through the reloader's despawn/load/spawn
// path, then inventory and candle state back onto the persistent actor.
func (m *Manager) Apply(snap *Snapshot, w *ecs.World, src Source, r Reloader) error {
	if snap == nil || w == nil || r == nil || src.State == nil {
		return &SerializeError{Err: fmt.Errorf("incomplete apply arguments")}
	}
	if snap.Version != Version {
		return &VersionError{Version: snap.Version}
	}

	src.Deltas.Restore(roomDeltasFrom(snap.Rooms))
	src.Map.Restore(snap.Map)
	src.State.Deaths = snap.Stats.Deaths
	src.State.Elapsed = time.Duration(snap.Stats.CompletionTime * float64(time.Second))
	for _, secret := range snap.Stats.CollectedSecrets {
		src.State.CollectSecret(secret)
	}

	actual := r.Reload(w, snap.Player.CurrentRoom)

	player, ok := entity.FindPersistentActor(w, component.PlayerActorID)
	if !ok {
		return &SerializeError{Err: fmt.Errorf("no persistent player actor after reload")}
	}

	// Only reuse the stored position when the stored room actually spawned;
	// a fallback room has its own spawn point.
	if actual == snap.Player.CurrentRoom {
		pos := snap.Player.SpawnPosition.Vector()
		if t, tok := ecs.Get(w, player, component.TransformComponent); tok {
			t.Pos = pos
		} else {
			_ = ecs.Add(w, player, component.TransformComponent, &component.Transform{Pos: pos})
		}
		src.State.LastEntryPoint = pos
	}

	_ = ecs.Add(w, player, component.InventoryComponent, &component.Inventory{
		Matches: snap.Player.Inventory.Matches,
		Keys:    copyKeys(snap.Player.Inventory.Keys),
		Items:   append([]string(nil), snap.Player.Inventory.Items...),
	})
	_ = ecs.Add(w, player, component.CandleComponent, &component.Candle{
		Wax:    snap.Player.CandleWax,
		MaxWax: snap.Player.CandleMaxWax,
		State:  component.CandleState(snap.Player.CandleState),
	})
	_ = ecs.Add(w, player, component.AbilitiesComponent, &component.Abilities{
		DoubleJump: snap.Player.Abilities.DoubleJump,
		WallGrab:   snap.Player.Abilities.WallGrab,
		Anchor:     snap.Player.Abilities.Anchor,
	})

	w.Events().Push(ecs.Event{Type: ecs.EventLoadCompleted})
	return nil
}

func copyKeys(keys map[levels.KeyType]int) map[levels.KeyType]int {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[levels.KeyType]int, len(keys))
	for k, n := range keys {
		out[k] = n
	}
	return out
}
