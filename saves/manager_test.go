package saves

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/ecs/entity"
	"github.com/milk9111/candlelit/levels"
	"github.com/milk9111/candlelit/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T) Source {
	t.Helper()
	w := ecs.NewWorld()
	player, _, err := entity.PlacePlayerAt(w, cp.Vector{X: 32, Y: 128})
	require.NoError(t, err)

	candle, ok := ecs.Get(w, player, component.CandleComponent)
	require.True(t, ok)
	candle.Wax = 75

	inv, ok := ecs.Get(w, player, component.InventoryComponent)
	require.True(t, ok)
	inv.AddKey(levels.KeyBrass)
	inv.Items = []string{"music_box"}

	state := session.NewState(session.ModeStandard)
	state.CurrentRoom = 2
	state.LastEntryPoint = cp.Vector{X: 32, Y: 128}
	state.Elapsed = 90 * time.Second
	state.Deaths = 4
	state.CollectSecret("cellar_coin")

	maps := session.NewMapState()
	maps.MarkExplored(1)
	maps.MarkExplored(2)

	deltas := session.NewDeltas()
	deltas.CollectItem(1, "hall_match")
	deltas.SetPuzzleSolved(2, "study_clock", true)
	deltas.UnlockDoor(2, 3)

	return Source{World: w, State: state, Map: maps, Deltas: deltas}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

// reloadStub stands in for the room transition system: it despawns the room,
// places the player, and reports what it spawned.
type reloadStub struct {
	spawned levels.RoomID
	// missing simulates an unloadable room id resolving to the fallback.
	missing map[levels.RoomID]bool
}

func (r *reloadStub) Reload(w *ecs.World, target levels.RoomID) levels.RoomID {
	ecs.ForEach(w, component.RoomMemberComponent, func(e ecs.Entity, _ *component.RoomMember) {
		ecs.DestroyEntity(w, e)
	})
	_, _, _ = entity.PlacePlayerAt(w, cp.Vector{X: 16, Y: 16})
	r.spawned = target
	return target
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestManager(t)
	src := newTestSource(t)

	require.NoError(t, m.Save(src))

	snap, err := m.Load()
	require.NoError(t, err)

	assert.Equal(t, Version, snap.Version)
	assert.NotEmpty(t, snap.Session)
	assert.Equal(t, levels.RoomID(2), snap.Player.CurrentRoom)
	assert.Equal(t, Position{X: 32, Y: 128}, snap.Player.SpawnPosition)
	assert.Equal(t, 75.0, snap.Player.CandleWax)
	assert.Equal(t, "lit", snap.Player.CandleState)
	assert.Equal(t, 3, snap.Player.Inventory.Matches)
	assert.Equal(t, 1, snap.Player.Inventory.Keys[levels.KeyBrass])
	assert.Equal(t, []string{"music_box"}, snap.Player.Inventory.Items)

	assert.Equal(t, []string{"hall_match"}, snap.Rooms[1].CollectedItems)
	assert.True(t, snap.Rooms[2].PuzzleStates["study_clock"])
	assert.Equal(t, []levels.RoomID{3}, snap.Rooms[2].UnlockedDoors)

	assert.True(t, snap.Map[1])
	assert.True(t, snap.Map[2])
	assert.False(t, snap.Map[3])

	assert.Equal(t, 90.0, snap.Stats.CompletionTime)
	assert.Equal(t, 4, snap.Stats.Deaths)
	assert.Equal(t, []string{"cellar_coin"}, snap.Stats.CollectedSecrets)
}

func TestApplyRestoresSession(t *testing.T) {
	m := newTestManager(t)
	src := newTestSource(t)
	require.NoError(t, m.Save(src))
	snap, err := m.Load()
	require.NoError(t, err)

	// Fresh session, as if the process restarted.
	w := ecs.NewWorld()
	fresh := Source{
		World:  w,
		State:  session.NewState(session.ModeStandard),
		Map:    session.NewMapState(),
		Deltas: session.NewDeltas(),
	}
	stub := &reloadStub{}

	require.NoError(t, m.Apply(snap, w, fresh, stub))

	assert.Equal(t, levels.RoomID(2), stub.spawned)
	assert.True(t, fresh.Map.IsExplored(1))
	assert.True(t, fresh.Deltas.ItemCollected(1, "hall_match"))
	assert.True(t, fresh.Deltas.DoorUnlocked(2, 3))
	assert.Equal(t, 4, fresh.State.Deaths)
	assert.Equal(t, 90*time.Second, fresh.State.Elapsed)
	assert.True(t, fresh.State.HasSecret("cellar_coin"))
	assert.Equal(t, cp.Vector{X: 32, Y: 128}, fresh.State.LastEntryPoint)

	player, ok := entity.FindPersistentActor(w, component.PlayerActorID)
	require.True(t, ok)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	assert.Equal(t, cp.Vector{X: 32, Y: 128}, tr.Pos)
	candle, _ := ecs.Get(w, player, component.CandleComponent)
	assert.Equal(t, 75.0, candle.Wax)
	inv, _ := ecs.Get(w, player, component.InventoryComponent)
	assert.True(t, inv.HasKey(levels.KeyBrass))

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventLoadCompleted, events[0].Type)
}

func TestLoadUnmigratableVersion(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0o755))
	require.NoError(t, os.WriteFile(m.Path(), []byte(`{"version": 1, "player_state": {"current_room": 5}}`), 0o644))

	_, err := m.Load()
	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Version)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0o755))
	require.NoError(t, os.WriteFile(m.Path(), []byte(`{"version": 99}`), 0o644))

	_, err := m.Load()
	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 99, verr.Version)
}

func TestLoadMigratesThroughChain(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0o755))

	// Version 1 stored the room at the top level.
	v1 := `{"version": 1, "current_room": 2, "stats": {"deaths": 7}}`
	require.NoError(t, os.WriteFile(m.Path(), []byte(v1), 0o644))

	m.RegisterMigration(1, func(doc map[string]any) (map[string]any, error) {
		room := doc["current_room"]
		delete(doc, "current_room")
		doc["player_state"] = map[string]any{"current_room": room}
		return doc, nil
	})

	snap, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, levels.RoomID(2), snap.Player.CurrentRoom)
	assert.Equal(t, 7, snap.Stats.Deaths)
	assert.NotNil(t, snap.Rooms)
	assert.NotNil(t, snap.Map)
}

func TestLoadMalformedFile(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(m.Path()), 0o755))
	require.NoError(t, os.WriteFile(m.Path(), []byte(`{"version":`), 0o644))

	_, err := m.Load()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLoadMissingFile(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Load()
	var ioErr *IoError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	src := newTestSource(t)

	require.NoError(t, m.Save(src))
	require.NoError(t, m.Save(src))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "save.json", entries[0].Name())
}

func TestWriteIsValidIndentedJSON(t *testing.T) {
	m := newTestManager(t)
	src := newTestSource(t)
	require.NoError(t, m.Save(src))

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, string(data), "\n  \"version\"")
}

func TestAssembleWithoutPlayerFails(t *testing.T) {
	m := newTestManager(t)
	src := Source{
		World:  ecs.NewWorld(),
		State:  session.NewState(session.ModeStandard),
		Map:    session.NewMapState(),
		Deltas: session.NewDeltas(),
	}

	_, err := m.Assemble(src)
	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
}

func TestWorkerWritesInBackground(t *testing.T) {
	m := newTestManager(t)
	src := newTestSource(t)
	snap, err := m.Assemble(src)
	require.NoError(t, err)

	worker := NewWorker(m, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	require.True(t, worker.Submit(Request{Snapshot: snap}))

	select {
	case err := <-worker.Results():
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for background save")
	}

	_, err = os.Stat(m.Path())
	require.NoError(t, err)
}

func TestWorkerSubmitFullQueue(t *testing.T) {
	m := newTestManager(t)
	src := newTestSource(t)
	snap, err := m.Assemble(src)
	require.NoError(t, err)

	// Not started, so nothing drains the queue.
	worker := NewWorker(m, 1)
	assert.True(t, worker.Submit(Request{Snapshot: snap}))
	assert.False(t, worker.Submit(Request{Snapshot: snap}), "a full queue drops, never blocks")
}
