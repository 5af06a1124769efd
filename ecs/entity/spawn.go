package entity

import (
	"sync"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/levels"
	"github.com/milk9111/candlelit/log"
	"github.com/milk9111/candlelit/prefabs"
	"github.com/milk9111/candlelit/session"
)

// SpawnReport summarizes one room spawn pass.
type SpawnReport struct {
	// Count is the number of entities materialized, the player included.
	Count    int
	Entities []ecs.Entity
	// Skipped counts descriptors that produced nothing: unknown tags and
	// already-collected items.
	Skipped int
	// SpawnPoint is the room's player entry point.
	SpawnPoint cp.Vector
	// HasSpawnPoint is false when the level file carries no player
	// descriptor; callers fall back to the bounds origin.
	HasSpawnPoint bool
}

var (
	trapSpecOnce sync.Once
	trapSpec     *prefabs.TrapSpec
)

func loadTrapSpec() *prefabs.TrapSpec {
	trapSpecOnce.Do(func() {
		spec, err := prefabs.LoadTrapSpec()
		if err != nil {
			log.Error("spawn: load trap prefab: %v", err)
			spec = &prefabs.TrapSpec{Name: "trap", Damage: 1, Armed: true}
		}
		trapSpec = spec
	})
	return trapSpec
}

// SpawnAll materializes a level's spawn list into the world, in file order.
// The order carries no gameplay meaning but keeps spawns reproducible.
// Unknown tags are logged and skipped; one bad descriptor never aborts the
// rest. Room deltas overlay the static data: collected items are not
// re-spawned, solved puzzles spawn solved, unlocked doors spawn unlocked.
func SpawnAll(w *ecs.World, lvl *levels.Level, deltas *session.Deltas) SpawnReport {
	var report SpawnReport
	if w == nil || lvl == nil {
		return report
	}

	record := func(e ecs.Entity) {
		report.Count++
		report.Entities = append(report.Entities, e)
	}

	for _, d := range lvl.Entities {
		switch d.Kind {
		case levels.SpawnPlayer:
			e, created, err := PlacePlayerAt(w, d.Pos)
			if err != nil {
				log.Error("spawn: room %d player: %v", lvl.ID, err)
				report.Skipped++
				continue
			}
			report.SpawnPoint = d.Pos
			report.HasSpawnPoint = true
			if created {
				record(e)
			}
		case levels.SpawnDoor:
			record(spawnDoor(w, lvl.ID, d, deltas))
		case levels.SpawnItem:
			if deltas.ItemCollected(lvl.ID, d.ID) {
				report.Skipped++
				continue
			}
			record(spawnItem(w, lvl.ID, d))
		case levels.SpawnTrap:
			record(spawnTrap(w, lvl.ID, d))
		case levels.SpawnPuzzle:
			record(spawnPuzzle(w, lvl.ID, d, deltas))
		default:
			log.Warn("spawn: room %d unknown entity tag %q, skipping", lvl.ID, d.Tag)
			report.Skipped++
		}
	}

	return report
}

func spawnDoor(w *ecs.World, room levels.RoomID, d levels.SpawnDescriptor, deltas *session.Deltas) ecs.Entity {
	e := newRoomEntity(w, room, d.Pos)
	_ = ecs.Add(w, e, component.DoorComponent, &component.Door{
		Target:   d.TargetRoom,
		Kind:     levels.ConnectionDoor,
		Lock:     d.Lock,
		Unlocked: d.Lock == levels.KeyNone || deltas.DoorUnlocked(room, d.TargetRoom),
	})
	return e
}

func spawnItem(w *ecs.World, room levels.RoomID, d levels.SpawnDescriptor) ecs.Entity {
	e := newRoomEntity(w, room, d.Pos)
	_ = ecs.Add(w, e, component.CollectibleComponent, &component.Collectible{
		ID:   d.ID,
		Kind: d.ItemKind,
		Key:  d.Key,
	})
	return e
}

func spawnTrap(w *ecs.World, room levels.RoomID, d levels.SpawnDescriptor) ecs.Entity {
	spec := loadTrapSpec()
	e := newRoomEntity(w, room, d.Pos)
	_ = ecs.Add(w, e, component.TrapComponent, &component.Trap{
		Armed:  spec.Armed,
		Damage: spec.Damage,
	})
	return e
}

func spawnPuzzle(w *ecs.World, room levels.RoomID, d levels.SpawnDescriptor, deltas *session.Deltas) ecs.Entity {
	e := newRoomEntity(w, room, d.Pos)
	_ = ecs.Add(w, e, component.PuzzleComponent, &component.Puzzle{
		ID:     d.ID,
		Solved: deltas.PuzzleSolved(room, d.ID),
	})
	return e
}

func newRoomEntity(w *ecs.World, room levels.RoomID, pos cp.Vector) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Pos: pos})
	_ = ecs.Add(w, e, component.RoomMemberComponent, &component.RoomMember{Room: room})
	return e
}
