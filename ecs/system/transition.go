package system

import (
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/ecs/entity"
	"github.com/milk9111/candlelit/levels"
	"github.com/milk9111/candlelit/log"
	"github.com/milk9111/candlelit/session"
)

// TransitionPhase tracks where a transition is inside one Update call. The
// whole despawn/load/spawn sequence runs to completion within a single tick,
// so no partially-transitioned world is ever observable between ticks.
type TransitionPhase int

const (
	PhaseIdle TransitionPhase = iota
	PhaseDespawning
	PhaseLoading
	PhaseSpawning
)

// RoomChanged is the payload of an EventRoomChanged event.
type RoomChanged struct {
	From levels.RoomID
	To   levels.RoomID
}

// RoomTransitionSystem owns the room lifecycle: it consumes RoomChangeRequest
// entities and moves the session to the target room. At most one room's
// entities exist at a time; persistent actors survive the swap.
type RoomTransitionSystem struct {
	loader   *levels.Loader
	state    *session.State
	mapState *session.MapState
	deltas   *session.Deltas

	phase TransitionPhase
}

func NewRoomTransitionSystem(loader *levels.Loader, state *session.State, mapState *session.MapState, deltas *session.Deltas) *RoomTransitionSystem {
	return &RoomTransitionSystem{
		loader:   loader,
		state:    state,
		mapState: mapState,
		deltas:   deltas,
	}
}

// Phase returns the current transition phase. Outside of a transition this is
// PhaseIdle.
func (s *RoomTransitionSystem) Phase() TransitionPhase {
	if s == nil {
		return PhaseIdle
	}
	return s.phase
}

// Update drains pending RoomChangeRequest entities. The first request wins;
// extras in the same tick are logged and dropped, never queued.
func (s *RoomTransitionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var (
		target levels.RoomID
		found  bool
	)
	ecs.ForEach(w, component.RoomChangeRequestComponent, func(e ecs.Entity, req *component.RoomChangeRequest) {
		if !found {
			target = req.TargetRoom
			found = true
		} else {
			log.Warn("transition: dropping extra room change request for room %d", req.TargetRoom)
		}
		ecs.DestroyEntity(w, e)
	})
	if !found {
		return
	}

	from := s.state.CurrentRoom
	actual := s.transition(w, target)

	w.Events().Push(ecs.Event{Type: ecs.EventRoomChanged, Data: RoomChanged{From: from, To: actual}})

	save := ecs.CreateEntity(w)
	_ = ecs.Add(w, save, component.SaveRequestComponent, &component.SaveRequest{})
	w.Events().Push(ecs.Event{Type: ecs.EventAutoSaveRequested})
}

// Reload runs the despawn/load/spawn sequence toward the target room without
// emitting the transition events. The save manager uses it to restore the
// room stored in a snapshot. The returned id is the room actually spawned,
// which differs from target only when the target could not be loaded.
func (s *RoomTransitionSystem) Reload(w *ecs.World, target levels.RoomID) levels.RoomID {
	if s == nil || w == nil {
		return 0
	}
	return s.transition(w, target)
}

func (s *RoomTransitionSystem) transition(w *ecs.World, target levels.RoomID) levels.RoomID {
	s.phase = PhaseDespawning
	despawnRoom(w)

	s.phase = PhaseLoading
	lvl, err := s.loader.Load(target)
	if err != nil {
		log.Error("transition: load room %d: %v", target, err)
		lvl = levels.Fallback(target)
	}

	s.phase = PhaseSpawning
	report := entity.SpawnAll(w, lvl, s.deltas)

	spawnPoint := report.SpawnPoint
	if !report.HasSpawnPoint {
		// A level with no player descriptor still needs the player somewhere
		// inside it.
		spawnPoint = lvl.Bounds.Min
		if _, _, err := entity.PlacePlayerAt(w, spawnPoint); err != nil {
			log.Error("transition: place player in room %d: %v", lvl.ID, err)
		}
	}

	s.state.CurrentRoom = lvl.ID
	s.state.LastEntryPoint = spawnPoint
	// Mark the room that actually spawned; a fallback for a broken id still
	// counts as where the player is.
	s.mapState.MarkExplored(lvl.ID)

	s.phase = PhaseIdle
	return lvl.ID
}

// despawnRoom destroys every entity tagged with RoomMember. Persistent actors
// never carry the tag, so they survive untouched.
func despawnRoom(w *ecs.World) {
	ecs.ForEach(w, component.RoomMemberComponent, func(e ecs.Entity, _ *component.RoomMember) {
		ecs.DestroyEntity(w, e)
	})
}
