package system

import (
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/log"
	"github.com/milk9111/candlelit/prefabs"
	"github.com/milk9111/candlelit/session"
)

const defaultRespawnDelayFrames = 60

// RespawnSystem consumes DeathEvent entities and respawns the player at the
// last room-entry point after a fixed delay. Inventory, candle state and the
// per-room deltas are untouched by death; only position, health and the death
// counter change.
type RespawnSystem struct {
	state       *session.State
	delayFrames int
}

func NewRespawnSystem(state *session.State) *RespawnSystem {
	delay := defaultRespawnDelayFrames
	if spec, err := prefabs.LoadPlayerSpec(); err == nil && spec.RespawnDelayFrames > 0 {
		delay = spec.RespawnDelayFrames
	}
	return &RespawnSystem{
		state:       state,
		delayFrames: delay,
	}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.intakeDeaths(w)
	s.tickPending(w)
}

func (s *RespawnSystem) intakeDeaths(w *ecs.World) {
	ecs.ForEach(w, component.DeathEventComponent, func(e ecs.Entity, evt *component.DeathEvent) {
		ecs.DestroyEntity(w, e)

		actor := ecs.FromRaw(evt.Actor)
		if !ecs.IsAlive(w, actor) {
			// The actor despawned since the event fired, typically because a
			// room transition landed in the same tick.
			log.Debug("respawn: dropping death event for stale actor %s", actor)
			return
		}
		if !ecs.Has(w, actor, component.PlayerTagComponent) {
			log.Debug("respawn: ignoring death of non-player actor %s", actor)
			return
		}
		if ecs.Has(w, actor, component.DeathPendingComponent) {
			// Already dying; a second cause in the same window changes nothing.
			return
		}

		if h, ok := ecs.Get(w, actor, component.HealthComponent); ok {
			h.State = component.HealthDead
		}
		_ = ecs.Add(w, actor, component.DeathPendingComponent, &component.DeathPending{
			Frames: s.delayFrames,
			Cause:  evt.Cause,
		})
		log.Info("respawn: player died (%s), respawning in %d frames", evt.Cause, s.delayFrames)
	})
}

func (s *RespawnSystem) tickPending(w *ecs.World) {
	ecs.ForEach(w, component.DeathPendingComponent, func(actor ecs.Entity, pending *component.DeathPending) {
		pending.Frames--
		if pending.Frames > 0 {
			return
		}

		if t, ok := ecs.Get(w, actor, component.TransformComponent); ok {
			t.Pos = s.state.LastEntryPoint
		}
		if h, ok := ecs.Get(w, actor, component.HealthComponent); ok {
			h.State = component.HealthAlive
		}
		s.state.Deaths++
		s.rearmRoomTraps(w)
		ecs.Remove(w, actor, component.DeathPendingComponent)

		w.Events().Push(ecs.Event{Type: ecs.EventPlayerRespawned})
	})
}

// rearmRoomTraps resets every trap in the current room so the hazard that
// killed the player is live again on respawn.
func (s *RespawnSystem) rearmRoomTraps(w *ecs.World) {
	ecs.ForEach2(w, component.TrapComponent, component.RoomMemberComponent, func(_ ecs.Entity, trap *component.Trap, member *component.RoomMember) {
		if member.Room == s.state.CurrentRoom {
			trap.Armed = true
		}
	})
}
