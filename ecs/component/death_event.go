package component

// DeathEvent is a one-shot event from the collision/trap layer reporting that
// an actor died. The respawn manager consumes it. An event whose actor handle
// is stale (despawned since) is dropped silently.
type DeathEvent struct {
	// Actor is the packed entity handle (ecs.Entity is uint64).
	Actor uint64
	Cause string
}

var DeathEventComponent = NewComponent[DeathEvent]()

// DeathPending is attached to a dying player while the respawn timer runs.
// Frames counts down once per tick; at zero the player respawns at the last
// room-entry point.
type DeathPending struct {
	Frames int
	Cause  string
}

var DeathPendingComponent = NewComponent[DeathPending]()
