package component

// PersistentActor marks an entity that survives room despawns: the player and
// whatever it carries. Room transitions rewrite its transform but never
// destroy it, which is what lets inventory and candle state follow the player
// between rooms. At most one entity per ID exists; the spawner collapses
// duplicates toward the pre-existing entity.
type PersistentActor struct {
	ID string
}

// PlayerActorID is the persistent id of the player entity.
const PlayerActorID = "player"

var PersistentActorComponent = NewComponent[PersistentActor]()
