package component

import "github.com/milk9111/candlelit/levels"

// RoomChangeRequest is a one-shot request emitted by the interaction layer
// after it has validated the door or staircase (lock check included) to ask
// the transition manager to move the player to another room.
//
// This keeps systems independent: the interaction layer only emits data; the
// transition manager owns despawn, IO and respawning the room.
type RoomChangeRequest struct {
	TargetRoom levels.RoomID
	// FromDoorEnt optionally records the door entity that triggered the
	// request (ecs.Entity is uint64), for debugging.
	FromDoorEnt uint64
}

var RoomChangeRequestComponent = NewComponent[RoomChangeRequest]()
