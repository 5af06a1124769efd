package component

import "github.com/milk9111/candlelit/levels"

// RoomMember tags an entity as belonging to a room. "Belongs to room" is a
// query over this tag, not a stored back-pointer graph; despawning a room is
// destroying every RoomMember, which can never orphan a reference.
type RoomMember struct {
	Room levels.RoomID
}

var RoomMemberComponent = NewComponent[RoomMember]()
