package component

import "github.com/milk9111/candlelit/levels"

// Door is a traversable connection to another room. The interaction layer
// performs the unlock check against the player's inventory; the transition
// manager trusts the resulting request.
type Door struct {
	Target   levels.RoomID
	Kind     levels.ConnectionType
	Lock     levels.KeyType
	Unlocked bool
}

// Passable reports whether the door can be traversed without a key.
func (d *Door) Passable() bool {
	if d == nil {
		return false
	}
	return d.Lock == levels.KeyNone || d.Unlocked
}

var DoorComponent = NewComponent[Door]()
