package component

// Trap damages the player on contact while armed. Respawns re-arm every trap
// in the room.
type Trap struct {
	Armed  bool
	Damage int
}

var TrapComponent = NewComponent[Trap]()
