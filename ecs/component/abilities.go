package component

// Abilities are the player's unlocked movement abilities.
type Abilities struct {
	DoubleJump bool
	WallGrab   bool
	Anchor     bool
}

var AbilitiesComponent = NewComponent[Abilities]()
