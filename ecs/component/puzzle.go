package component

// Puzzle holds the pass/fail state of a room puzzle. Validation logic lives
// outside this subsystem; only the solved flag is persisted here.
type Puzzle struct {
	ID     string
	Solved bool
}

var PuzzleComponent = NewComponent[Puzzle]()
