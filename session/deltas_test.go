package session

import (
	"testing"

	"github.com/milk9111/candlelit/levels"
	"github.com/stretchr/testify/assert"
)

func TestDeltasCollectItem(t *testing.T) {
	d := NewDeltas()

	assert.False(t, d.ItemCollected(2, "study_wax"))
	d.CollectItem(2, "study_wax")
	assert.True(t, d.ItemCollected(2, "study_wax"))

	// Item ids are scoped to their room.
	assert.False(t, d.ItemCollected(3, "study_wax"))
}

func TestDeltasPuzzleAndDoor(t *testing.T) {
	d := NewDeltas()

	d.SetPuzzleSolved(2, "study_clock", true)
	d.UnlockDoor(2, 3)

	assert.True(t, d.PuzzleSolved(2, "study_clock"))
	assert.True(t, d.DoorUnlocked(2, 3))
	assert.False(t, d.DoorUnlocked(2, 1))
}

func TestDeltasSnapshotIsDeepCopy(t *testing.T) {
	d := NewDeltas()
	d.CollectItem(1, "hall_match")

	snap := d.Snapshot()
	snap[1].Collected["phantom"] = true
	snap[levels.RoomID(9)] = &RoomDelta{Collected: map[string]bool{"x": true}}

	assert.False(t, d.ItemCollected(1, "phantom"))
	assert.False(t, d.ItemCollected(9, "x"))
}

func TestDeltasRestoreReplaces(t *testing.T) {
	d := NewDeltas()
	d.CollectItem(1, "hall_match")

	d.Restore(map[levels.RoomID]*RoomDelta{
		2: {
			Collected: map[string]bool{"study_wax": true},
			Puzzles:   map[string]bool{"study_clock": true},
			Doors:     map[levels.RoomID]bool{3: true},
		},
	})

	assert.False(t, d.ItemCollected(1, "hall_match"), "restore replaces, never merges")
	assert.True(t, d.ItemCollected(2, "study_wax"))
	assert.True(t, d.PuzzleSolved(2, "study_clock"))
	assert.True(t, d.DoorUnlocked(2, 3))
}

func TestStateSecrets(t *testing.T) {
	s := NewState(ModeStandard)

	s.CollectSecret("attic_ghost")
	s.CollectSecret("attic_ghost")
	s.CollectSecret("cellar_coin")

	assert.True(t, s.HasSecret("attic_ghost"))
	assert.Equal(t, []string{"attic_ghost", "cellar_coin"}, s.Secrets())
}
