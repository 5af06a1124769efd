package levels

import "github.com/jakecoffman/cp"

// Fallback builds the minimal recovery room for an unloadable room id: a
// single floor tile and a player spawn, nothing else. Transitions resolve to
// it rather than leaving the world empty, so a bad room reference degrades
// instead of halting gameplay.
func Fallback(room RoomID) *Level {
	return &Level{
		ID:     room,
		Floor:  FloorGround,
		Name:   "missing room",
		Bounds: Bounds{Min: cp.Vector{}, Max: cp.Vector{X: TileSize, Y: TileSize}},
		Tiles:  [][]int{{1}},
		Entities: []SpawnDescriptor{
			{
				Kind: SpawnPlayer,
				Tag:  "player",
				ID:   "fallback_player",
				Pos:  cp.Vector{X: TileSize / 2, Y: TileSize / 2},
			},
		},
	}
}
