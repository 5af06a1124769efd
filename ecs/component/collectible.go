package component

import "github.com/milk9111/candlelit/levels"

// Collectible is a pickup: a match, a wax refill, a key. ID is unique within
// its room and keys the collected-items delta so a taken item stays gone
// across re-entry and save/load.
type Collectible struct {
	ID   string
	Kind string
	Key  levels.KeyType
}

var CollectibleComponent = NewComponent[Collectible]()
