package component

import "github.com/milk9111/candlelit/levels"

// Inventory is what the player carries. It rides on the persistent actor and
// is untouched by despawns and respawns.
type Inventory struct {
	Matches int
	Keys    map[levels.KeyType]int
	Items   []string
}

// HasKey reports whether the inventory holds at least one key of the type.
func (inv *Inventory) HasKey(key levels.KeyType) bool {
	if inv == nil || key == levels.KeyNone {
		return false
	}
	return inv.Keys[key] > 0
}

// AddKey adds one key of the type.
func (inv *Inventory) AddKey(key levels.KeyType) {
	if inv == nil || key == levels.KeyNone {
		return
	}
	if inv.Keys == nil {
		inv.Keys = make(map[levels.KeyType]int)
	}
	inv.Keys[key]++
}

var InventoryComponent = NewComponent[Inventory]()
