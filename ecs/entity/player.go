package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/prefabs"
)

// PlacePlayerAt ensures exactly one player exists and stands at pos. If a
// persistent player actor is already in the world its transform is rewritten;
// the entity itself, and with it inventory and candle state, is untouched.
// Only when no player exists is one built from the player prefab. The bool
// reports whether a new entity was created.
func PlacePlayerAt(w *ecs.World, pos cp.Vector) (ecs.Entity, bool, error) {
	if existing, ok := FindPersistentActor(w, component.PlayerActorID); ok {
		if t, tok := ecs.Get(w, existing, component.TransformComponent); tok {
			t.Pos = pos
		} else {
			_ = ecs.Add(w, existing, component.TransformComponent, &component.Transform{Pos: pos})
		}
		return existing, false, nil
	}

	e, err := NewPlayerAt(w, pos)
	if err != nil {
		return 0, false, err
	}
	return e, true, nil
}

// NewPlayerAt builds a fresh player from the player prefab.
func NewPlayerAt(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PersistentActorComponent, &component.PersistentActor{ID: component.PlayerActorID}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Pos: pos}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.HealthComponent, &component.Health{
		State: component.HealthAlive,
		Max:   spec.Health,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.CandleComponent, &component.Candle{
		Wax:    spec.Candle.StartWax,
		MaxWax: spec.Candle.MaxWax,
		State:  component.CandleState(spec.Candle.State),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InventoryComponent, &component.Inventory{
		Matches: spec.Inventory.Matches,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AbilitiesComponent, &component.Abilities{
		DoubleJump: spec.Abilities.DoubleJump,
		WallGrab:   spec.Abilities.WallGrab,
		Anchor:     spec.Abilities.Anchor,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

// FindPersistentActor returns the live entity carrying the persistent id.
func FindPersistentActor(w *ecs.World, id string) (ecs.Entity, bool) {
	var (
		found ecs.Entity
		ok    bool
	)
	ecs.ForEach(w, component.PersistentActorComponent, func(e ecs.Entity, p *component.PersistentActor) {
		if !ok && p.ID == id {
			found = e
			ok = true
		}
	})
	return found, ok
}

// ResolvePersistentActors collapses duplicate persistent actors onto the
// preferred entity per id, destroying the rest. Duplicates can appear when a
// stored snapshot is applied over a live world.
func ResolvePersistentActors(w *ecs.World, preferred map[string]ecs.Entity) {
	seen := make(map[string]ecs.Entity)
	var toDestroy []ecs.Entity
	ecs.ForEach(w, component.PersistentActorComponent, func(e ecs.Entity, p *component.PersistentActor) {
		if p == nil || p.ID == "" {
			return
		}
		if preferredEntity, ok := preferred[p.ID]; ok {
			seen[p.ID] = preferredEntity
			if e != preferredEntity {
				toDestroy = append(toDestroy, e)
			}
			return
		}
		if existing, ok := seen[p.ID]; ok && existing != e {
			toDestroy = append(toDestroy, e)
			return
		}
		seen[p.ID] = e
	})
	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}
