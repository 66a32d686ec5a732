// Package outpost manages player-built bases: deployment, fuel, the mining
// automaton and its storage.
package outpost

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Item ids and tuning.
const (
	KitItem       = "outpost_kit"
	CanisterItem  = "fuel_canister"
	ScrapItem     = "scrap"
	AutomatonItem = "automaton_core"

	MinDepth     = 500
	Spacing      = 300
	Snap         = 10
	ScrapFuel    = 10
	CanisterFuel = 100
	FindChance   = 0.3
	FuelPerTick  = 1
)

// Fuel kinds accepted by Refuel.
const (
	FuelScrap    = "scrap"
	FuelCanister = "canister"
)

// Key snaps a depth down to its outpost key.
func Key(depth int) int {
	return depth / Snap * Snap
}

// At returns the outpost at the player's current depth.
func At(s *types.GameState) (types.Outpost, bool) {
	o, ok := s.Outposts[Key(s.Player.Depth)]
	return o, ok
}

// Deploy consumes a kit and builds an outpost at the current depth.
func Deploy(defs *state.Defs, s *types.GameState) error {
	key := Key(s.Player.Depth)
	if s.Player.Depth < MinDepth {
		return reject.New(reject.Blocked, fmt.Sprintf("Outposts can only be built below %dm.", MinDepth))
	}
	for other := range s.Outposts {
		if d := other - key; d < Spacing && d > -Spacing {
			return reject.New(reject.Blocked, fmt.Sprintf("Too close to the outpost at %dm.", other))
		}
	}
	inv, err := inventory.Remove(s.Inventory, KitItem, 1)
	if err != nil {
		return reject.New(reject.MissingItem, fmt.Sprintf("You need a %s.", state.ItemName(defs, KitItem)))
	}
	s.Inventory = inv
	s.Outposts[key] = types.Outpost{Depth: key, Storage: []types.ItemStack{}}
	state.AddLog(s, fmt.Sprintf("Outpost deployed at %dm.", key))
	return nil
}

// Refuel burns one scrap or one canister into the local outpost's tank.
func Refuel(defs *state.Defs, s *types.GameState, kind string) error {
	o, ok := At(s)
	if !ok {
		return reject.Invalid()
	}
	var item string
	var fuel int
	switch kind {
	case FuelScrap:
		item, fuel = ScrapItem, ScrapFuel
	case FuelCanister:
		item, fuel = CanisterItem, CanisterFuel
	default:
		return reject.Invalid()
	}
	inv, err := inventory.Remove(s.Inventory, item, 1)
	if err != nil {
		return reject.New(reject.MissingItem, fmt.Sprintf("You need %s.", state.ItemName(defs, item)))
	}
	s.Inventory = inv
	o.Fuel += fuel
	s.Outposts[Key(s.Player.Depth)] = o
	state.AddLog(s, fmt.Sprintf("Outpost refueled (+%d).", fuel))
	return nil
}

// Install puts an automaton into the local outpost.
func Install(defs *state.Defs, s *types.GameState) error {
	o, ok := At(s)
	if !ok {
		return reject.Invalid()
	}
	if o.Automaton {
		return reject.New(reject.Blocked, "An automaton is already working here.")
	}
	inv, err := inventory.Remove(s.Inventory, AutomatonItem, 1)
	if err != nil {
		return reject.New(reject.MissingItem, fmt.Sprintf("You need %s.", state.ItemName(defs, AutomatonItem)))
	}
	s.Inventory = inv
	o.Automaton = true
	s.Outposts[Key(s.Player.Depth)] = o
	state.AddLog(s, "The automaton whirs to life.")
	return nil
}

// Collect moves the local outpost's storage into the inventory.
func Collect(s *types.GameState) error {
	o, ok := At(s)
	if !ok {
		return reject.Invalid()
	}
	if len(o.Storage) == 0 {
		return reject.New(reject.Blocked, "The storage is empty.")
	}
	n := 0
	for _, st := range o.Storage {
		s.Inventory = inventory.Add(s.Inventory, st.ID, st.Count)
		n += st.Count
	}
	o.Storage = []types.ItemStack{}
	s.Outposts[Key(s.Player.Depth)] = o
	state.AddLog(s, fmt.Sprintf("Collected %d items from the outpost.", n))
	return nil
}

// Advance runs one tick for every automaton outpost in key order: a fuelled
// automaton burns fuel and may store one item drawn from pool.
// Returns the number of items stored.
func Advance(s *types.GameState, pool []types.ItemDef, src rng.Source) int {
	found := 0
	for _, key := range state.OutpostKeys(s) {
		o := s.Outposts[key]
		if !o.Automaton || o.Fuel <= 0 {
			continue
		}
		o.Fuel -= FuelPerTick
		if src.Next() < FindChance && len(pool) > 0 {
			it := pool[rng.Index(src, len(pool))]
			o.Storage = inventory.Add(o.Storage, it.ID, 1)
			found++
		}
		s.Outposts[key] = o
	}
	return found
}
