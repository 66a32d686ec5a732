// Package inventory implements stack containers, trading, equipment and
// crafting over a GameState.
package inventory

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Add merges qty units of id into inv and returns the new slice.
// The input slice is not modified.
func Add(inv []types.ItemStack, id string, qty int) []types.ItemStack {
	out := append([]types.ItemStack{}, inv...)
	if qty <= 0 {
		return out
	}
	for i := range out {
		if out[i].ID == id {
			out[i].Count += qty
			return out
		}
	}
	return append(out, types.ItemStack{ID: id, Count: qty})
}

// Remove takes qty units of id out of inv. A stack reaching zero is deleted.
// Removing from a missing or short stack is an error, never a truncation.
func Remove(inv []types.ItemStack, id string, qty int) ([]types.ItemStack, error) {
	for i, st := range inv {
		if st.ID != id {
			continue
		}
		if st.Count < qty {
			return inv, reject.New(reject.MissingItem, fmt.Sprintf("You only have %d %s.", st.Count, id))
		}
		out := append([]types.ItemStack{}, inv...)
		if st.Count == qty {
			return append(out[:i], out[i+1:]...), nil
		}
		out[i].Count -= qty
		return out, nil
	}
	return inv, reject.New(reject.MissingItem, fmt.Sprintf("You don't have any %s.", id))
}

// Count returns how many units of id are held.
func Count(inv []types.ItemStack, id string) int {
	for _, st := range inv {
		if st.ID == id {
			return st.Count
		}
	}
	return 0
}

// Has returns true if at least one unit of id is held.
func Has(inv []types.ItemStack, id string) bool {
	return Count(inv, id) > 0
}

// Total returns the number of units across all stacks.
func Total(inv []types.ItemStack) int {
	n := 0
	for _, st := range inv {
		n += st.Count
	}
	return n
}

// Loot adds one unit of a found item and records it in the compendium.
func Loot(defs *state.Defs, s *types.GameState, id string) error {
	it, ok := state.Item(defs, id)
	if !ok {
		return reject.Invalid()
	}
	s.Inventory = Add(s.Inventory, it.ID, 1)
	state.Discover(s, it.ID)
	state.AddLog(s, fmt.Sprintf("You found %s.", it.Name))
	return nil
}

// CanAfford reports whether gold covers price.
func CanAfford(s *types.GameState, price int) error {
	if price > s.Resources.Gold {
		return reject.New(reject.InsufficientGold, "Not enough gold!")
	}
	return nil
}

// Buy purchases one unit of an item at its listed price.
func Buy(defs *state.Defs, s *types.GameState, id string) error {
	it, ok := state.Item(defs, id)
	if !ok {
		return reject.Invalid()
	}
	if err := CanAfford(s, it.Price); err != nil {
		return err
	}
	s.Resources.Gold -= it.Price
	s.Inventory = Add(s.Inventory, it.ID, 1)
	state.AddLog(s, fmt.Sprintf("Bought %s for %d gold.", it.Name, it.Price))
	return nil
}

// SellPrice is what the shop pays for one unit: half the listed price.
func SellPrice(it types.ItemDef) int {
	return it.Price / 2
}

// Sell sells one unit of a held item for SellPrice.
func Sell(defs *state.Defs, s *types.GameState, id string) error {
	it, ok := state.Item(defs, id)
	if !ok {
		return reject.Invalid()
	}
	inv, err := Remove(s.Inventory, id, 1)
	if err != nil {
		return err
	}
	s.Inventory = inv
	s.Resources.Gold += SellPrice(it)
	state.AddLog(s, fmt.Sprintf("Sold %s for %d gold.", it.Name, SellPrice(it)))
	return nil
}

// Use consumes one unit of a consumable and applies its hp/hunger effect.
func Use(defs *state.Defs, s *types.GameState, id string) error {
	it, ok := state.Item(defs, id)
	if !ok {
		return reject.Invalid()
	}
	if it.Category != types.CategoryConsumable {
		return reject.New(reject.Blocked, fmt.Sprintf("%s can't be used.", it.Name))
	}
	inv, err := Remove(s.Inventory, id, 1)
	if err != nil {
		return err
	}
	s.Inventory = inv
	s.Player.HP += it.Effect["hp"]
	s.Player.Hunger += it.Effect["hunger"]
	line := fmt.Sprintf("Used %s.", it.Name)
	if s.Status.InCombat {
		state.AddCombatLog(s, line)
	}
	state.AddLog(s, line)
	return nil
}

// Equip moves one unit of an item into its slot. Whatever occupied the slot
// returns to the inventory in the same step.
func Equip(defs *state.Defs, s *types.GameState, id string) error {
	it, ok := state.Item(defs, id)
	if !ok {
		return reject.Invalid()
	}
	slot := it.Slot
	if slot == "" && it.Category == types.CategoryEquip {
		slot = types.SlotWeapon
	}
	if slot == "" {
		return reject.New(reject.Blocked, fmt.Sprintf("%s can't be equipped.", it.Name))
	}
	inv, err := Remove(s.Inventory, id, 1)
	if err != nil {
		return err
	}
	if prev, ok := s.Equipment[slot]; ok {
		inv = Add(inv, prev.ID, 1)
	}
	s.Inventory = inv
	s.Equipment[slot] = types.ItemInstance{
		ID:     it.ID,
		Name:   it.Name,
		Slot:   slot,
		Effect: state.CloneItem(it).Effect,
	}
	state.AddLog(s, fmt.Sprintf("Equipped %s.", it.Name))
	return nil
}

// Unequip returns the item in slot to the inventory.
func Unequip(s *types.GameState, slot string) error {
	prev, ok := s.Equipment[slot]
	if !ok {
		return reject.Invalid()
	}
	delete(s.Equipment, slot)
	s.Inventory = Add(s.Inventory, prev.ID, 1)
	state.AddLog(s, fmt.Sprintf("Unequipped %s.", prev.Name))
	return nil
}

// EquippedEffect returns effect[key] of the item in slot, or 0.
func EquippedEffect(s *types.GameState, slot, key string) int {
	if inst, ok := s.Equipment[slot]; ok {
		return inst.Effect[key]
	}
	return 0
}
