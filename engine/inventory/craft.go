package inventory

import (
	"fmt"
	"sort"

	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// CanCraft checks tool possession and every material count. The returned
// error lists each shortfall.
func CanCraft(defs *state.Defs, inv []types.ItemStack, r types.RecipeDef) error {
	var missing []string
	if r.Tool != "" && !Has(inv, r.Tool) {
		missing = append(missing, fmt.Sprintf("Requires %s.", state.ItemName(defs, r.Tool)))
	}
	for _, id := range materialIDs(r) {
		need := r.Requires[id]
		if have := Count(inv, id); have < need {
			missing = append(missing, fmt.Sprintf("Missing %s (%d/%d).", state.ItemName(defs, id), have, need))
		}
	}
	if len(missing) > 0 {
		return reject.Many(reject.MissingItem, missing)
	}
	return nil
}

// Craft consumes a recipe's materials and adds its result. It validates
// first and either succeeds entirely or returns inv untouched.
func Craft(defs *state.Defs, inv []types.ItemStack, r types.RecipeDef) ([]types.ItemStack, error) {
	if err := CanCraft(defs, inv, r); err != nil {
		return inv, err
	}
	out := inv
	for _, id := range materialIDs(r) {
		var err error
		if out, err = Remove(out, id, r.Requires[id]); err != nil {
			return inv, err
		}
	}
	return Add(out, r.Result, 1), nil
}

// CraftRecipe runs Craft against the state's inventory.
func CraftRecipe(defs *state.Defs, s *types.GameState, recipeID string) error {
	r, ok := state.Recipe(defs, recipeID)
	if !ok {
		return reject.Invalid()
	}
	inv, err := Craft(defs, s.Inventory, r)
	if err != nil {
		return err
	}
	s.Inventory = inv
	state.AddLog(s, fmt.Sprintf("Crafted %s.", state.ItemName(defs, r.Result)))
	return nil
}

func materialIDs(r types.RecipeDef) []string {
	ids := make([]string, 0, len(r.Requires))
	for id := range r.Requires {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
