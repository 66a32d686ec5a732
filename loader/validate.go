package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/abysscore/engine/dialogue"
	"github.com/nathoo/abysscore/engine/economy"
	"github.com/nathoo/abysscore/engine/outpost"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
	"github.com/zyedidia/generic/mapset"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Known item categories.
var validCategories = map[string]bool{
	types.CategoryMaterial:   true,
	types.CategoryConsumable: true,
	types.CategoryLoot:       true,
	types.CategoryRelicRaw:   true,
	types.CategoryRelic:      true,
	types.CategoryEquip:      true,
	types.CategoryArtifact:   true,
	types.CategoryItem:       true,
}

// Known equipment slots.
var validSlots = map[string]bool{
	types.SlotWeapon: true,
	types.SlotBody:   true,
	types.SlotCharm:  true,
}

// Known NPC reward kinds.
var validRewards = map[string]bool{
	dialogue.RewardBuffStr:    true,
	dialogue.RewardItem:       true,
	dialogue.RewardRestoreAll: true,
	dialogue.RewardRevealMap:  true,
}

// Items and machines the engine refers to by id. Missing ones only
// disable the feature that needs them.
var (
	engineItems = []string{
		"ration",
		outpost.KitItem,
		outpost.CanisterItem,
		outpost.ScrapItem,
		outpost.AutomatonItem,
	}
	engineMachines = []string{economy.Excavator, economy.Generator, economy.Bank}
)

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	// Game title required.
	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}

	items := mapset.New[string]()
	for _, it := range defs.Items {
		if items.Has(it.ID) {
			ve.errorf("duplicate item ID %q", it.ID)
		}
		items.Put(it.ID)

		if !validCategories[it.Category] {
			ve.errorf("item %q has unknown category %q", it.ID, it.Category)
		}
		if it.Price < 0 {
			ve.errorf("item %q has negative price %d", it.ID, it.Price)
		}
		switch {
		case it.Category == types.CategoryEquip && it.Slot != "" && !validSlots[it.Slot]:
			ve.errorf("equip item %q has unknown slot %q", it.ID, it.Slot)
		case it.Category != types.CategoryEquip && it.Slot != "":
			ve.warnf("item %q has slot %q but is not equipment", it.ID, it.Slot)
		}
		if it.Rarity != nil && *it.Rarity < 0 {
			ve.errorf("item %q has negative rarity", it.ID)
		}
	}

	recipes := mapset.New[string]()
	for _, r := range defs.Recipes {
		if recipes.Has(r.ID) {
			ve.errorf("duplicate recipe ID %q", r.ID)
		}
		recipes.Put(r.ID)

		if !items.Has(r.Result) {
			ve.errorf("recipe %q produces undefined item %q", r.ID, r.Result)
		}
		if len(r.Requires) == 0 {
			ve.errorf("recipe %q requires nothing", r.ID)
		}
		for id, n := range r.Requires {
			if !items.Has(id) {
				ve.errorf("recipe %q requires undefined item %q", r.ID, id)
			}
			if n <= 0 {
				ve.errorf("recipe %q requires %d of %q", r.ID, n, id)
			}
		}
		if r.Tool != "" && !items.Has(r.Tool) {
			ve.errorf("recipe %q needs undefined tool %q", r.ID, r.Tool)
		}
	}

	monsters := mapset.New[string]()
	for _, m := range defs.Monsters {
		if monsters.Has(m.Name) {
			ve.errorf("duplicate monster %q", m.Name)
		}
		monsters.Put(m.Name)

		if m.Power <= 0 {
			ve.errorf("monster %q must have positive power", m.Name)
		}
		if m.MaxDepth != 0 && m.MaxDepth < m.MinDepth {
			ve.errorf("monster %q depth range %d..%d is empty", m.Name, m.MinDepth, m.MaxDepth)
		}
		for _, d := range m.Drops {
			if !items.Has(d) {
				ve.errorf("monster %q drops undefined item %q", m.Name, d)
			}
		}
	}

	npcs := mapset.New[string]()
	for _, n := range defs.NPCs {
		if npcs.Has(n.ID) {
			ve.errorf("duplicate NPC ID %q", n.ID)
		}
		npcs.Put(n.ID)

		if n.MaxDepth < n.MinDepth {
			ve.errorf("NPC %q depth range %d..%d is empty", n.ID, n.MinDepth, n.MaxDepth)
		}
		if len(n.Options) == 0 {
			ve.warnf("NPC %q offers no options", n.ID)
		}
		opts := mapset.New[string]()
		for _, o := range n.Options {
			if o.ID == "" {
				ve.errorf("NPC %q has an option without an id", n.ID)
				continue
			}
			if opts.Has(o.ID) {
				ve.errorf("NPC %q has duplicate option %q", n.ID, o.ID)
			}
			opts.Put(o.ID)

			if !validRewards[o.Reward.Type] {
				ve.errorf("NPC %q option %q has unknown reward %q", n.ID, o.ID, o.Reward.Type)
			}
			if o.Reward.Type == dialogue.RewardItem && !items.Has(o.Reward.Item) {
				ve.errorf("NPC %q option %q rewards undefined item %q", n.ID, o.ID, o.Reward.Item)
			}
			if o.Cost.MaxHPPercent < 0 || o.Cost.MaxHPPercent >= 100 {
				ve.errorf("NPC %q option %q max_hp_percent must be in 0..99", n.ID, o.ID)
			}
		}
	}

	// Layers must not overlap.
	for i, l := range defs.Layers {
		if l.Max < l.Min {
			ve.errorf("layer %q range %d..%d is empty", l.Name, l.Min, l.Max)
		}
		if l.CombatChance < 0 || l.CombatChance > 1 {
			ve.errorf("layer %q combat_chance %.2f is outside 0..1", l.Name, l.CombatChance)
		}
		for _, o := range defs.Layers[:i] {
			if l.Min <= o.Max && o.Min <= l.Max {
				ve.errorf("layers %q and %q overlap", o.Name, l.Name)
			}
		}
	}
	if len(defs.Layers) == 0 {
		ve.warnf("no layers defined; depths will have no curse")
	}

	machines := mapset.New[string]()
	for _, m := range defs.Machines {
		if machines.Has(m.ID) {
			ve.errorf("duplicate machine ID %q", m.ID)
		}
		machines.Put(m.ID)

		if m.BasePrice <= 0 || m.PriceStep < 0 {
			ve.errorf("machine %q has invalid pricing %d+%d", m.ID, m.BasePrice, m.PriceStep)
		}
	}

	for _, id := range engineItems {
		if !items.Has(id) {
			ve.warnf("item %q is not defined", id)
		}
	}
	for _, id := range engineMachines {
		if !machines.Has(id) {
			ve.warnf("machine %q is not defined", id)
		}
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
