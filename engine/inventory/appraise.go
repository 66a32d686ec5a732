package inventory

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// AppraisalFee is charged per identified relic.
const AppraisalFee = 50

// Rarity tiers, most common first.
const (
	TierCommon    = 4
	TierUncommon  = 3
	TierRare      = 2
	TierLegendary = 1
	TierUnique    = 0
)

// appraisalTiers maps one uniform roll to a rarity tier.
var appraisalTiers = []rng.Band[int]{
	{Upto: 0.50, Value: TierCommon},
	{Upto: 0.80, Value: TierUncommon},
	{Upto: 0.95, Value: TierRare},
	{Upto: 0.99, Value: TierLegendary},
	{Upto: 1.00, Value: TierUnique},
}

// RollTier maps a roll to a rarity tier.
func RollTier(roll float64) int {
	tier, ok := rng.Pick(roll, appraisalTiers)
	if !ok {
		return TierUnique
	}
	return tier
}

// TierPool returns the identifiable items of a rarity tier in content order.
// Raw relics never appear in a pool.
func TierPool(defs *state.Defs, tier int) []types.ItemDef {
	var pool []types.ItemDef
	for _, it := range defs.Items {
		if it.Rarity == nil || *it.Rarity != tier || it.Category == types.CategoryRelicRaw {
			continue
		}
		pool = append(pool, it)
	}
	return pool
}

// poolFor walks from tier toward the common end until a pool has items,
// then back toward the unique end.
func poolFor(defs *state.Defs, tier int) []types.ItemDef {
	for t := tier; t <= TierCommon; t++ {
		if pool := TierPool(defs, t); len(pool) > 0 {
			return pool
		}
	}
	for t := tier - 1; t >= TierUnique; t-- {
		if pool := TierPool(defs, t); len(pool) > 0 {
			return pool
		}
	}
	return nil
}

// Appraise consumes one raw relic and the fee, then identifies exactly one
// item: a tier roll followed by a uniform pick inside the tier.
func Appraise(defs *state.Defs, s *types.GameState, id string, src rng.Source) error {
	it, ok := state.Item(defs, id)
	if !ok || it.Category != types.CategoryRelicRaw {
		return reject.Invalid()
	}
	if !Has(s.Inventory, id) {
		return reject.New(reject.MissingItem, fmt.Sprintf("You don't have any %s.", it.Name))
	}
	if err := CanAfford(s, AppraisalFee); err != nil {
		return err
	}
	if poolFor(defs, TierCommon) == nil {
		return reject.Invalid()
	}

	inv, err := Remove(s.Inventory, id, 1)
	if err != nil {
		return err
	}
	pool := poolFor(defs, RollTier(src.Next()))
	found := pool[rng.Index(src, len(pool))]

	s.Inventory = Add(inv, found.ID, 1)
	s.Resources.Gold -= AppraisalFee
	s.Stats.RelicsFound++
	state.Discover(s, found.ID)
	state.AddLog(s, fmt.Sprintf("Appraisal complete! Identified %s.", found.Name))
	return nil
}
