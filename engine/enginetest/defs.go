// Package enginetest provides a small fixed content set for engine tests.
package enginetest

import (
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

func rarity(r int) *int { return &r }

// Defs returns a compact content set covering every category the engine
// inspects. Callers may mutate the returned value freely.
func Defs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{Title: "Test Abyss", Version: "1.0"},
		Items: []types.ItemDef{
			{ID: "scrap", Name: "Scrap", Category: types.CategoryMaterial, Price: 10},
			{ID: "abyss_dust", Name: "Abyss Dust", Category: types.CategoryMaterial, Price: 25},
			{ID: "monster_bone", Name: "Bone", Category: types.CategoryMaterial, Price: 15},
			{ID: "ration", Name: "Ration", Category: types.CategoryConsumable, Price: 25, Effect: map[string]int{"hunger": 25}},
			{ID: "medkit", Name: "Medkit", Category: types.CategoryConsumable, Price: 100, Effect: map[string]int{"hp": 50}},
			{ID: "meat", Name: "Raw Meat", Category: types.CategoryConsumable, Price: 40, Effect: map[string]int{"hunger": 40, "hp": -5}},
			{ID: "cooked_meat", Name: "Steak", Category: types.CategoryConsumable, Price: 60, Effect: map[string]int{"hunger": 60, "hp": 10}},
			{ID: "stone", Name: "Stone", Category: types.CategoryLoot, Price: 5, Rarity: rarity(4)},
			{ID: "relic_shard", Name: "Relic Shard", Category: types.CategoryLoot, Price: 100},
			{ID: "dirty_relic", Name: "Dirty Relic", Category: types.CategoryRelicRaw, Price: 50, Rarity: rarity(1)},
			{ID: "eternal_torch", Name: "Eternal Torch", Category: types.CategoryRelic, Price: 120, Rarity: rarity(4)},
			{ID: "fog_weave", Name: "Fog Weave", Category: types.CategoryRelic, Price: 300, Rarity: rarity(3)},
			{ID: "star_compass", Name: "Star Compass", Category: types.CategoryArtifact, Price: 1000, Effect: map[string]int{"scout": 1}, Rarity: rarity(2)},
			{ID: "white_whistle", Name: "White Whistle", Category: types.CategoryRelic, Price: 5000, Rarity: rarity(1)},
			{ID: "reg_arm", Name: "Reg's Arm", Category: types.CategoryRelic, Price: 9000, Rarity: rarity(0)},
			{ID: "pickaxe", Name: "Pickaxe", Category: types.CategoryEquip, Slot: types.SlotWeapon, Price: 500, Effect: map[string]int{"atk": 20}},
			{ID: "blaze_reap", Name: "Blaze Reap", Category: types.CategoryEquip, Slot: types.SlotWeapon, Price: 2500, Effect: map[string]int{"atk": 80}},
			{ID: "lucky_charm", Name: "Lucky Charm", Category: types.CategoryEquip, Slot: types.SlotCharm, Price: 300, Effect: map[string]int{"atk": 5, "str": 1}},
			{ID: "heavy_pack", Name: "Heavy Pack", Category: types.CategoryArtifact, Price: 200, Effect: map[string]int{"descendCost": 1, "climbCost": 2}},
			{ID: "life_stone", Name: "Life Stone", Category: types.CategoryArtifact, Price: 800, Effect: map[string]int{"regen": 3}},
			{ID: "gold_idol", Name: "Gold Idol", Category: types.CategoryArtifact, Price: 900, Effect: map[string]int{"goldMod": 50}},
			{ID: "outpost_kit", Name: "Outpost Kit", Category: types.CategoryItem, Price: 400},
			{ID: "fuel_canister", Name: "Fuel Canister", Category: types.CategoryItem, Price: 150},
			{ID: "automaton_core", Name: "Automaton Core", Category: types.CategoryItem, Price: 1500},
		},
		Recipes: []types.RecipeDef{
			{ID: "cooked_meat", Result: "cooked_meat", Requires: map[string]int{"meat": 1}},
			{ID: "medkit", Result: "medkit", Requires: map[string]int{"scrap": 2, "abyss_dust": 1}},
			{ID: "pickaxe", Result: "pickaxe", Requires: map[string]int{"scrap": 5, "monster_bone": 2}},
			{ID: "blaze_reap", Result: "blaze_reap", Requires: map[string]int{"relic_shard": 2}, Tool: "pickaxe"},
		},
		Monsters: []types.MonsterDef{
			{Name: "Hammerbeak", Power: 20, Drops: []string{"meat", "monster_bone"}, MinDepth: 0, MaxDepth: 2600, Income: 2},
			{Name: "Serpent", Power: 50, Drops: []string{"meat", "abyss_dust"}, MinDepth: 1000, MaxDepth: 7000, Income: 5},
			{Name: "Devourer", Power: 120, Drops: []string{"relic_shard", "monster_bone"}, MinDepth: 5000, Income: 12},
		},
		NPCs: []types.NPCDef{
			{
				ID: "hermit", Name: "Hermit", Dialogue: "A hermit beckons.", MinDepth: 0, MaxDepth: 3000,
				Options: []types.NPCOption{
					{ID: "train", Label: "Train", Cost: types.NPCCost{Gold: 50, Hunger: 20}, Reward: types.NPCReward{Type: "buff_str", Value: 3}},
					{ID: "trade", Label: "Trade", Cost: types.NPCCost{HP: 30}, Reward: types.NPCReward{Type: "item", Item: "medkit"}},
					{ID: "rest", Label: "Rest", Cost: types.NPCCost{Gold: 20}, Reward: types.NPCReward{Type: "restore_all"}},
					{ID: "map", Label: "Map", Cost: types.NPCCost{MaxHPPercent: 10, AllHumanity: true}, Reward: types.NPCReward{Type: "reveal_map", Value: 1000}},
				},
			},
			{ID: "ghost", Name: "Ghost", Dialogue: "Something whispers.", MinDepth: 5000, MaxDepth: 9000},
		},
		Layers: []types.LayerDef{
			{Name: "Edge of the Abyss", Min: 0, Max: 1350, Curse: "Dizziness", CombatChance: 0.10},
			{Name: "Forest of Temptation", Min: 1351, Max: 2600, Curse: "Nausea", CombatChance: 0.15},
			{Name: "Great Fault", Min: 2601, Max: 99999, Curse: "Hallucinations"},
		},
		Machines: []types.MachineDef{
			{ID: "excavator", Name: "Excavator", BasePrice: 500, PriceStep: 250},
			{ID: "refinery", Name: "Refinery", BasePrice: 3000, PriceStep: 2000},
			{ID: "balloon", Name: "Balloon", BasePrice: 1200, PriceStep: 600},
			{ID: "kitchen", Name: "Kitchen", BasePrice: 800, PriceStep: 400},
			{ID: "generator", Name: "Generator", BasePrice: 5000, PriceStep: 5000},
			{ID: "bank", Name: "Bank", BasePrice: 2000, PriceStep: 1500},
		},
		Atmosphere: []string{"The silence is deafening.", "Your lantern flickers."},
	}
}
