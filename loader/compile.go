// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds one curried constructor call before compilation.
type rawDef struct {
	id    string
	where string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToIntMap converts a Lua table of numbers to a map[string]int.
func tableToIntMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if n, ok := v.(lua.LNumber); ok {
				m[string(ks)] = int(n)
			}
		}
	})
	return m
}

// tableToStrings converts the array part of a Lua table to a []string.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{}

	// Game.
	if coll.game == nil {
		return nil, fmt.Errorf("no Game {} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.items {
		defs.Items = append(defs.Items, compileItem(raw))
	}
	for _, raw := range coll.recipes {
		defs.Recipes = append(defs.Recipes, compileRecipe(raw))
	}
	for _, raw := range coll.monsters {
		defs.Monsters = append(defs.Monsters, compileMonster(raw))
	}
	for _, raw := range coll.npcs {
		npc, err := compileNPC(raw)
		if err != nil {
			return nil, err
		}
		defs.NPCs = append(defs.NPCs, npc)
	}
	for _, raw := range coll.layers {
		defs.Layers = append(defs.Layers, compileLayer(raw))
	}
	for _, raw := range coll.machines {
		defs.Machines = append(defs.Machines, compileMachine(raw))
	}
	defs.Atmosphere = coll.atmosphere

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileItem(raw rawDef) types.ItemDef {
	tbl := raw.table
	it := types.ItemDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Category:    getString(tbl, "category"),
		Price:       getInt(tbl, "price"),
		Effect:      tableToIntMap(getTable(tbl, "effect")),
		Slot:        getString(tbl, "slot"),
		Description: getString(tbl, "description"),
	}
	if it.Name == "" {
		it.Name = raw.id
	}
	if it.Category == "" {
		it.Category = types.CategoryItem
	}
	// rarity = 0 is a real value (unique), so presence matters.
	if n, ok := tbl.RawGetString("rarity").(lua.LNumber); ok {
		r := int(n)
		it.Rarity = &r
	}
	return it
}

func compileRecipe(raw rawDef) types.RecipeDef {
	tbl := raw.table
	r := types.RecipeDef{
		ID:          raw.id,
		Result:      getString(tbl, "result"),
		Requires:    tableToIntMap(getTable(tbl, "requires")),
		Tool:        getString(tbl, "tool"),
		Description: getString(tbl, "description"),
	}
	if r.Result == "" {
		r.Result = raw.id
	}
	return r
}

func compileMonster(raw rawDef) types.MonsterDef {
	tbl := raw.table
	return types.MonsterDef{
		Name:     raw.id,
		Power:    getInt(tbl, "power"),
		Drops:    tableToStrings(getTable(tbl, "drops")),
		MinDepth: getInt(tbl, "min_depth"),
		MaxDepth: getInt(tbl, "max_depth"),
		Income:   getInt(tbl, "income"),
	}
}

func compileNPC(raw rawDef) (types.NPCDef, error) {
	tbl := raw.table
	npc := types.NPCDef{
		ID:       raw.id,
		Name:     getString(tbl, "name"),
		Dialogue: getString(tbl, "dialogue"),
		MinDepth: getInt(tbl, "min_depth"),
		MaxDepth: getInt(tbl, "max_depth"),
	}
	if npc.Name == "" {
		npc.Name = raw.id
	}

	opts := getTable(tbl, "options")
	if opts == nil {
		return npc, nil
	}
	for i := 1; i <= opts.MaxN(); i++ {
		ot, ok := opts.RawGetInt(i).(*lua.LTable)
		if !ok {
			return npc, fmt.Errorf("%sNPC %q option %d is not a table", raw.where, raw.id, i)
		}
		npc.Options = append(npc.Options, compileOption(ot))
	}
	return npc, nil
}

func compileOption(tbl *lua.LTable) types.NPCOption {
	opt := types.NPCOption{
		ID:        getString(tbl, "id"),
		Label:     getString(tbl, "label"),
		CostLabel: getString(tbl, "cost_label"),
	}
	if opt.Label == "" {
		opt.Label = opt.ID
	}
	if cost := getTable(tbl, "cost"); cost != nil {
		opt.Cost = types.NPCCost{
			Gold:         getInt(cost, "gold"),
			HP:           getInt(cost, "hp"),
			Hunger:       getInt(cost, "hunger"),
			MaxHPPercent: getInt(cost, "max_hp_percent"),
			AllHumanity:  getBool(cost, "all_humanity", false),
		}
	}
	if reward := getTable(tbl, "reward"); reward != nil {
		opt.Reward = types.NPCReward{
			Type:  getString(reward, "type"),
			Value: getInt(reward, "value"),
			Item:  getString(reward, "item"),
		}
	}
	return opt
}

func compileLayer(raw rawDef) types.LayerDef {
	tbl := raw.table
	return types.LayerDef{
		Name:         raw.id,
		Min:          getInt(tbl, "min"),
		Max:          getInt(tbl, "max"),
		Curse:        getString(tbl, "curse"),
		CombatChance: getNumber(tbl, "combat_chance"),
	}
}

func compileMachine(raw rawDef) types.MachineDef {
	tbl := raw.table
	m := types.MachineDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		BasePrice:   getInt(tbl, "base_price"),
		PriceStep:   getInt(tbl, "price_step"),
		Description: getString(tbl, "description"),
	}
	if m.Name == "" {
		m.Name = raw.id
	}
	return m
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
