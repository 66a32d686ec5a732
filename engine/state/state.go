// Package state holds the immutable content definitions and the helpers
// that create, copy and normalize a GameState.
package state

import (
	"sort"

	"github.com/nathoo/abysscore/types"
)

// Bounds and starting values.
const (
	MaxLogs        = 50
	MaxCombatLog   = 50
	StartingGold   = 100
	StartingHP     = 100
	StartingFood   = 100
	DefaultName    = "Explorer"
	welcomeLine    = "Welcome to the rim. Build your reputation and explore the unknown."
	startingRation = "ration"
)

// Defs holds the immutable game definitions loaded from Lua.
// Slices keep source order so random picks are reproducible.
type Defs struct {
	Game       types.GameDef
	Items      []types.ItemDef
	Recipes    []types.RecipeDef
	Monsters   []types.MonsterDef
	NPCs       []types.NPCDef
	Layers     []types.LayerDef
	Machines   []types.MachineDef
	Atmosphere []string
}

// Item returns the definition for an item id.
func Item(defs *Defs, id string) (types.ItemDef, bool) {
	for _, it := range defs.Items {
		if it.ID == id {
			return it, true
		}
	}
	return types.ItemDef{}, false
}

// ItemName returns the display name for an item id, or the id itself.
func ItemName(defs *Defs, id string) string {
	if it, ok := Item(defs, id); ok && it.Name != "" {
		return it.Name
	}
	return id
}

// Recipe returns the recipe with the given id.
func Recipe(defs *Defs, id string) (types.RecipeDef, bool) {
	for _, r := range defs.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return types.RecipeDef{}, false
}

// Monster returns the monster definition with the given name.
func Monster(defs *Defs, name string) (types.MonsterDef, bool) {
	for _, m := range defs.Monsters {
		if m.Name == name {
			return m, true
		}
	}
	return types.MonsterDef{}, false
}

// NPC returns the NPC definition with the given id.
func NPC(defs *Defs, id string) (types.NPCDef, bool) {
	for _, n := range defs.NPCs {
		if n.ID == id {
			return n, true
		}
	}
	return types.NPCDef{}, false
}

// Machine returns the machine definition with the given id.
func Machine(defs *Defs, id string) (types.MachineDef, bool) {
	for _, m := range defs.Machines {
		if m.ID == id {
			return m, true
		}
	}
	return types.MachineDef{}, false
}

// Layer returns the layer whose [Min, Max] range contains depth.
func Layer(defs *Defs, depth int) (types.LayerDef, bool) {
	for _, l := range defs.Layers {
		if depth >= l.Min && depth <= l.Max {
			return l, true
		}
	}
	return types.LayerDef{}, false
}

// ArtifactTotal sums effect[key] x count over every artifact stack held.
func ArtifactTotal(defs *Defs, s *types.GameState, key string) int {
	total := 0
	for _, st := range s.Inventory {
		it, ok := Item(defs, st.ID)
		if !ok || it.Category != types.CategoryArtifact {
			continue
		}
		total += it.Effect[key] * st.Count
	}
	return total
}

// NewState creates a fresh game state from definitions.
func NewState(defs *Defs) types.GameState {
	machines := map[string]int{}
	for _, m := range defs.Machines {
		machines[m.ID] = 0
	}
	return types.GameState{
		Player: types.Player{
			Name:      DefaultName,
			HP:        StartingHP,
			MaxHP:     StartingHP,
			Hunger:    StartingFood,
			MaxHunger: StartingFood,
			Level:     1,
			CanAscend: true,
		},
		Resources: types.Resources{Gold: StartingGold},
		Inventory: []types.ItemStack{{ID: startingRation, Count: 2}},
		Equipment: map[string]types.ItemInstance{},
		Machines:  machines,
		Stats: types.Stats{
			FoundRelicIDs: []string{},
			Tamed:         []types.TamedMonster{},
		},
		Status: types.Status{
			CombatLog: []string{},
			Logs:      []string{welcomeLine},
			Forecast:  []types.ForecastEntry{},
		},
		Outposts: map[int]types.Outpost{},
	}
}

// AddLog prepends a line to the newest-first log, keeping at most MaxLogs.
func AddLog(s *types.GameState, line string) {
	logs := make([]string, 0, len(s.Status.Logs)+1)
	logs = append(logs, line)
	logs = append(logs, s.Status.Logs...)
	if len(logs) > MaxLogs {
		logs = logs[:MaxLogs]
	}
	s.Status.Logs = logs
}

// AddCombatLog appends a line to the oldest-first combat log, keeping the
// most recent MaxCombatLog lines.
func AddCombatLog(s *types.GameState, line string) {
	s.Status.CombatLog = append(s.Status.CombatLog, line)
	if n := len(s.Status.CombatLog); n > MaxCombatLog {
		s.Status.CombatLog = append([]string(nil), s.Status.CombatLog[n-MaxCombatLog:]...)
	}
}

// Discover records id in the compendium once. Returns true if it was new.
func Discover(s *types.GameState, id string) bool {
	for _, known := range s.Stats.FoundRelicIDs {
		if known == id {
			return false
		}
	}
	s.Stats.FoundRelicIDs = append(s.Stats.FoundRelicIDs, id)
	return true
}

// EndCombat clears every combat-scoped field.
func EndCombat(s *types.GameState) {
	s.Status.InCombat = false
	s.Status.CurrentMonster = nil
	s.Status.CurrentEvent = nil
	s.Status.CombatLog = []string{}
	s.Status.Vengeance = false
}

// Settle re-establishes the structural invariants after a transition:
// vitals clamped, isDead derived from hp, stacks merged and non-empty,
// bounded logs, and no nil collections.
func Settle(s *types.GameState) {
	p := &s.Player
	if p.MaxHP < 1 {
		p.MaxHP = 1
	}
	if p.MaxHunger < 1 {
		p.MaxHunger = StartingFood
	}
	p.HP = clamp(p.HP, 0, p.MaxHP)
	p.Hunger = clamp(p.Hunger, 0, p.MaxHunger)
	if p.Depth < 0 {
		p.Depth = 0
	}
	if p.Depth > p.MaxDepth {
		p.MaxDepth = p.Depth
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if s.Resources.Humanity < 0 {
		s.Resources.Humanity = 0
	}
	s.Status.IsDead = p.HP == 0
	s.Status.CurseIntensity = clamp(s.Status.CurseIntensity, 0, 100)

	s.Inventory = mergeStacks(s.Inventory)
	if s.Equipment == nil {
		s.Equipment = map[string]types.ItemInstance{}
	}
	if s.Machines == nil {
		s.Machines = map[string]int{}
	}
	for id, lvl := range s.Machines {
		if lvl < 0 {
			s.Machines[id] = 0
		}
	}
	if s.Outposts == nil {
		s.Outposts = map[int]types.Outpost{}
	}
	for key, o := range s.Outposts {
		if o.Fuel < 0 {
			o.Fuel = 0
		}
		o.Storage = mergeStacks(o.Storage)
		s.Outposts[key] = o
	}
	if s.Stats.FoundRelicIDs == nil {
		s.Stats.FoundRelicIDs = []string{}
	}
	if s.Stats.Tamed == nil {
		s.Stats.Tamed = []types.TamedMonster{}
	}
	if s.Status.Logs == nil {
		s.Status.Logs = []string{}
	}
	if len(s.Status.Logs) > MaxLogs {
		s.Status.Logs = s.Status.Logs[:MaxLogs]
	}
	if s.Status.CombatLog == nil {
		s.Status.CombatLog = []string{}
	}
	if n := len(s.Status.CombatLog); n > MaxCombatLog {
		s.Status.CombatLog = s.Status.CombatLog[n-MaxCombatLog:]
	}
	if s.Status.Forecast == nil {
		s.Status.Forecast = []types.ForecastEntry{}
	}
}

// mergeStacks folds duplicate ids into their first stack and drops
// stacks with a count below one. Order of first appearance is kept.
func mergeStacks(inv []types.ItemStack) []types.ItemStack {
	out := make([]types.ItemStack, 0, len(inv))
	index := map[string]int{}
	for _, st := range inv {
		if st.Count < 1 || st.ID == "" {
			continue
		}
		if i, ok := index[st.ID]; ok {
			out[i].Count += st.Count
			continue
		}
		index[st.ID] = len(out)
		out = append(out, st)
	}
	return out
}

// OutpostKeys returns outpost keys in ascending order.
func OutpostKeys(s *types.GameState) []int {
	keys := make([]int, 0, len(s.Outposts))
	for k := range s.Outposts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
