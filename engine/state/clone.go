package state

import "github.com/nathoo/abysscore/types"

// Clone returns a deep copy of s. Nothing reachable from the copy aliases
// the original.
func Clone(s types.GameState) types.GameState {
	c := s

	if s.Player.DuoState != nil {
		d := *s.Player.DuoState
		c.Player.DuoState = &d
	}

	c.Inventory = cloneStacks(s.Inventory)

	if s.Equipment != nil {
		c.Equipment = make(map[string]types.ItemInstance, len(s.Equipment))
		for slot, inst := range s.Equipment {
			inst.Effect = cloneIntMap(inst.Effect)
			c.Equipment[slot] = inst
		}
	}

	if s.Machines != nil {
		c.Machines = cloneIntMap(s.Machines)
	}

	c.Stats.FoundRelicIDs = cloneStrings(s.Stats.FoundRelicIDs)
	if s.Stats.Tamed != nil {
		c.Stats.Tamed = append([]types.TamedMonster{}, s.Stats.Tamed...)
	}

	if s.Status.CurrentMonster != nil {
		m := *s.Status.CurrentMonster
		m.Drops = cloneStrings(m.Drops)
		c.Status.CurrentMonster = &m
	}
	c.Status.CombatLog = cloneStrings(s.Status.CombatLog)
	c.Status.Logs = cloneStrings(s.Status.Logs)
	if s.Status.CurrentEvent != nil {
		ev := CloneEvent(*s.Status.CurrentEvent)
		c.Status.CurrentEvent = &ev
	}
	if s.Status.Forecast != nil {
		c.Status.Forecast = make([]types.ForecastEntry, len(s.Status.Forecast))
		for i, f := range s.Status.Forecast {
			c.Status.Forecast[i] = types.ForecastEntry{Depth: f.Depth, Event: CloneEvent(f.Event)}
		}
	}

	if s.Outposts != nil {
		c.Outposts = make(map[int]types.Outpost, len(s.Outposts))
		for k, o := range s.Outposts {
			o.Storage = cloneStacks(o.Storage)
			c.Outposts[k] = o
		}
	}
	return c
}

// CloneEvent returns a deep copy of an event and its payload.
func CloneEvent(ev types.Event) types.Event {
	c := ev
	if ev.Monster != nil {
		m := *ev.Monster
		m.Drops = cloneStrings(m.Drops)
		c.Monster = &m
	}
	if ev.Item != nil {
		it := CloneItem(*ev.Item)
		c.Item = &it
	}
	if ev.NPC != nil {
		n := *ev.NPC
		if n.Options != nil {
			n.Options = append([]types.NPCOption{}, n.Options...)
		}
		c.NPC = &n
	}
	return c
}

// CloneItem returns a copy of an item definition that shares no maps or
// pointers with the original.
func CloneItem(it types.ItemDef) types.ItemDef {
	it.Effect = cloneIntMap(it.Effect)
	if it.Rarity != nil {
		r := *it.Rarity
		it.Rarity = &r
	}
	return it
}

func cloneStacks(in []types.ItemStack) []types.ItemStack {
	if in == nil {
		return nil
	}
	return append([]types.ItemStack{}, in...)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneIntMap(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
