// Package events generates the encounter waiting at a depth and keeps the
// scouting forecast queue. Generation is pure given its random source.
package events

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Band widths and gates.
const (
	DefaultCombatChance = 0.10
	LootChance          = 0.30
	NPCChance           = 0.05
	RelicChance         = 0.10
	RelicMinDepth       = 2000
	SafeLootMaxPrice    = 50

	ForecastLen  = 5
	ForecastStep = 50
)

type outcome int

const (
	outcomeCombat outcome = iota
	outcomeLoot
	outcomeNPC
	outcomeRelic
)

// bands builds the cumulative table for a depth. The combat band width comes
// from the layer; the relic band exists only below RelicMinDepth.
func bands(defs *state.Defs, depth int) []rng.Band[outcome] {
	combat := DefaultCombatChance
	if l, ok := state.Layer(defs, depth); ok && l.CombatChance > 0 {
		combat = l.CombatChance
	}
	upto := combat
	table := []rng.Band[outcome]{{Upto: upto, Value: outcomeCombat}}
	upto += LootChance
	table = append(table, rng.Band[outcome]{Upto: upto, Value: outcomeLoot})
	upto += NPCChance
	table = append(table, rng.Band[outcome]{Upto: upto, Value: outcomeNPC})
	if depth > RelicMinDepth {
		upto += RelicChance
		table = append(table, rng.Band[outcome]{Upto: upto, Value: outcomeRelic})
	}
	return table
}

// Generate draws the encounter at depth. The first draw picks the band, a
// second draw picks within the band's pool. A band whose pool is empty at
// this depth yields flavor instead.
func Generate(defs *state.Defs, depth int, src rng.Source) types.Event {
	kind, ok := rng.Pick(src.Next(), bands(defs, depth))
	if !ok {
		return Flavor(defs, src)
	}
	switch kind {
	case outcomeCombat:
		pool := Monsters(defs, depth)
		if len(pool) == 0 {
			break
		}
		m := pool[rng.Index(src, len(pool))]
		m.Drops = append([]string(nil), m.Drops...)
		return types.Event{
			Type:    types.EventCombat,
			Text:    fmt.Sprintf("A %s emerges from the shadows!", m.Name),
			Monster: &m,
		}
	case outcomeLoot:
		pool := SafeLoot(defs)
		if len(pool) == 0 {
			break
		}
		it := state.CloneItem(pool[rng.Index(src, len(pool))])
		return types.Event{
			Type: types.EventLoot,
			Text: fmt.Sprintf("You found %s hidden away.", it.Name),
			Item: &it,
		}
	case outcomeNPC:
		pool := NPCs(defs, depth)
		if len(pool) == 0 {
			break
		}
		n := pool[rng.Index(src, len(pool))]
		n.Options = append([]types.NPCOption(nil), n.Options...)
		return types.Event{
			Type: types.EventInteraction,
			Text: n.Dialogue,
			NPC:  &n,
		}
	case outcomeRelic:
		pool := RawRelics(defs)
		if len(pool) == 0 {
			break
		}
		it := state.CloneItem(pool[rng.Index(src, len(pool))])
		return types.Event{
			Type: types.EventLoot,
			Text: "A strange glow gives off heat...",
			Item: &it,
		}
	}
	return Flavor(defs, src)
}

// Flavor returns an atmosphere-only event.
func Flavor(defs *state.Defs, src rng.Source) types.Event {
	if len(defs.Atmosphere) == 0 {
		return types.Event{Type: types.EventFlavor, Text: "Nothing stirs."}
	}
	return types.Event{
		Type: types.EventFlavor,
		Text: defs.Atmosphere[rng.Index(src, len(defs.Atmosphere))],
	}
}

// Monsters returns the monsters whose depth range contains depth.
// A MaxDepth of zero leaves the range open-ended.
func Monsters(defs *state.Defs, depth int) []types.MonsterDef {
	var pool []types.MonsterDef
	for _, m := range defs.Monsters {
		if depth < m.MinDepth || (m.MaxDepth > 0 && depth > m.MaxDepth) {
			continue
		}
		pool = append(pool, m)
	}
	return pool
}

// SafeLoot returns the items that may be found lying around: loot and
// materials, plus cheap consumables.
func SafeLoot(defs *state.Defs) []types.ItemDef {
	var pool []types.ItemDef
	for _, it := range defs.Items {
		switch it.Category {
		case types.CategoryLoot, types.CategoryMaterial:
			pool = append(pool, it)
		case types.CategoryConsumable:
			if it.Price <= SafeLootMaxPrice {
				pool = append(pool, it)
			}
		}
	}
	return pool
}

// NPCs returns the NPCs met at depth.
func NPCs(defs *state.Defs, depth int) []types.NPCDef {
	var pool []types.NPCDef
	for _, n := range defs.NPCs {
		if depth >= n.MinDepth && depth <= n.MaxDepth {
			pool = append(pool, n)
		}
	}
	return pool
}

// RawRelics returns the unidentified relic items.
func RawRelics(defs *state.Defs) []types.ItemDef {
	var pool []types.ItemDef
	for _, it := range defs.Items {
		if it.Category == types.CategoryRelicRaw {
			pool = append(pool, it)
		}
	}
	return pool
}

// Fill extends queue with generated entries until it holds ForecastLen,
// each ForecastStep below the previous one. Entries at or above depth are
// stale and dropped, and generation never restarts above depth. The input
// is not modified.
func Fill(defs *state.Defs, queue []types.ForecastEntry, depth int, src rng.Source) []types.ForecastEntry {
	out := make([]types.ForecastEntry, 0, ForecastLen)
	for _, e := range queue {
		if e.Depth > depth {
			out = append(out, e)
		}
	}
	next := depth
	if n := len(out); n > 0 {
		next = max(out[n-1].Depth, depth)
	}
	for len(out) < ForecastLen {
		next += ForecastStep
		out = append(out, types.ForecastEntry{Depth: next, Event: Generate(defs, next, src)})
	}
	return out
}

// Advance takes the forecast entry for depth as the encounter there and
// refills the queue. Entries the player moved past are discarded; with no
// entry for depth the encounter is generated fresh.
func Advance(defs *state.Defs, queue []types.ForecastEntry, depth int, src rng.Source) (types.Event, []types.ForecastEntry) {
	for len(queue) > 0 && queue[0].Depth < depth {
		queue = queue[1:]
	}
	if len(queue) == 0 || queue[0].Depth != depth {
		ev := Generate(defs, depth, src)
		return ev, Fill(defs, queue, depth, src)
	}
	ev := state.CloneEvent(queue[0].Event)
	return ev, Fill(defs, queue[1:], depth, src)
}
