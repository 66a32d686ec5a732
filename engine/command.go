package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/abysscore/engine/action"
	"github.com/nathoo/abysscore/engine/combat"
	"github.com/nathoo/abysscore/engine/depth"
	"github.com/nathoo/abysscore/engine/dialogue"
	"github.com/nathoo/abysscore/engine/economy"
	"github.com/nathoo/abysscore/engine/outpost"
	"github.com/nathoo/abysscore/engine/parser"
	"github.com/nathoo/abysscore/engine/resolve"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

var slots = []string{types.SlotWeapon, types.SlotBody, types.SlotCharm}

// Command parses one line of player input, translates it into actions
// and steps them. Coin flips the state machine leaves to its caller
// (flee, tame, curse damage) are drawn here from the engine's RNG.
func (e *Engine) Command(input string) types.Result {
	intent := parser.Parse(input)
	if intent.Verb == "" {
		return say("What do you want to do?")
	}

	// Read-only verbs work in any state.
	switch intent.Verb {
	case "status":
		return say(e.Status()...)
	case "inventory":
		return say(e.Inventory()...)
	case "look":
		return say(e.Look()...)
	case "forecast":
		return say(e.Forecast()...)
	case "help":
		return say(helpText...)
	case "name":
		return e.Step(action.SetName{Name: intent.Object})
	}

	if e.State.Status.IsDead {
		if intent.Verb == "respawn" {
			return e.Step(action.Respawn{})
		}
		return say("You are dead. Type 'respawn' to return to the surface.")
	}
	if e.State.Status.InCombat {
		return e.combatCommand(intent)
	}

	switch intent.Verb {
	case "descend":
		return e.Step(action.Descend{Amount: amount(intent.Object)})
	case "ascend":
		return e.ascend(amount(intent.Object))
	case "fight":
		return e.fight()
	case "attack", "wait", "flee", "tame":
		if ev := e.State.Status.CurrentEvent; ev != nil && ev.Type == types.EventCombat {
			return say("Type 'fight' to face it.")
		}
		return say("There is nothing to fight.")
	case "talk":
		return e.talk(intent)
	case "leave":
		return e.leave()
	case "buy":
		return e.withItem(intent.Object, resolve.Item, func(id string) action.Action { return action.BuyItem{Item: id} })
	case "sell":
		return e.withItem(intent.Object, e.held, func(id string) action.Action { return action.SellItem{Item: id} })
	case "use":
		return e.withItem(intent.Object, e.held, func(id string) action.Action { return action.UseItem{Item: id} })
	case "equip":
		return e.withItem(intent.Object, e.held, func(id string) action.Action { return action.EquipItem{Item: id} })
	case "unequip":
		return e.unequip(intent.Object)
	case "craft":
		return e.withItem(intent.Object, resolve.Recipe, func(id string) action.Action { return action.CraftItem{Recipe: id} })
	case "appraise":
		return e.appraise(intent.Object)
	case "upgrade":
		return e.withItem(intent.Object, resolve.Machine, func(id string) action.Action { return action.BuyUpgrade{Machine: id} })
	case "deploy":
		return e.Step(action.DeployOutpost{})
	case "refuel":
		return e.refuel(intent)
	case "install":
		return e.Step(action.InstallAutomaton{})
	case "collect":
		return e.Step(action.CollectOutpost{})
	case "transform":
		return e.Step(action.ToggleTransform{})
	case "tick":
		return e.Step(action.TickPassive{})
	case "respawn":
		return say("You are still breathing.")
	}
	return say("I don't understand that.")
}

// combatCommand restricts input to the moves available mid-fight.
func (e *Engine) combatCommand(intent types.Intent) types.Result {
	m := e.State.Status.CurrentMonster
	switch intent.Verb {
	case "attack":
		res := e.Step(action.CombatRound{Move: combat.Attack})
		if cur := e.State.Status.CurrentMonster; e.State.Status.InCombat && cur != nil && cur.HP == 0 {
			res = merge(res, e.Step(action.CombatWin{}))
		}
		return res
	case "wait":
		return e.Step(action.CombatRound{Move: combat.Wait})
	case "flee":
		if combat.FleeSucceeds(e.RNG) {
			return e.Step(action.CombatFlee{})
		}
		return merge(say("You failed to escape!"), e.Step(action.CombatRound{Move: combat.Wait}))
	case "tame":
		if m != nil && combat.TameSucceeds(*m, e.RNG) {
			return e.Step(action.CombatTameSuccess{})
		}
		return merge(say("It refuses your hand."), e.Step(action.CombatRound{Move: combat.Wait}))
	case "use":
		return e.withItem(intent.Object, e.held, func(id string) action.Action { return action.UseItem{Item: id} })
	}
	return say("You're in the middle of a fight! (attack, wait, use <item>, flee, tame)")
}

// ascend climbs and, if the climb happened, lets the curse bite.
func (e *Engine) ascend(n int) types.Result {
	before := e.State.Player.Depth
	res := e.Step(action.Ascend{Amount: n})
	if res.Rejected || e.State.Player.Depth >= before {
		return res
	}
	dmg := depth.CurseDamage(e.RNG)
	return merge(res, e.Step(action.TakeDamage{Amount: dmg}))
}

func (e *Engine) fight() types.Result {
	ev := e.State.Status.CurrentEvent
	if ev == nil || ev.Type != types.EventCombat || ev.Monster == nil {
		return say("There is nothing to fight.")
	}
	return e.Step(action.CombatStart{Monster: *ev.Monster})
}

func (e *Engine) talk(intent types.Intent) types.Result {
	ev := e.State.Status.CurrentEvent
	if ev == nil || ev.Type != types.EventInteraction || ev.NPC == nil {
		return say("There is no one to talk to.")
	}
	npc := *ev.NPC

	// "talk train" and "talk to hermit about train" both name the option.
	choice := intent.Target
	if choice == "" && !strings.EqualFold(intent.Object, npc.Name) && intent.Object != npc.ID {
		choice = intent.Object
	}
	if choice == "" {
		return say(e.options(npc)...)
	}
	id, err := resolve.Option(npc, choice)
	if err != nil {
		return say(err.Error())
	}
	return e.Step(action.InteractNPC{NPC: npc.ID, Option: id})
}

func (e *Engine) leave() types.Result {
	ev := e.State.Status.CurrentEvent
	if ev == nil {
		return say("There is nothing to leave.")
	}
	if ev.Type == types.EventCombat {
		return say("It won't let you pass. Fight it.")
	}
	return merge(e.Step(action.ClearEvent{}), say("You move on."))
}

func (e *Engine) unequip(name string) types.Result {
	name = strings.TrimSpace(name)
	for _, slot := range slots {
		if name == slot {
			return e.Step(action.UnequipItem{Slot: slot})
		}
	}
	for _, slot := range slots {
		inst, ok := e.State.Equipment[slot]
		if !ok {
			continue
		}
		if strings.EqualFold(inst.Name, name) || strings.ReplaceAll(name, " ", "_") == inst.ID {
			return e.Step(action.UnequipItem{Slot: slot})
		}
	}
	return say(fmt.Sprintf("You aren't wearing any %q.", name))
}

func (e *Engine) appraise(name string) types.Result {
	if name != "" {
		return e.withItem(name, e.held, func(id string) action.Action { return action.AppraiseItem{Item: id} })
	}
	for _, st := range e.State.Inventory {
		if it, ok := state.Item(e.Defs, st.ID); ok && it.Category == types.CategoryRelicRaw {
			return e.Step(action.AppraiseItem{Item: it.ID})
		}
	}
	return say("You have nothing to appraise.")
}

func (e *Engine) refuel(intent types.Intent) types.Result {
	kind := intent.Object
	if kind == "" {
		kind = intent.Target
	}
	switch strings.ReplaceAll(kind, " ", "_") {
	case outpost.FuelScrap:
		return e.Step(action.RefuelOutpost{Fuel: outpost.FuelScrap})
	case outpost.FuelCanister, outpost.CanisterItem:
		return e.Step(action.RefuelOutpost{Fuel: outpost.FuelCanister})
	}
	return say("Refuel with scrap or canister?")
}

func (e *Engine) held(defs *state.Defs, name string) (string, error) {
	return resolve.Held(defs, &e.State, name)
}

// withItem resolves name and steps the action built from the id.
func (e *Engine) withItem(name string, lookup func(*state.Defs, string) (string, error), build func(string) action.Action) types.Result {
	if name == "" {
		return say("Which one?")
	}
	id, err := lookup(e.Defs, name)
	if err != nil {
		return say(err.Error())
	}
	return e.Step(build(id))
}

// amount reads an optional distance. Anything unparsable takes the default.
func amount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Status describes the player in a few lines.
func (e *Engine) Status() []string {
	p := e.State.Player
	st := e.State.Status
	lines := []string{
		fmt.Sprintf("%s, %s, level %d (%d XP)", p.Name, depth.WhistleRank(p.MaxDepth), p.Level, p.XP),
		fmt.Sprintf("Depth %dm in %s (deepest %dm)", p.Depth, depth.LayerAt(e.Defs, p.Depth), p.MaxDepth),
		fmt.Sprintf("HP %d/%d  Food %d/%d  Gold %d", p.HP, p.MaxHP, p.Hunger, p.MaxHunger, e.State.Resources.Gold),
	}
	if st.CurseIntensity > 0 {
		lines = append(lines, fmt.Sprintf("Curse %d%%", st.CurseIntensity))
	}
	if st.IsTransformed {
		lines = append(lines, "You are transformed.")
	}
	if st.Vengeance {
		lines = append(lines, "Vengeance burns in you.")
	}
	if p.DuoState != nil {
		d := p.DuoState
		lines = append(lines, fmt.Sprintf("Partner %s at %dm, HP %d/%d", d.Name, d.Depth, d.HP, d.MaxHP))
	}
	for _, m := range e.Defs.Machines {
		if lvl := e.State.Machines[m.ID]; lvl > 0 {
			lines = append(lines, fmt.Sprintf("%s level %d (next %d gold)", m.Name, lvl, economy.UpgradePrice(m, lvl)))
		}
	}
	return lines
}

// Inventory lists the pack and equipment.
func (e *Engine) Inventory() []string {
	var lines []string
	if len(e.State.Inventory) == 0 {
		lines = append(lines, "Your pack is empty.")
	} else {
		names := make([]string, 0, len(e.State.Inventory))
		for _, st := range e.State.Inventory {
			names = append(names, fmt.Sprintf("%s x%d", state.ItemName(e.Defs, st.ID), st.Count))
		}
		lines = append(lines, "You are carrying: "+strings.Join(names, ", ")+".")
	}
	for _, slot := range slots {
		if inst, ok := e.State.Equipment[slot]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", slot, inst.Name))
		}
	}
	return lines
}

// Look describes what is in front of the player.
func (e *Engine) Look() []string {
	st := e.State.Status
	if m := st.CurrentMonster; st.InCombat && m != nil {
		return []string{fmt.Sprintf("%s (power %d) HP %d/%d", m.Name, m.Power, m.HP, m.MaxHP)}
	}
	var lines []string
	if ev := st.CurrentEvent; ev != nil {
		lines = append(lines, ev.Text)
		if ev.NPC != nil {
			lines = append(lines, e.options(*ev.NPC)...)
		}
	} else {
		lines = append(lines, fmt.Sprintf("The way down is clear. You are in %s.", depth.LayerAt(e.Defs, e.State.Player.Depth)))
	}
	if o, ok := outpost.At(&e.State); ok {
		line := fmt.Sprintf("Your outpost: %d fuel, %d stored", o.Fuel, len(o.Storage))
		if o.Automaton {
			line += ", automaton running"
		}
		lines = append(lines, line+".")
	}
	return lines
}

// Forecast lists the encounters scouted ahead.
func (e *Engine) Forecast() []string {
	if len(e.State.Status.Forecast) == 0 {
		return []string{"You cannot see what lies ahead."}
	}
	lines := make([]string, 0, len(e.State.Status.Forecast))
	for _, f := range e.State.Status.Forecast {
		lines = append(lines, fmt.Sprintf("%dm: %s", f.Depth, f.Event.Text))
	}
	return lines
}

func (e *Engine) options(npc types.NPCDef) []string {
	opts := dialogue.AvailableOptions(npc, &e.State)
	lines := []string{fmt.Sprintf("%s offers:", npc.Name)}
	for _, o := range opts {
		line := fmt.Sprintf("  %s: %s", o.ID, o.Label)
		if o.CostLabel != "" {
			line += " (" + o.CostLabel + ")"
		}
		lines = append(lines, line)
	}
	if len(opts) == 0 {
		lines = append(lines, "  nothing you can afford.")
	}
	return lines
}

var helpText = []string{
	"descend [m], ascend [m], fight, attack, wait, flee, tame",
	"talk <option>, leave, buy/sell/use/equip/unequip <item>",
	"craft <item>, appraise [relic], upgrade <machine>",
	"deploy, refuel <scrap|canister>, install, collect",
	"transform, tick, respawn, name <name>",
	"status, inventory, look, forecast",
}
