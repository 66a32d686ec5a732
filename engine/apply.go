package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/abysscore/engine/action"
	"github.com/nathoo/abysscore/engine/combat"
	"github.com/nathoo/abysscore/engine/depth"
	"github.com/nathoo/abysscore/engine/dialogue"
	"github.com/nathoo/abysscore/engine/economy"
	"github.com/nathoo/abysscore/engine/events"
	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/outpost"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/social"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// MaxNameLen bounds SetName.
const MaxNameLen = 24

// Apply runs one action against a copy of s and returns the next state.
// The input is never modified. A rejected action yields s unchanged apart
// from the rejection's log lines.
func Apply(defs *state.Defs, s types.GameState, a action.Action, src rng.Source) types.GameState {
	next, _ := apply(defs, s, a, src)
	return next
}

// apply is Apply plus the lines the step emitted, oldest first.
func apply(defs *state.Defs, s types.GameState, a action.Action, src rng.Source) (types.GameState, types.Result) {
	var res types.Result

	next := state.Clone(s)
	state.Settle(&next)
	prior := next.Status.Logs
	next.Status.Logs = nil
	fought := append([]string(nil), next.Status.CombatLog...)

	if err := handle(defs, &next, a, src); err != nil {
		var rej *reject.Error
		if !errors.As(err, &rej) {
			rej = reject.Invalid()
		}
		next = state.Clone(s)
		for _, line := range rej.Lines {
			state.AddLog(&next, line)
		}
		state.Settle(&next)
		res.Rejected = true
		res.Output = append(res.Output, rej.Lines...)
		return next, res
	}

	emitted := next.Status.Logs
	res.Output = append(res.Output, appended(fought, next.Status.CombatLog)...)
	for i := len(emitted) - 1; i >= 0; i-- {
		res.Output = append(res.Output, emitted[i])
	}
	next.Status.Logs = append(emitted, prior...)
	state.Settle(&next)
	return next, res
}

// appended returns the lines of after that were not already in before.
// The combat log only grows at the tail or restarts, so the new lines
// follow the longest suffix of before that prefixes after.
func appended(before, after []string) []string {
	for k := min(len(before), len(after)); k > 0; k-- {
		if equal(before[len(before)-k:], after[:k]) {
			return after[k:]
		}
	}
	return after
}

func equal(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// handle dispatches a single action. Handlers mutate s freely; apply
// discards the copy if they fail.
func handle(defs *state.Defs, s *types.GameState, a action.Action, src rng.Source) error {
	switch a := a.(type) {
	// Movement.
	case action.Descend:
		return descend(defs, s, a, src)
	case action.Ascend:
		return ascend(defs, s, a, src)

	// Vitals.
	case action.TakeDamage:
		return takeDamage(s, a.Amount)
	case action.Heal:
		return heal(s, a.Amount)
	case action.Eat:
		return eat(s, a.Amount)

	// Economy.
	case action.AddGold:
		return addGold(s, a.Amount)
	case action.TickPassive:
		economy.Tick(defs, s, src)
	case action.TickFast:
		depth.DecayCurse(s)
	case action.BuyUpgrade:
		return economy.BuyUpgrade(defs, s, a.Machine)

	// Inventory.
	case action.LootFound:
		return inventory.Loot(defs, s, a.Item)
	case action.BuyItem:
		return inventory.Buy(defs, s, a.Item)
	case action.SellItem:
		return inventory.Sell(defs, s, a.Item)
	case action.UseItem:
		if s.Status.IsDead {
			return reject.New(reject.Blocked, "The dead cannot eat.")
		}
		return inventory.Use(defs, s, a.Item)
	case action.EquipItem:
		return inventory.Equip(defs, s, a.Item)
	case action.UnequipItem:
		return inventory.Unequip(s, a.Slot)
	case action.CraftItem:
		return inventory.CraftRecipe(defs, s, a.Recipe)
	case action.AppraiseItem:
		return inventory.Appraise(defs, s, a.Item, src)

	case action.InteractNPC:
		return dialogue.Interact(defs, s, a.NPC, a.Option)

	// Combat.
	case action.CombatStart:
		return combat.Start(s, a.Monster)
	case action.CombatRound:
		return combat.Round(s, a.Move, src)
	case action.CombatWin:
		return combat.Win(defs, s, src)
	case action.CombatFlee:
		return combat.Escape(s)
	case action.CombatTameSuccess:
		return combat.Tame(s)

	// Outposts.
	case action.DeployOutpost:
		return outpost.Deploy(defs, s)
	case action.RefuelOutpost:
		return outpost.Refuel(defs, s, a.Fuel)
	case action.InstallAutomaton:
		return outpost.Install(defs, s)
	case action.CollectOutpost:
		return outpost.Collect(s)

	case action.Respawn:
		respawn(s)

	// Social.
	case action.SyncDuo:
		return social.Sync(s, a.Snapshot)
	case action.ProcessInbox:
		social.Deliver(defs, s, a.Messages)
	case action.LifelineSend:
		return social.Lifeline(s, a.Kind, a.Amount)
	case action.SetDuoID:
		return social.SetDuo(s, a.ID)
	case action.BuyMarketItem:
		return social.MarketBuy(defs, s, a.Item, a.Price)
	case action.SellMarketItem:
		return social.MarketList(defs, s, a.Item)
	case action.CancelMarketItem:
		return social.MarketCancel(defs, s, a.Item)

	// Misc.
	case action.SetName:
		return setName(s, a.Name)
	case action.AddLog:
		if a.Line == "" {
			return reject.Invalid()
		}
		state.AddLog(s, a.Line)
	case action.TriggerEvent:
		return trigger(s, a.Event)
	case action.ClearEvent:
		if s.Status.CurrentEvent == nil {
			return reject.Invalid()
		}
		s.Status.CurrentEvent = nil
	case action.ToggleTransform:
		return depth.ToggleTransform(s)
	}
	return nil
}

func scouting(defs *state.Defs, s *types.GameState) bool {
	return state.ArtifactTotal(defs, s, "scout") > 0
}

func descend(defs *state.Defs, s *types.GameState, a action.Descend, src rng.Source) error {
	if err := depth.Descend(defs, s, a.Amount, a.Cost); err != nil {
		return err
	}
	if s.Status.IsDead {
		s.Status.Forecast = []types.ForecastEntry{}
		state.AddLog(s, "You starved in the dark.")
		return nil
	}

	var ev types.Event
	if scouting(defs, s) {
		ev, s.Status.Forecast = events.Advance(defs, s.Status.Forecast, s.Player.Depth, src)
	} else {
		ev = events.Generate(defs, s.Player.Depth, src)
		s.Status.Forecast = []types.ForecastEntry{}
	}
	encounter(s, ev)
	return nil
}

// encounter resolves a drawn event. Loot and flavor settle on the spot;
// combat and NPCs wait for the player.
func encounter(s *types.GameState, ev types.Event) {
	switch ev.Type {
	case types.EventLoot:
		if ev.Item == nil {
			return
		}
		s.Inventory = inventory.Add(s.Inventory, ev.Item.ID, 1)
		state.Discover(s, ev.Item.ID)
		state.AddLog(s, ev.Text)
	case types.EventCombat, types.EventInteraction:
		s.Status.CurrentEvent = &ev
		state.AddLog(s, ev.Text)
	case types.EventFlavor:
		state.AddLog(s, ev.Text)
	}
}

func ascend(defs *state.Defs, s *types.GameState, a action.Ascend, src rng.Source) error {
	if err := depth.Ascend(defs, s, a.Amount, a.Cost); err != nil {
		return err
	}
	if scouting(defs, s) && !s.Status.IsDead {
		s.Status.Forecast = events.Fill(defs, nil, s.Player.Depth, src)
	} else {
		s.Status.Forecast = []types.ForecastEntry{}
	}
	if s.Player.Depth == 0 {
		state.AddLog(s, "You reach the surface.")
	}
	return nil
}

func takeDamage(s *types.GameState, amount int) error {
	if amount <= 0 || s.Status.IsDead {
		return reject.Invalid()
	}
	s.Player.HP -= amount
	state.AddLog(s, fmt.Sprintf("You take %d damage.", amount))
	if s.Player.HP <= 0 {
		s.Player.HP = 0
		s.Status.IsDead = true
		state.AddLog(s, "You died.")
	}
	return nil
}

func heal(s *types.GameState, amount int) error {
	if amount <= 0 {
		return reject.Invalid()
	}
	if s.Status.IsDead {
		return reject.New(reject.Blocked, "The dead cannot be healed.")
	}
	s.Player.HP += amount
	state.AddLog(s, fmt.Sprintf("You recover %d HP.", amount))
	return nil
}

func eat(s *types.GameState, amount int) error {
	if amount <= 0 {
		return reject.Invalid()
	}
	if s.Status.IsDead {
		return reject.New(reject.Blocked, "The dead cannot eat.")
	}
	s.Player.Hunger += amount
	state.AddLog(s, fmt.Sprintf("You eat. +%d food.", amount))
	return nil
}

func addGold(s *types.GameState, amount int) error {
	if amount == 0 {
		return reject.Invalid()
	}
	if s.Resources.Gold+amount < 0 {
		return reject.New(reject.InsufficientGold, "Not enough gold!")
	}
	s.Resources.Gold += amount
	return nil
}

// respawn restarts the run at the surface. Half the gold and the whole
// pack are lost; equipment, machines and outposts survive.
func respawn(s *types.GameState) {
	state.EndCombat(s)
	s.Resources.Gold /= 2
	s.Player.HP = s.Player.MaxHP
	s.Player.Hunger = s.Player.MaxHunger
	s.Player.Depth = 0
	s.Inventory = []types.ItemStack{}
	s.Status.IsDead = false
	s.Status.Forecast = []types.ForecastEntry{}
	s.Status.IsTransformed = false
	s.Status.CurseIntensity = 0
	state.AddLog(s, "You wake up at the surface. Your pack was left behind.")
}

func setName(s *types.GameState, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return reject.Invalid()
	}
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	s.Player.Name = name
	state.AddLog(s, fmt.Sprintf("You are now known as %s.", name))
	return nil
}

// trigger places an externally chosen event in front of the player.
func trigger(s *types.GameState, ev types.Event) error {
	if ev.Type == "" || ev.Type == types.EventNone {
		return reject.Invalid()
	}
	if s.Status.InCombat {
		return reject.New(reject.Blocked, "You are already fighting!")
	}
	encounter(s, state.CloneEvent(ev))
	return nil
}
