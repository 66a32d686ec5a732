// Package dialogue implements priced NPC exchanges.
package dialogue

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Reward kinds.
const (
	RewardBuffStr    = "buff_str"
	RewardItem       = "item"
	RewardRestoreAll = "restore_all"
	RewardRevealMap  = "reveal_map"
)

// DefaultRevealXP is granted by a reveal_map reward with no value.
const DefaultRevealXP = 1000

// Shortfalls lists one line per cost the state cannot pay. An hp cost must
// leave the player alive.
func Shortfalls(s *types.GameState, c types.NPCCost) []string {
	var lines []string
	if c.Gold > 0 && s.Resources.Gold < c.Gold {
		lines = append(lines, "Not enough gold!")
	}
	if c.HP > 0 && s.Player.HP <= c.HP {
		lines = append(lines, "Not enough life to pay the price!")
	}
	if c.Hunger > 0 && s.Player.Hunger < c.Hunger {
		lines = append(lines, "Too hungry to go on!")
	}
	return lines
}

// AvailableOptions returns the options of an NPC whose costs can be paid.
func AvailableOptions(npc types.NPCDef, s *types.GameState) []types.NPCOption {
	var result []types.NPCOption
	for _, opt := range npc.Options {
		if len(Shortfalls(s, opt.Cost)) == 0 {
			result = append(result, opt)
		}
	}
	return result
}

// FindOption returns the option with the given id.
func FindOption(npc types.NPCDef, optionID string) (types.NPCOption, bool) {
	for _, opt := range npc.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return types.NPCOption{}, false
}

// Interact pays every cost of an option and grants its reward. Costs are
// validated together first; any shortfall rejects the whole exchange.
// The dead cannot trade.
func Interact(defs *state.Defs, s *types.GameState, npcID, optionID string) error {
	if s.Status.IsDead {
		return reject.New(reject.Blocked, "The dead cannot bargain.")
	}
	npc, ok := state.NPC(defs, npcID)
	if !ok {
		return reject.Invalid()
	}
	opt, ok := FindOption(npc, optionID)
	if !ok {
		return reject.Invalid()
	}
	if lines := Shortfalls(s, opt.Cost); len(lines) > 0 {
		return reject.Many(reject.InsufficientResources, lines)
	}
	if opt.Reward.Type == RewardItem {
		if _, ok := state.Item(defs, opt.Reward.Item); !ok {
			return reject.Invalid()
		}
	}

	pay(s, opt.Cost)
	state.AddLog(s, grant(defs, s, opt.Reward))
	return nil
}

func pay(s *types.GameState, c types.NPCCost) {
	s.Resources.Gold -= c.Gold
	s.Player.HP -= c.HP
	s.Player.Hunger -= c.Hunger
	if c.MaxHPPercent > 0 {
		s.Player.MaxHP = s.Player.MaxHP * (100 - c.MaxHPPercent) / 100
		if s.Player.HP > s.Player.MaxHP {
			s.Player.HP = s.Player.MaxHP
		}
	}
	if c.AllHumanity {
		s.Resources.Humanity = 0
	}
}

func grant(defs *state.Defs, s *types.GameState, r types.NPCReward) string {
	switch r.Type {
	case RewardBuffStr:
		s.Player.BaseAtk += r.Value
		return "You feel stronger."
	case RewardItem:
		s.Inventory = inventory.Add(s.Inventory, r.Item, 1)
		return fmt.Sprintf("Received %s.", state.ItemName(defs, r.Item))
	case RewardRestoreAll:
		s.Player.HP = s.Player.MaxHP
		s.Player.Hunger = s.Player.MaxHunger
		return "Vigor restored."
	case RewardRevealMap:
		xp := r.Value
		if xp <= 0 {
			xp = DefaultRevealXP
		}
		s.Player.XP += xp
		return fmt.Sprintf("Secrets of the abyss revealed (+%d XP).", xp)
	}
	return "Exchange complete."
}
