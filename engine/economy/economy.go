// Package economy runs the passive tick and prices machine upgrades.
package economy

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/events"
	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/outpost"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Machine ids with tick effects.
const (
	Excavator = "excavator"
	Generator = "generator"
	Bank      = "bank"
)

// Tuning.
const (
	ExcavatorRate         = 5
	GeneratorBoostPercent = 20
	BankRatePercent       = 1
	BankInterestCap       = 1000
	TransformDrain        = 5
)

// Yield is what one passive tick produced, for reporting.
type Yield struct {
	Excavated int
	Interest  int
	Regen     int
	Tamed     int
	Mined     int
	Reverted  bool
}

// Gold returns the total gold the tick added.
func (y Yield) Gold() int {
	return y.Excavated + y.Interest + y.Tamed
}

// ExcavatorGold is level x rate x (1 + 0.2 x generator + goldMod%), floored.
// The multiplier is kept in percent so the floor is exact.
func ExcavatorGold(defs *state.Defs, s *types.GameState) int {
	lvl := s.Machines[Excavator]
	if lvl <= 0 {
		return 0
	}
	pct := 100 + GeneratorBoostPercent*s.Machines[Generator] + state.ArtifactTotal(defs, s, "goldMod")
	if pct < 0 {
		return 0
	}
	return lvl * ExcavatorRate * pct / 100
}

// Interest is bank level percent of gold, capped per tick.
func Interest(s *types.GameState) int {
	lvl := s.Machines[Bank]
	if lvl <= 0 || s.Resources.Gold <= 0 {
		return 0
	}
	i := s.Resources.Gold * lvl * BankRatePercent / 100
	if i > BankInterestCap {
		return BankInterestCap
	}
	return i
}

// TamedIncome sums each tamed monster's income by name.
func TamedIncome(defs *state.Defs, s *types.GameState) int {
	total := 0
	for _, t := range s.Stats.Tamed {
		if m, ok := state.Monster(defs, t.Name); ok {
			total += m.Income
		}
	}
	return total
}

// Tick applies one passive tick to s in a single pass. Interest is computed
// on the gold held when the tick starts.
func Tick(defs *state.Defs, s *types.GameState, src rng.Source) Yield {
	var y Yield
	y.Excavated = ExcavatorGold(defs, s)
	y.Interest = Interest(s)
	y.Tamed = TamedIncome(defs, s)
	s.Resources.Gold += y.Gold()

	if !s.Status.IsDead {
		y.Regen = state.ArtifactTotal(defs, s, "regen")
		s.Player.HP += y.Regen
		if s.Player.HP > s.Player.MaxHP {
			s.Player.HP = s.Player.MaxHP
		}
	}

	y.Mined = outpost.Advance(s, events.SafeLoot(defs), src)

	if s.Status.IsTransformed {
		s.Player.Hunger -= TransformDrain
		if s.Player.Hunger <= 0 {
			s.Player.Hunger = 0
			s.Status.IsTransformed = false
			y.Reverted = true
			state.AddLog(s, "Starving, your body snaps back to human form.")
		}
	}

	if y.Mined > 0 {
		state.AddLog(s, fmt.Sprintf("Your automatons stored %d items.", y.Mined))
	}
	return y
}

// UpgradePrice is base + level x step.
func UpgradePrice(m types.MachineDef, level int) int {
	return m.BasePrice + level*m.PriceStep
}

// BuyUpgrade raises a machine one level.
func BuyUpgrade(defs *state.Defs, s *types.GameState, id string) error {
	m, ok := state.Machine(defs, id)
	if !ok {
		return reject.Invalid()
	}
	price := UpgradePrice(m, s.Machines[id])
	if err := inventory.CanAfford(s, price); err != nil {
		return err
	}
	s.Resources.Gold -= price
	s.Machines[id]++
	state.AddLog(s, fmt.Sprintf("%s upgraded to level %d.", m.Name, s.Machines[id]))
	return nil
}
