// Package depth implements vertical movement, the curse meter and the
// transformation toggle.
package depth

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Movement defaults and curse tuning.
const (
	DefaultAmount = 50
	DefaultCost   = 2

	DescendPenalty = 2
	AscendPenalty  = 3

	CursePulse = 100
	CurseDecay = 5

	curseDamageBase  = 5
	curseDamageRange = 5
)

// Direction selects which artifact modifier applies to a move.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) modifier() string {
	if d == Up {
		return "climbCost"
	}
	return "descendCost"
}

func (d Direction) penalty() int {
	if d == Up {
		return AscendPenalty
	}
	return DescendPenalty
}

// Cost returns the hunger cost of a move: base plus the summed artifact
// modifiers, floored at zero.
func Cost(defs *state.Defs, s *types.GameState, dir Direction, base int) int {
	c := base + state.ArtifactTotal(defs, s, dir.modifier())
	if c < 0 {
		return 0
	}
	return c
}

// Spend charges cost hunger. A deficit empties hunger and becomes an hp
// penalty at the direction's multiplier.
func Spend(s *types.GameState, cost int, dir Direction) {
	s.Player.Hunger -= cost
	if s.Player.Hunger >= 0 {
		return
	}
	deficit := -s.Player.Hunger
	s.Player.Hunger = 0
	penalty := deficit * dir.penalty()
	s.Player.HP -= penalty
	if s.Player.HP <= 0 {
		s.Player.HP = 0
		s.Status.IsDead = true
	}
	state.AddLog(s, fmt.Sprintf("You are starving! -%d HP.", penalty))
}

func normalize(amount, cost int) (int, int) {
	if amount <= 0 {
		amount = DefaultAmount
	}
	if cost <= 0 {
		cost = DefaultCost
	}
	return amount, cost
}

func movable(s *types.GameState) error {
	switch {
	case s.Status.IsDead:
		return reject.New(reject.Blocked, "You cannot move. You are dead.")
	case s.Status.InCombat:
		return reject.New(reject.Blocked, "You cannot move while fighting!")
	case s.Status.CurrentEvent != nil:
		return reject.New(reject.Blocked, "Something demands your attention.")
	}
	return nil
}

// Descend moves the player down. Encounter resolution is left to the caller.
func Descend(defs *state.Defs, s *types.GameState, amount, cost int) error {
	if err := movable(s); err != nil {
		return err
	}
	amount, cost = normalize(amount, cost)
	Spend(s, Cost(defs, s, Down, cost), Down)
	s.Player.Depth += amount
	if s.Player.Depth > s.Player.MaxDepth {
		s.Player.MaxDepth = s.Player.Depth
	}
	return nil
}

// Ascend climbs toward the surface, triggering the curse. It is refused
// while transformed.
func Ascend(defs *state.Defs, s *types.GameState, amount, cost int) error {
	if err := movable(s); err != nil {
		return err
	}
	if s.Status.IsTransformed {
		return reject.New(reject.Blocked, "Your transformed body cannot climb.")
	}
	if !s.Player.CanAscend {
		return reject.New(reject.Blocked, "Something prevents you from climbing.")
	}
	if s.Player.Depth <= 0 {
		return reject.Invalid()
	}
	amount, cost = normalize(amount, cost)
	Spend(s, Cost(defs, s, Up, cost), Up)
	s.Player.Depth -= amount
	if s.Player.Depth < 0 {
		s.Player.Depth = 0
	}
	s.Status.CurseIntensity = CursePulse
	if l, ok := state.Layer(defs, s.Player.Depth); ok && l.Curse != "" {
		state.AddLog(s, fmt.Sprintf("The curse grips you: %s.", l.Curse))
	}
	return nil
}

// CurseDamage rolls the hp the curse takes on each climb: 5 to 9.
func CurseDamage(src rng.Source) int {
	return curseDamageBase + rng.Index(src, curseDamageRange)
}

// DecayCurse lowers curse intensity by CurseDecay, never below zero.
func DecayCurse(s *types.GameState) {
	s.Status.CurseIntensity -= CurseDecay
	if s.Status.CurseIntensity < 0 {
		s.Status.CurseIntensity = 0
	}
}

// ToggleTransform flips the transformation. Turning it on needs food in
// the belly.
func ToggleTransform(s *types.GameState) error {
	if s.Status.IsTransformed {
		s.Status.IsTransformed = false
		state.AddLog(s, "You return to human form.")
		return nil
	}
	if s.Status.IsDead {
		return reject.New(reject.Blocked, "The dead cannot transform.")
	}
	if s.Player.Hunger <= 0 {
		return reject.New(reject.InsufficientHunger, "Too hungry to transform.")
	}
	s.Status.IsTransformed = true
	state.AddLog(s, "Your body twists into something else.")
	return nil
}

// LayerAt names the layer at depth, or "Unknown Depths".
func LayerAt(defs *state.Defs, depth int) string {
	if l, ok := state.Layer(defs, depth); ok {
		return l.Name
	}
	return "Unknown Depths"
}

var ranks = []struct {
	below int
	name  string
}{
	{1, "Bell"},
	{1350, "Red Whistle"},
	{2600, "Blue Whistle"},
	{7000, "Moon Whistle"},
	{13000, "Black Whistle"},
}

// WhistleRank is the cosmetic title earned by maxDepth.
func WhistleRank(maxDepth int) string {
	for _, r := range ranks {
		if maxDepth < r.below {
			return r.name
		}
	}
	return "White Whistle"
}
