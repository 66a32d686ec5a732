// Package combat is the turn-based fight between the player and a single
// monster: Idle -> InCombat -> Resolved(Win|Flee|Tame) -> Idle.
package combat

import (
	"fmt"
	"math"

	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Move is the player's choice for one round.
type Move string

const (
	Attack Move = "ATTACK"
	Wait   Move = "WAIT"
	Flee   Move = "FLEE"
)

// Tuning.
const (
	FleeHungerCost  = 5
	DefaultGold     = 10
	DropChance      = 0.5
	LevelUpHP       = 10
	LevelUpAtk      = 2
	xpPerPower      = 5
	levelThreshold  = 1000
	hpPerPower      = 5
	fleeGate        = 0.5
	tameChanceScale = 0.5
)

// Bonus returns the player's flat damage bonus from gear and training.
// One point of strength is worth two points of attack.
func Bonus(s *types.GameState) int {
	weaponAtk := inventory.EquippedEffect(s, types.SlotWeapon, "atk")
	charmAtk := inventory.EquippedEffect(s, types.SlotCharm, "atk")
	charmStr := inventory.EquippedEffect(s, types.SlotCharm, "str")
	return weaponAtk + charmAtk + charmStr*2 + s.Player.BaseAtk
}

// PlayerDamage computes floor(roll*10 + 5 + bonus), doubled while
// transformed and again under vengeance.
func PlayerDamage(s *types.GameState, roll float64) (damage, bonus int) {
	bonus = Bonus(s)
	damage = int(math.Floor(roll*10 + 5 + float64(bonus)))
	if s.Status.IsTransformed {
		damage *= 2
	}
	if s.Status.Vengeance {
		damage *= 2
	}
	return damage, bonus
}

// MonsterDamage computes floor(roll * power * 0.5), doubled under vengeance.
func MonsterDamage(s *types.GameState, power int, roll float64) int {
	mult := 1.0
	if s.Status.Vengeance {
		mult = 2
	}
	return int(math.Floor(roll * float64(power) * 0.5 * mult))
}

// Start instantiates a monster with hp = maxHp = power x 5.
func Start(s *types.GameState, m types.MonsterDef) error {
	if s.Status.IsDead {
		return reject.New(reject.Blocked, "The dead cannot fight.")
	}
	if s.Status.InCombat {
		return reject.New(reject.Blocked, "You are already fighting!")
	}
	maxHP := m.Power * hpPerPower
	s.Status.InCombat = true
	s.Status.CurrentMonster = &types.MonsterInstance{
		Name:  m.Name,
		Power: m.Power,
		HP:    maxHP,
		MaxHP: maxHP,
		Drops: append([]string(nil), m.Drops...),
	}
	s.Status.CombatLog = []string{fmt.Sprintf("A %s blocks the way!", m.Name)}
	return nil
}

// Round plays one exchange. A monster brought to zero hp is frozen there
// until Win finalizes the fight; a FLEE round draws no retaliation.
func Round(s *types.GameState, move Move, src rng.Source) error {
	m := s.Status.CurrentMonster
	if !s.Status.InCombat || m == nil || m.HP <= 0 || s.Status.IsDead {
		return reject.Invalid()
	}

	if move == Attack {
		dmg, bonus := PlayerDamage(s, src.Next())
		m.HP -= dmg
		if bonus > 0 {
			state.AddCombatLog(s, fmt.Sprintf("You deal %d damage (+%d bonus).", dmg, bonus))
		} else {
			state.AddCombatLog(s, fmt.Sprintf("You deal %d damage.", dmg))
		}
	}

	if m.HP <= 0 {
		m.HP = 0
		state.AddCombatLog(s, fmt.Sprintf("%s was defeated!", m.Name))
		return nil
	}

	if move != Flee {
		dmg := MonsterDamage(s, m.Power, src.Next())
		s.Player.HP -= dmg
		if s.Player.HP < 0 {
			s.Player.HP = 0
		}
		state.AddCombatLog(s, fmt.Sprintf("%s strikes! -%d HP.", m.Name, dmg))
		if s.Player.HP == 0 {
			s.Status.IsDead = true
			state.AddCombatLog(s, "You collapse.")
			state.AddLog(s, fmt.Sprintf("You were slain by %s.", m.Name))
		}
	}
	return nil
}

// Win grants gold, xp, at most one level and independent 50% drops, then
// leaves combat.
func Win(defs *state.Defs, s *types.GameState, src rng.Source) error {
	m := s.Status.CurrentMonster
	if !s.Status.InCombat || m == nil || m.HP > 0 {
		return reject.Invalid()
	}

	gold := m.Power
	if gold <= 0 {
		gold = DefaultGold
	}
	xp := m.Power * xpPerPower
	s.Resources.Gold += gold
	s.Player.XP += xp
	s.Stats.MonstersKilled++
	state.AddLog(s, fmt.Sprintf("Victory over %s! +%d gold, +%d XP.", m.Name, gold, xp))

	if threshold := s.Player.Level * levelThreshold; s.Player.XP >= threshold {
		s.Player.XP -= threshold
		s.Player.Level++
		s.Player.MaxHP += LevelUpHP
		s.Player.BaseAtk += LevelUpAtk
		state.AddLog(s, fmt.Sprintf("Level up! You are now level %d.", s.Player.Level))
	}

	for _, id := range m.Drops {
		if src.Next() < DropChance {
			s.Inventory = inventory.Add(s.Inventory, id, 1)
			state.AddLog(s, fmt.Sprintf("Looted %s.", state.ItemName(defs, id)))
		}
	}

	state.EndCombat(s)
	return nil
}

// Escape charges the flee hunger cost and leaves combat unconditionally.
// Whether the attempt succeeded was decided by the caller.
func Escape(s *types.GameState) error {
	if !s.Status.InCombat {
		return reject.Invalid()
	}
	name := "the monster"
	if s.Status.CurrentMonster != nil {
		name = s.Status.CurrentMonster.Name
	}
	s.Player.Hunger -= FleeHungerCost
	if s.Player.Hunger < 0 {
		s.Player.Hunger = 0
	}
	state.EndCombat(s)
	state.AddLog(s, fmt.Sprintf("You escaped from %s.", name))
	return nil
}

// Tame ends combat and adds the monster to the tamed roster.
func Tame(s *types.GameState) error {
	m := s.Status.CurrentMonster
	if !s.Status.InCombat || m == nil {
		return reject.Invalid()
	}
	s.Stats.Tamed = append(s.Stats.Tamed, types.TamedMonster{Name: m.Name, Power: m.Power})
	state.EndCombat(s)
	state.AddLog(s, fmt.Sprintf("%s now follows you.", m.Name))
	return nil
}

// FleeSucceeds is the caller-side coin flip made before dispatching a flee.
func FleeSucceeds(src rng.Source) bool {
	return src.Next() > fleeGate
}

// TameSucceeds is the caller-side gate for taming: wounded monsters are
// easier, up to a 50% chance at 0 hp.
func TameSucceeds(m types.MonsterInstance, src rng.Source) bool {
	if m.MaxHP <= 0 {
		return false
	}
	chance := tameChanceScale * (1 - float64(m.HP)/float64(m.MaxHP))
	return src.Next() < chance
}
