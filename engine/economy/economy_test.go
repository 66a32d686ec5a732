package economy_test

import (
	"errors"
	"testing"

	"github.com/nathoo/abysscore/engine/economy"
	"github.com/nathoo/abysscore/engine/enginetest"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

func TestExcavatorGold(t *testing.T) {
	defs := enginetest.Defs()
	tests := []struct {
		name      string
		excavator int
		generator int
		idols     int
		want      int
	}{
		{"idle", 0, 3, 0, 0},
		{"plain", 2, 0, 0, 10},
		{"generator", 2, 1, 0, 12},
		{"idol", 2, 0, 1, 15},
		{"both", 3, 2, 2, 36}, // 15 * (1 + 0.4 + 1.0)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(defs)
			s.Machines[economy.Excavator] = tt.excavator
			s.Machines[economy.Generator] = tt.generator
			if tt.idols > 0 {
				s.Inventory = append(s.Inventory, types.ItemStack{ID: "gold_idol", Count: tt.idols})
			}
			if got := economy.ExcavatorGold(defs, &s); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestInterest_Capped(t *testing.T) {
	s := state.NewState(enginetest.Defs())
	s.Machines[economy.Bank] = 2
	s.Resources.Gold = 1000
	if got := economy.Interest(&s); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
	s.Resources.Gold = 10_000_000
	if got := economy.Interest(&s); got != economy.BankInterestCap {
		t.Errorf("expected cap %d, got %d", economy.BankInterestCap, got)
	}
}

func TestTick_SumsEverything(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Machines[economy.Excavator] = 1
	s.Machines[economy.Bank] = 1
	s.Resources.Gold = 1000
	s.Player.HP = 50
	s.Inventory = append(s.Inventory, types.ItemStack{ID: "life_stone", Count: 2})
	s.Stats.Tamed = []types.TamedMonster{{Name: "Hammerbeak", Power: 20}, {Name: "Serpent", Power: 50}, {Name: "Unknown"}}

	y := economy.Tick(defs, &s, rng.Fixed(0.9))

	// 5 excavated + 10 interest + 7 tamed
	if y.Gold() != 22 || s.Resources.Gold != 1022 {
		t.Errorf("expected +22 gold, got yield %+v gold %d", y, s.Resources.Gold)
	}
	if s.Player.HP != 56 {
		t.Errorf("expected regen to 56, got %d", s.Player.HP)
	}
}

func TestTick_NoRegenWhenDead(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Player.HP = 0
	s.Status.IsDead = true
	s.Inventory = []types.ItemStack{{ID: "life_stone", Count: 1}}

	economy.Tick(defs, &s, rng.Fixed(0.9))
	if s.Player.HP != 0 {
		t.Error("the dead do not regenerate")
	}
}

func TestTick_TransformDrain(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Status.IsTransformed = true
	s.Player.Hunger = 12

	economy.Tick(defs, &s, rng.Fixed(0.9))
	if s.Player.Hunger != 7 || !s.Status.IsTransformed {
		t.Fatalf("expected hunger 7 and still transformed, got %d %v", s.Player.Hunger, s.Status.IsTransformed)
	}
	economy.Tick(defs, &s, rng.Fixed(0.9))
	y := economy.Tick(defs, &s, rng.Fixed(0.9))
	if !y.Reverted || s.Status.IsTransformed || s.Player.Hunger != 0 {
		t.Errorf("expected forced revert, got %+v hunger %d", y, s.Player.Hunger)
	}
}

func TestTick_Automaton(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Outposts[700] = types.Outpost{Depth: 700, Fuel: 3, Automaton: true}

	y := economy.Tick(defs, &s, rng.Fixed(0.1, 0.0))
	if y.Mined != 1 {
		t.Fatalf("expected one item mined, got %d", y.Mined)
	}
	o := s.Outposts[700]
	if o.Fuel != 2 || o.Storage[0].ID != "scrap" {
		t.Errorf("unexpected outpost %+v", o)
	}
}

func TestBuyUpgrade(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Resources.Gold = 1300

	if err := economy.BuyUpgrade(defs, &s, economy.Excavator); err != nil {
		t.Fatal(err)
	}
	if s.Machines[economy.Excavator] != 1 || s.Resources.Gold != 800 {
		t.Errorf("unexpected level %d gold %d", s.Machines[economy.Excavator], s.Resources.Gold)
	}
	// level 1 costs 750
	if err := economy.BuyUpgrade(defs, &s, economy.Excavator); err != nil {
		t.Fatal(err)
	}
	if err := economy.BuyUpgrade(defs, &s, economy.Excavator); !errors.Is(err, reject.ErrInsufficientGold) {
		t.Errorf("expected insufficient gold, got %v", err)
	}
	if s.Machines[economy.Excavator] != 2 || s.Resources.Gold != 50 {
		t.Errorf("unexpected level %d gold %d", s.Machines[economy.Excavator], s.Resources.Gold)
	}
}

func TestUpgradePrice(t *testing.T) {
	m := types.MachineDef{BasePrice: 500, PriceStep: 250}
	for lvl, want := range []int{500, 750, 1000} {
		if got := economy.UpgradePrice(m, lvl); got != want {
			t.Errorf("level %d: expected %d, got %d", lvl, want, got)
		}
	}
}
