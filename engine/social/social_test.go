package social_test

import (
	"errors"
	"testing"

	"github.com/nathoo/abysscore/engine/enginetest"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/social"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

func bonded(t *testing.T) (*state.Defs, *types.GameState) {
	t.Helper()
	defs := enginetest.Defs()
	s := state.NewState(defs)
	if err := social.SetDuo(&s, "p2"); err != nil {
		t.Fatal(err)
	}
	return defs, &s
}

func TestSetDuo(t *testing.T) {
	_, s := bonded(t)
	if s.Player.DuoID != "p2" {
		t.Fatalf("expected duo p2, got %q", s.Player.DuoID)
	}
	if err := social.SetDuo(s, "p2"); !errors.Is(err, reject.ErrInvalidTarget) {
		t.Errorf("rebonding to the same partner is a no-op, got %v", err)
	}
	s.Player.DuoState = &types.DuoSnapshot{ID: "p2"}
	if err := social.SetDuo(s, ""); err != nil {
		t.Fatal(err)
	}
	if s.Player.DuoID != "" || s.Player.DuoState != nil {
		t.Error("bond should be dissolved")
	}
}

func TestSync(t *testing.T) {
	_, s := bonded(t)
	if err := social.Sync(s, types.DuoSnapshot{ID: "stranger", HP: 1}); err == nil {
		t.Error("snapshots from strangers should be ignored")
	}
	snap := types.DuoSnapshot{ID: "p2", Name: "Riko", Depth: 1200, HP: 40, MaxHP: 100}
	if err := social.Sync(s, snap); err != nil {
		t.Fatal(err)
	}
	if s.Player.DuoState == nil || *s.Player.DuoState != snap {
		t.Errorf("unexpected mirror %+v", s.Player.DuoState)
	}
}

func TestLifeline(t *testing.T) {
	_, s := bonded(t)
	if err := social.Lifeline(s, social.KindHeal, 30); err != nil {
		t.Fatal(err)
	}
	if s.Player.HP != 70 {
		t.Errorf("expected hp 70, got %d", s.Player.HP)
	}
	if err := social.Lifeline(s, social.KindHeal, 70); !errors.Is(err, reject.ErrInsufficientHP) {
		t.Errorf("cannot give away your last hp, got %v", err)
	}
	if err := social.Lifeline(s, social.KindFeed, 100); err != nil {
		t.Fatal(err)
	}
	if s.Player.Hunger != 0 {
		t.Errorf("expected hunger 0, got %d", s.Player.Hunger)
	}
	if err := social.Lifeline(s, social.KindFeed, 1); !errors.Is(err, reject.ErrInsufficientHunger) {
		t.Errorf("expected hunger rejection, got %v", err)
	}
}

func TestLifeline_NoPartner(t *testing.T) {
	s := state.NewState(enginetest.Defs())
	if err := social.Lifeline(&s, social.KindHeal, 10); !errors.Is(err, reject.ErrInvalidTarget) {
		t.Errorf("expected invalid target, got %v", err)
	}
}

func TestDeliver(t *testing.T) {
	defs, s := bonded(t)
	s.Player.HP = 50
	s.Player.Hunger = 90

	n := social.Deliver(defs, s, []types.InboxMessage{
		{Kind: social.KindHeal, From: "Riko", Amount: 80},
		{Kind: social.KindFeed, From: "Riko", Amount: 30},
		{Kind: social.KindMarketSale, Amount: 120, Item: "pickaxe"},
		{Kind: "POKE"},
		{Kind: social.KindDied, From: "Riko"},
	})
	if n != 4 {
		t.Errorf("expected 4 applied, got %d", n)
	}
	if s.Player.HP != 100 || s.Player.Hunger != 100 {
		t.Errorf("expected capped vitals, got %d %d", s.Player.HP, s.Player.Hunger)
	}
	if s.Resources.Gold != state.StartingGold+120 {
		t.Errorf("expected sale proceeds, got %d", s.Resources.Gold)
	}
	if !s.Status.Vengeance {
		t.Error("a partner's death should trigger vengeance")
	}
}

func TestDeliver_HealIgnoredWhenDead(t *testing.T) {
	defs, s := bonded(t)
	s.Player.HP = 0
	s.Status.IsDead = true
	if n := social.Deliver(defs, s, []types.InboxMessage{{Kind: social.KindHeal, Amount: 50}}); n != 0 {
		t.Errorf("expected nothing applied, got %d", n)
	}
	if s.Player.HP != 0 {
		t.Error("the dead cannot be healed")
	}
}

func TestMarket(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Inventory = []types.ItemStack{{ID: "pickaxe", Count: 1}}

	if err := social.MarketList(defs, &s, "pickaxe"); err != nil {
		t.Fatal(err)
	}
	if len(s.Inventory) != 0 {
		t.Error("listed item should leave the inventory")
	}
	if err := social.MarketList(defs, &s, "pickaxe"); !errors.Is(err, reject.ErrMissingItem) {
		t.Errorf("expected missing item, got %v", err)
	}
	if err := social.MarketCancel(defs, &s, "pickaxe"); err != nil {
		t.Fatal(err)
	}
	if len(s.Inventory) != 1 {
		t.Error("cancelled listing should return")
	}

	if err := social.MarketBuy(defs, &s, "medkit", 150); !errors.Is(err, reject.ErrInsufficientGold) {
		t.Errorf("expected insufficient gold, got %v", err)
	}
	if err := social.MarketBuy(defs, &s, "medkit", 60); err != nil {
		t.Fatal(err)
	}
	if s.Resources.Gold != 40 {
		t.Errorf("expected 40 gold, got %d", s.Resources.Gold)
	}
}

func TestMarket_UnknownItem(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)

	if err := social.MarketBuy(defs, &s, "moon_rock", 10); !errors.Is(err, reject.ErrInvalidTarget) {
		t.Errorf("expected invalid target on buy, got %v", err)
	}
	if err := social.MarketCancel(defs, &s, "moon_rock"); !errors.Is(err, reject.ErrInvalidTarget) {
		t.Errorf("expected invalid target on cancel, got %v", err)
	}
	if s.Resources.Gold != state.StartingGold || len(s.Inventory) != 1 {
		t.Errorf("unknown items should leave the state alone, gold %d inventory %v", s.Resources.Gold, s.Inventory)
	}
}
