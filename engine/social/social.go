// Package social applies already-validated messages from other players:
// duo mirroring, lifeline transfers, inbox deliveries and market settlement.
package social

import (
	"fmt"

	"github.com/nathoo/abysscore/engine/inventory"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Inbox message kinds.
const (
	KindHeal       = "HEAL"
	KindFeed       = "FEED"
	KindDied       = "DIED"
	KindMarketSale = "MARKET_SALE"
)

// SetDuo bonds with a partner. An empty id dissolves the bond.
func SetDuo(s *types.GameState, id string) error {
	if id == s.Player.DuoID {
		return reject.Invalid()
	}
	s.Player.DuoID = id
	s.Player.DuoState = nil
	if id == "" {
		state.AddLog(s, "Your duo bond is broken.")
		return nil
	}
	state.AddLog(s, "You are bonded to a partner.")
	return nil
}

// Sync mirrors the partner's latest snapshot. Snapshots from anyone other
// than the bonded partner are ignored.
func Sync(s *types.GameState, snap types.DuoSnapshot) error {
	if s.Player.DuoID == "" || snap.ID != s.Player.DuoID {
		return reject.Invalid()
	}
	c := snap
	s.Player.DuoState = &c
	return nil
}

// Lifeline gives some of your own hp or hunger to the partner. The host
// delivers the matching inbox message on the other side.
func Lifeline(s *types.GameState, kind string, amount int) error {
	if s.Player.DuoID == "" || amount <= 0 {
		return reject.Invalid()
	}
	switch kind {
	case KindHeal:
		if s.Player.HP <= amount {
			return reject.New(reject.InsufficientHP, "Not enough life to share!")
		}
		s.Player.HP -= amount
		state.AddLog(s, fmt.Sprintf("You sent %d HP to your partner.", amount))
	case KindFeed:
		if s.Player.Hunger < amount {
			return reject.New(reject.InsufficientHunger, "Not enough food to share!")
		}
		s.Player.Hunger -= amount
		state.AddLog(s, fmt.Sprintf("You sent %d food to your partner.", amount))
	default:
		return reject.Invalid()
	}
	return nil
}

// Deliver applies inbox messages in order. Unknown kinds are skipped.
// Returns how many messages had an effect.
func Deliver(defs *state.Defs, s *types.GameState, msgs []types.InboxMessage) int {
	applied := 0
	for _, m := range msgs {
		if deliver(defs, s, m) {
			applied++
		}
	}
	return applied
}

func deliver(defs *state.Defs, s *types.GameState, m types.InboxMessage) bool {
	from := m.From
	if from == "" {
		from = "Someone"
	}
	switch m.Kind {
	case KindHeal:
		if s.Status.IsDead || m.Amount <= 0 {
			return false
		}
		s.Player.HP += m.Amount
		if s.Player.HP > s.Player.MaxHP {
			s.Player.HP = s.Player.MaxHP
		}
		state.AddLog(s, fmt.Sprintf("%s sent you %d HP.", from, m.Amount))
	case KindFeed:
		if m.Amount <= 0 {
			return false
		}
		s.Player.Hunger += m.Amount
		if s.Player.Hunger > s.Player.MaxHunger {
			s.Player.Hunger = s.Player.MaxHunger
		}
		state.AddLog(s, fmt.Sprintf("%s sent you %d food.", from, m.Amount))
	case KindDied:
		s.Status.Vengeance = true
		state.AddLog(s, fmt.Sprintf("%s has fallen. Vengeance burns in you!", from))
	case KindMarketSale:
		if m.Amount <= 0 {
			return false
		}
		s.Resources.Gold += m.Amount
		state.AddLog(s, fmt.Sprintf("Your %s sold for %d gold.", state.ItemName(defs, m.Item), m.Amount))
	default:
		return false
	}
	return true
}

// MarketBuy settles a purchase the market already confirmed.
func MarketBuy(defs *state.Defs, s *types.GameState, id string, price int) error {
	if _, ok := state.Item(defs, id); !ok || price < 0 {
		return reject.Invalid()
	}
	if err := inventory.CanAfford(s, price); err != nil {
		return err
	}
	s.Resources.Gold -= price
	s.Inventory = inventory.Add(s.Inventory, id, 1)
	state.AddLog(s, fmt.Sprintf("Bought %s on the market for %d gold.", state.ItemName(defs, id), price))
	return nil
}

// MarketList removes one unit that has been placed on the market.
func MarketList(defs *state.Defs, s *types.GameState, id string) error {
	inv, err := inventory.Remove(s.Inventory, id, 1)
	if err != nil {
		return err
	}
	s.Inventory = inv
	state.AddLog(s, fmt.Sprintf("Listed %s on the market.", state.ItemName(defs, id)))
	return nil
}

// MarketCancel returns a withdrawn listing to the inventory.
func MarketCancel(defs *state.Defs, s *types.GameState, id string) error {
	if _, ok := state.Item(defs, id); !ok {
		return reject.Invalid()
	}
	s.Inventory = inventory.Add(s.Inventory, id, 1)
	state.AddLog(s, fmt.Sprintf("Withdrew %s from the market.", state.ItemName(defs, id)))
	return nil
}
