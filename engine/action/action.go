// Package action defines the closed set of transitions the engine accepts.
// Each kind is its own struct; the unexported marker keeps the set sealed.
package action

import (
	"github.com/nathoo/abysscore/engine/combat"
	"github.com/nathoo/abysscore/types"
)

// Action is one input to the transition function.
type Action interface {
	isAction()
}

// Movement.
type (
	// Descend moves down Amount units for a base hunger Cost.
	// Zero fields take the defaults.
	Descend struct{ Amount, Cost int }
	// Ascend climbs Amount units for a base hunger Cost.
	Ascend struct{ Amount, Cost int }
)

// Vitals.
type (
	TakeDamage struct{ Amount int }
	Heal       struct{ Amount int }
	Eat        struct{ Amount int }
)

// Economy.
type (
	AddGold     struct{ Amount int }
	TickPassive struct{}
	TickFast    struct{}
	BuyUpgrade  struct{ Machine string }
)

// Inventory.
type (
	// LootFound adds one unit of Item and records its discovery.
	LootFound    struct{ Item string }
	BuyItem      struct{ Item string }
	SellItem     struct{ Item string }
	UseItem      struct{ Item string }
	EquipItem    struct{ Item string }
	UnequipItem  struct{ Slot string }
	CraftItem    struct{ Recipe string }
	AppraiseItem struct{ Item string }
)

// InteractNPC pays for and takes one option of an NPC.
type InteractNPC struct {
	NPC    string
	Option string
}

// Combat.
type (
	CombatStart       struct{ Monster types.MonsterDef }
	CombatRound       struct{ Move combat.Move }
	CombatWin         struct{}
	CombatFlee        struct{}
	CombatTameSuccess struct{}
)

// Outposts.
type (
	DeployOutpost struct{}
	// RefuelOutpost burns one unit of Fuel ("scrap" or "canister").
	RefuelOutpost    struct{ Fuel string }
	InstallAutomaton struct{}
	CollectOutpost   struct{}
)

// Respawn restarts a run at the surface.
type Respawn struct{}

// Social.
type (
	SyncDuo      struct{ Snapshot types.DuoSnapshot }
	ProcessInbox struct{ Messages []types.InboxMessage }
	SetDuoID     struct{ ID string }
)

// LifelineSend gives Amount of HEAL or FEED to the partner.
type LifelineSend struct {
	Kind   string
	Amount int
}

// BuyMarketItem settles a purchase the market already confirmed.
type BuyMarketItem struct {
	Item  string
	Price int
}

// Market listings, dispatched once the market confirms.
type (
	SellMarketItem   struct{ Item string }
	CancelMarketItem struct{ Item string }
)

// Misc.
type (
	SetName         struct{ Name string }
	AddLog          struct{ Line string }
	TriggerEvent    struct{ Event types.Event }
	ClearEvent      struct{}
	ToggleTransform struct{}
)

func (Descend) isAction() {}
func (Ascend) isAction() {}
func (TakeDamage) isAction() {}
func (Heal) isAction() {}
func (Eat) isAction() {}
func (AddGold) isAction() {}
func (TickPassive) isAction() {}
func (TickFast) isAction() {}
func (BuyUpgrade) isAction() {}
func (LootFound) isAction() {}
func (BuyItem) isAction() {}
func (SellItem) isAction() {}
func (UseItem) isAction() {}
func (EquipItem) isAction() {}
func (UnequipItem) isAction() {}
func (CraftItem) isAction() {}
func (AppraiseItem) isAction() {}
func (InteractNPC) isAction() {}
func (CombatStart) isAction() {}
func (CombatRound) isAction() {}
func (CombatWin) isAction() {}
func (CombatFlee) isAction() {}
func (CombatTameSuccess) isAction() {}
func (DeployOutpost) isAction() {}
func (RefuelOutpost) isAction() {}
func (InstallAutomaton) isAction() {}
func (CollectOutpost) isAction() {}
func (Respawn) isAction() {}
func (SyncDuo) isAction() {}
func (ProcessInbox) isAction() {}
func (LifelineSend) isAction() {}
func (SetDuoID) isAction() {}
func (BuyMarketItem) isAction() {}
func (SellMarketItem) isAction() {}
func (CancelMarketItem) isAction() {}
func (SetName) isAction() {}
func (AddLog) isAction() {}
func (TriggerEvent) isAction() {}
func (ClearEvent) isAction() {}
func (ToggleTransform) isAction() {}
