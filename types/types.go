// Package types defines the shared data structures for the abyss simulation.
// The package holds type definitions only, with no logic and no methods.
package types

// Equipment slot names.
const (
	SlotWeapon = "weapon"
	SlotBody   = "body"
	SlotCharm  = "charm"
)

// Item categories.
const (
	CategoryMaterial   = "material"
	CategoryConsumable = "consumable"
	CategoryLoot       = "loot"
	CategoryRelicRaw   = "relic_raw"
	CategoryRelic      = "relic"
	CategoryEquip      = "equip"
	CategoryArtifact   = "artifact"
	CategoryItem       = "item"
)

// EventType tags the variant carried by an Event.
type EventType string

const (
	EventNone        EventType = "NONE"
	EventCombat      EventType = "COMBAT"
	EventLoot        EventType = "LOOT"
	EventInteraction EventType = "INTERACTION"
	EventFlavor      EventType = "FLAVOR"
)

// GameState is the root aggregate. It is owned by the transition function
// and serialized wholesale by persistence collaborators.
type GameState struct {
	Player    Player                  `json:"player"`
	Resources Resources               `json:"resources"`
	Inventory []ItemStack             `json:"inventory"`
	Equipment map[string]ItemInstance `json:"equipment"`
	Machines  map[string]int          `json:"machines"`
	Stats     Stats                   `json:"stats"`
	Status    Status                  `json:"status"`
	Outposts  map[int]Outpost         `json:"outposts"`
}

// Player holds the explorer's vitals and progression.
type Player struct {
	Name      string       `json:"name"`
	Depth     int          `json:"depth"`
	MaxDepth  int          `json:"maxDepth"`
	HP        int          `json:"hp"`
	MaxHP     int          `json:"maxHp"`
	Hunger    int          `json:"hunger"`
	MaxHunger int          `json:"maxHunger"`
	XP        int          `json:"xp"`
	Level     int          `json:"level"`
	BaseAtk   int          `json:"baseAtk"`
	CanAscend bool         `json:"canAscend"`
	DuoID     string       `json:"duoId,omitempty"`
	DuoState  *DuoSnapshot `json:"duoState,omitempty"`
}

// Resources holds spendable currencies.
type Resources struct {
	Gold     int `json:"gold"`
	Humanity int `json:"humanity"`
}

// ItemStack is one inventory slot: an item id and a count >= 1.
type ItemStack struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// ItemInstance is an item placed in an equipment slot. The effect map is a
// snapshot taken at equip time.
type ItemInstance struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Slot   string         `json:"slot"`
	Effect map[string]int `json:"effect,omitempty"`
}

// Stats holds lifetime counters and the discovery compendium.
type Stats struct {
	MonstersKilled int            `json:"monstersKilled"`
	RelicsFound    int            `json:"relicsFound"`
	FoundRelicIDs  []string       `json:"foundRelicIds"`
	Tamed          []TamedMonster `json:"tamed"`
}

// TamedMonster is a roster entry that earns passive income.
type TamedMonster struct {
	Name  string `json:"name"`
	Power int    `json:"power"`
}

// Status holds transient fields derived during play.
type Status struct {
	InCombat       bool             `json:"inCombat"`
	CurrentMonster *MonsterInstance `json:"currentMonster,omitempty"`
	IsDead         bool             `json:"isDead"`
	CombatLog      []string         `json:"combatLog"`
	CurseIntensity int              `json:"curseIntensity"`
	Logs           []string         `json:"logs"`
	CurrentEvent   *Event           `json:"currentEvent,omitempty"`
	Forecast       []ForecastEntry  `json:"forecast"`
	IsTransformed  bool             `json:"isTransformed"`
	Vengeance      bool             `json:"vengeance"`
}

// MonsterInstance is a live opponent.
type MonsterInstance struct {
	Name  string   `json:"name"`
	Power int      `json:"power"`
	HP    int      `json:"hp"`
	MaxHP int      `json:"maxHp"`
	Drops []string `json:"drops,omitempty"`
}

// Event is a generated encounter. Exactly one of Monster, Item or NPC is set
// for COMBAT, LOOT and INTERACTION respectively.
type Event struct {
	Type    EventType   `json:"type"`
	Text    string      `json:"text,omitempty"`
	Monster *MonsterDef `json:"monster,omitempty"`
	Item    *ItemDef    `json:"item,omitempty"`
	NPC     *NPCDef     `json:"npc,omitempty"`
}

// ForecastEntry is a pre-rolled encounter at a future depth.
type ForecastEntry struct {
	Depth int   `json:"depth"`
	Event Event `json:"event"`
}

// Outpost is a player-built base keyed by snapped depth.
type Outpost struct {
	Depth     int         `json:"depth"`
	Fuel      int         `json:"fuel"`
	Storage   []ItemStack `json:"storage"`
	Automaton bool        `json:"automaton"`
}

// DuoSnapshot is the last partner state received over the social transport.
type DuoSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Depth     int    `json:"depth"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	Hunger    int    `json:"hunger"`
	MaxHunger int    `json:"maxHunger"`
	IsDead    bool   `json:"isDead"`
}

// InboxMessage is a cross-player message already validated by the transport.
type InboxMessage struct {
	Kind   string `json:"kind"` // HEAL, FEED, DIED, MARKET_SALE
	From   string `json:"from,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Item   string `json:"item,omitempty"`
}

// Presence is the public snapshot published for leaderboards and duo partners.
type Presence struct {
	Name      string `json:"name"`
	Depth     int    `json:"depth"`
	MaxDepth  int    `json:"maxDepth"`
	Gold      int    `json:"gold"`
	Level     int    `json:"level"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	Hunger    int    `json:"hunger"`
	MaxHunger int    `json:"maxHunger"`
}

// Intent is a parsed player command.
type Intent struct {
	Verb   string
	Object string
	Target string
}

// Result is the output of a single engine step.
type Result struct {
	Output   []string
	Rejected bool
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Intro   string
}

// ItemDef is the immutable definition of an item.
type ItemDef struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Price       int            `json:"price"`
	Effect      map[string]int `json:"effect,omitempty"`
	Slot        string         `json:"slot,omitempty"`
	Rarity      *int           `json:"rarity,omitempty"` // 0 = unique, larger = more common
	Description string         `json:"description,omitempty"`
}

// RecipeDef maps required materials to one crafted result.
type RecipeDef struct {
	ID          string
	Result      string
	Requires    map[string]int
	Tool        string // possessed, not consumed
	Description string
}

// MonsterDef is the immutable definition of a monster.
type MonsterDef struct {
	Name     string   `json:"name"`
	Power    int      `json:"power"`
	Drops    []string `json:"drops,omitempty"`
	MinDepth int      `json:"minDepth"`
	MaxDepth int      `json:"maxDepth"` // 0 = no upper bound
	Income   int      `json:"income,omitempty"`
}

// NPCDef is an encounter with priced dialogue options.
type NPCDef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Dialogue string      `json:"dialogue"`
	MinDepth int         `json:"minDepth"`
	MaxDepth int         `json:"maxDepth"`
	Options  []NPCOption `json:"options"`
}

// NPCOption is one priced choice offered by an NPC.
type NPCOption struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CostLabel string    `json:"costLabel,omitempty"`
	Cost      NPCCost   `json:"cost"`
	Reward    NPCReward `json:"reward"`
}

// NPCCost lists every resource an option charges.
type NPCCost struct {
	Gold         int  `json:"gold,omitempty"`
	HP           int  `json:"hp,omitempty"`
	Hunger       int  `json:"hunger,omitempty"`
	MaxHPPercent int  `json:"maxHpPercent,omitempty"`
	AllHumanity  bool `json:"allHumanity,omitempty"`
}

// NPCReward is what an option grants once paid.
type NPCReward struct {
	Type  string `json:"type"` // buff_str, item, restore_all, reveal_map
	Value int    `json:"value,omitempty"`
	Item  string `json:"item,omitempty"`
}

// LayerDef is a named depth band.
type LayerDef struct {
	Name         string
	Min          int
	Max          int
	Curse        string
	CombatChance float64
}

// MachineDef is a purchasable upgrade line.
type MachineDef struct {
	ID          string
	Name        string
	BasePrice   int
	PriceStep   int
	Description string
}
