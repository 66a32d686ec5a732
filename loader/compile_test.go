package loader

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/abysscore/types"
	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	coll := &collector{}
	return newVM(coll), coll
}

func TestCompileGame(t *testing.T) {
	L, _ := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		return {
			title = "Test Game",
			author = "Author",
			version = "1.0",
			intro = "Welcome!"
		}
	`); err != nil {
		t.Fatal(err)
	}

	game := compileGame(L.CheckTable(-1))
	want := types.GameDef{Title: "Test Game", Author: "Author", Version: "1.0", Intro: "Welcome!"}
	if game != want {
		t.Errorf("game = %+v, want %+v", game, want)
	}
}

func TestCompileItem_EquipWithEffect(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Item "lucky_charm" {
			name = "Lucky Charm",
			category = "equip",
			slot = "charm",
			price = 300,
			effect = { atk = 5, str = 1 },
			description = "It hums.",
		}
	`); err != nil {
		t.Fatal(err)
	}
	if len(coll.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(coll.items))
	}

	it := compileItem(coll.items[0])
	if it.ID != "lucky_charm" || it.Slot != types.SlotCharm || it.Price != 300 {
		t.Errorf("unexpected item %+v", it)
	}
	if !reflect.DeepEqual(it.Effect, map[string]int{"atk": 5, "str": 1}) {
		t.Errorf("effect = %v", it.Effect)
	}
	if it.Description != "It hums." {
		t.Errorf("description = %q", it.Description)
	}
}

func TestCompileRecipe_ExplicitResultAndTool(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Recipe "reap" { result = "blaze_reap", requires = { relic_shard = 2 }, tool = "pickaxe" }
	`); err != nil {
		t.Fatal(err)
	}

	r := compileRecipe(coll.recipes[0])
	if r.ID != "reap" || r.Result != "blaze_reap" || r.Tool != "pickaxe" {
		t.Errorf("unexpected recipe %+v", r)
	}
	if r.Requires["relic_shard"] != 2 {
		t.Errorf("requires = %v", r.Requires)
	}
}

func TestCompileMonster_OpenEnded(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Monster "Devourer" { power = 120, drops = { "relic_shard", "monster_bone" }, min_depth = 5000, income = 12 }
	`); err != nil {
		t.Fatal(err)
	}

	m := compileMonster(coll.monsters[0])
	want := types.MonsterDef{
		Name:     "Devourer",
		Power:    120,
		Drops:    []string{"relic_shard", "monster_bone"},
		MinDepth: 5000,
		Income:   12,
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("monster = %+v, want %+v", m, want)
	}
}

func TestCompileNPC_Options(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		NPC "merchant" {
			dialogue = "Wares, wares.",
			min_depth = 500,
			max_depth = 4000,
			options = {
				{ id = "trade", cost = { hp = 30 }, reward = { type = "item", item = "medkit" } },
			},
		}
	`); err != nil {
		t.Fatal(err)
	}

	npc, err := compileNPC(coll.npcs[0])
	if err != nil {
		t.Fatal(err)
	}
	if npc.Name != "merchant" {
		t.Errorf("name should default to the id, got %q", npc.Name)
	}
	if len(npc.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(npc.Options))
	}
	opt := npc.Options[0]
	if opt.Label != "trade" {
		t.Errorf("label should default to the id, got %q", opt.Label)
	}
	if opt.Cost.HP != 30 || opt.Reward.Item != "medkit" {
		t.Errorf("unexpected option %+v", opt)
	}
}

func TestCompileNPC_BadOption(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`NPC "odd" { options = { "not a table" } }`); err != nil {
		t.Fatal(err)
	}

	_, err := compileNPC(coll.npcs[0])
	if err == nil || !strings.Contains(err.Error(), "option 1") {
		t.Fatalf("expected an option error, got %v", err)
	}
}

func TestCompileLayerAndMachine(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Layer "Great Fault" { min = 2601, max = 7000, curse = "Hallucinations" }
		Machine "bank" { name = "Bank", base_price = 2000, price_step = 1500, description = "Interest." }
	`); err != nil {
		t.Fatal(err)
	}

	l := compileLayer(coll.layers[0])
	if l.Name != "Great Fault" || l.Min != 2601 || l.Max != 7000 || l.CombatChance != 0 {
		t.Errorf("unexpected layer %+v", l)
	}
	m := compileMachine(coll.machines[0])
	if m.ID != "bank" || m.BasePrice != 2000 || m.PriceStep != 1500 {
		t.Errorf("unexpected machine %+v", m)
	}
}

func TestAtmosphere_Accumulates(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Atmosphere { "One." }
		Atmosphere { "Two.", 3, "Three." }
	`); err != nil {
		t.Fatal(err)
	}

	want := []string{"One.", "Two.", "Three."}
	if !reflect.DeepEqual(coll.atmosphere, want) {
		t.Errorf("atmosphere = %v, want %v", coll.atmosphere, want)
	}
}

func TestCompile_RequiresGame(t *testing.T) {
	if _, err := compile(&collector{}); err == nil {
		t.Fatal("expected an error without a Game definition")
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"npcs.lua", "game.lua", "items.lua"})
	want := []string{"game.lua", "items.lua", "npcs.lua"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
