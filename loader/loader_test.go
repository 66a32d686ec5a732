package loader

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/abysscore/types"
)

const minimalGame = `
Game {
	title = "Minimal Abyss",
	author = "Tester",
	version = "0.1",
	intro = "The hole waits.",
}
`

const minimalItems = `
Item "ration" { name = "Ration", category = "consumable", price = 25, effect = { hunger = 25 } }
Item "scrap" { name = "Scrap", category = "material", price = 10 }
Item "stone" { name = "Stone", category = "loot", price = 5, rarity = 4 }
Item "whistle" { name = "Whistle", category = "relic", price = 5000, rarity = 0 }
Item "pickaxe" { name = "Pickaxe", category = "equip", slot = "weapon", price = 500, effect = { atk = 20 } }
Item "outpost_kit" { category = "item", price = 400 }
Item "fuel_canister" { price = 150 }
Item "automaton_core" { price = 1500 }

Recipe "pickaxe" { requires = { scrap = 5 } }
`

const minimalWorld = `
Layer "Edge of the Abyss" { min = 0, max = 1350, curse = "Dizziness", combat_chance = 0.1 }
Layer "Forest of Temptation" { min = 1351, max = 2600, curse = "Nausea", combat_chance = 0.15 }

Monster "Hammerbeak" { power = 20, drops = { "scrap" }, min_depth = 0, max_depth = 2600, income = 2 }

NPC "hermit" {
	name = "Hermit",
	dialogue = "A hermit beckons.",
	min_depth = 0,
	max_depth = 3000,
	options = {
		{ id = "train", label = "Train", cost_label = "50g", cost = { gold = 50, hunger = 20 }, reward = { type = "buff_str", value = 3 } },
		{ id = "map", label = "Map", cost = { max_hp_percent = 10, all_humanity = true }, reward = { type = "reveal_map", value = 1000 } },
	},
}

Machine "excavator" { name = "Excavator", base_price = 500, price_step = 250 }
Machine "generator" { base_price = 5000, price_step = 5000 }
Machine "bank" { base_price = 2000, price_step = 1500 }

Atmosphere { "The silence is deafening.", "Your lantern flickers." }
`

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"game.lua":  {Data: []byte(minimalGame)},
		"items.lua": {Data: []byte(minimalItems)},
		"world.lua": {Data: []byte(minimalWorld)},
	}
}

func TestLoadFS_MinimalGame(t *testing.T) {
	defs, err := LoadFS(minimalFS(), ".")
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	if defs.Game.Title != "Minimal Abyss" {
		t.Errorf("Title = %q, want %q", defs.Game.Title, "Minimal Abyss")
	}
	if defs.Game.Intro != "The hole waits." {
		t.Errorf("Intro = %q", defs.Game.Intro)
	}
	if len(defs.Items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(defs.Items))
	}
	// Source order is kept.
	if defs.Items[0].ID != "ration" || defs.Items[4].ID != "pickaxe" {
		t.Errorf("items out of source order: %v, %v", defs.Items[0].ID, defs.Items[4].ID)
	}
	if defs.Items[0].Effect["hunger"] != 25 {
		t.Errorf("ration effect = %v", defs.Items[0].Effect)
	}
	if r := defs.Items[3].Rarity; r == nil || *r != 0 {
		t.Errorf("rarity 0 should be kept, got %v", r)
	}
	if defs.Items[1].Rarity != nil {
		t.Error("missing rarity should stay nil")
	}
	if defs.Items[6].Category != types.CategoryItem || defs.Items[6].Name != "fuel_canister" {
		t.Errorf("expected category and name defaults, got %+v", defs.Items[6])
	}

	if len(defs.Recipes) != 1 || defs.Recipes[0].Result != "pickaxe" {
		t.Errorf("recipe result should default to its id, got %+v", defs.Recipes)
	}

	if len(defs.Layers) != 2 || defs.Layers[1].CombatChance != 0.15 {
		t.Errorf("unexpected layers %+v", defs.Layers)
	}
	if len(defs.Monsters) != 1 || defs.Monsters[0].Name != "Hammerbeak" || defs.Monsters[0].MaxDepth != 2600 {
		t.Errorf("unexpected monsters %+v", defs.Monsters)
	}

	hermit := defs.NPCs[0]
	if len(hermit.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(hermit.Options))
	}
	if hermit.Options[0].Cost.Gold != 50 || hermit.Options[0].CostLabel != "50g" {
		t.Errorf("train option = %+v", hermit.Options[0])
	}
	if !hermit.Options[1].Cost.AllHumanity || hermit.Options[1].Cost.MaxHPPercent != 10 {
		t.Errorf("map option cost = %+v", hermit.Options[1].Cost)
	}
	if hermit.Options[1].Reward.Value != 1000 {
		t.Errorf("map option reward = %+v", hermit.Options[1].Reward)
	}

	if len(defs.Machines) != 3 || defs.Machines[1].Name != "generator" {
		t.Errorf("unexpected machines %+v", defs.Machines)
	}
	if len(defs.Atmosphere) != 2 {
		t.Errorf("expected 2 atmosphere lines, got %d", len(defs.Atmosphere))
	}
}

func TestLoadFS_Subdirectory(t *testing.T) {
	fsys := fstest.MapFS{}
	for name, f := range minimalFS() {
		fsys["pack/"+name] = f
	}
	if _, err := LoadFS(fsys, "pack"); err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.CopyFS(dir, minimalFS()); err != nil {
		t.Fatal(err)
	}
	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if defs.Game.Title != "Minimal Abyss" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
}

func TestLoadFS_InvalidRefs_Fails(t *testing.T) {
	fsys := minimalFS()
	fsys["zz.lua"] = &fstest.MapFile{Data: []byte(`Recipe "cake" { requires = { flour = 2 } }`)}

	_, err := LoadFS(fsys, ".")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "flour") {
		t.Errorf("error should name the missing item: %v", err)
	}
}

func TestLoadFS_BadLuaSyntax_Fails(t *testing.T) {
	fsys := minimalFS()
	fsys["broken.lua"] = &fstest.MapFile{Data: []byte(`Item "x" {`)}

	_, err := LoadFS(fsys, ".")
	if err == nil || !strings.Contains(err.Error(), "broken.lua") {
		t.Fatalf("expected a parse error naming the file, got %v", err)
	}
}

func TestLoadFS_NoGameDef_Fails(t *testing.T) {
	fsys := minimalFS()
	delete(fsys, "game.lua")

	_, err := LoadFS(fsys, ".")
	if err == nil || !strings.Contains(err.Error(), "Game") {
		t.Fatalf("expected a missing Game error, got %v", err)
	}
}

func TestLoadFS_NoLuaFiles_Fails(t *testing.T) {
	fsys := fstest.MapFS{"README.md": {Data: []byte("nothing")}}
	if _, err := LoadFS(fsys, "."); err == nil {
		t.Fatal("expected an error for an empty content directory")
	}
}

func TestLoadFS_SandboxEnforced(t *testing.T) {
	for _, src := range []string{
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
		`dofile("x.lua")`,
		`local x = math.random(6)`,
	} {
		fsys := minimalFS()
		fsys["evil.lua"] = &fstest.MapFile{Data: []byte(src)}
		if _, err := LoadFS(fsys, "."); err == nil {
			t.Errorf("expected %q to fail in the sandbox", src)
		}
	}
}

func TestLoadFS_FileOrdering(t *testing.T) {
	// The remaining files run alphabetically after game.lua.
	fsys := minimalFS()
	fsys["a.lua"] = &fstest.MapFile{Data: []byte(`Item "amber" { category = "loot", price = 40 }`)}

	defs, err := LoadFS(fsys, ".")
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
	if defs.Items[0].ID != "amber" {
		t.Errorf("expected a.lua items first, got %q", defs.Items[0].ID)
	}
}
