package events_test

import (
	"reflect"
	"testing"

	"github.com/nathoo/abysscore/engine/enginetest"
	"github.com/nathoo/abysscore/engine/events"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/types"
)

func TestGenerate_Bands(t *testing.T) {
	defs := enginetest.Defs()
	tests := []struct {
		name  string
		depth int
		rolls []float64
		want  types.EventType
		id    string
	}{
		{"combat", 100, []float64{0.05, 0.0}, types.EventCombat, "Hammerbeak"},
		{"loot", 100, []float64{0.2, 0.0}, types.EventLoot, "scrap"},
		{"npc", 100, []float64{0.42, 0.0}, types.EventInteraction, "hermit"},
		{"shallow remainder", 100, []float64{0.46, 0.0}, types.EventFlavor, ""},
		{"forest combat is wider", 2500, []float64{0.12, 0.0}, types.EventCombat, "Hammerbeak"},
		{"relic below gate", 2500, []float64{0.55, 0.0}, types.EventLoot, "dirty_relic"},
		{"deep remainder", 2500, []float64{0.61, 0.0}, types.EventFlavor, ""},
		{"no npc deep", 4000, []float64{0.42, 0.0}, types.EventFlavor, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := events.Generate(defs, tt.depth, rng.Fixed(tt.rolls...))
			if ev.Type != tt.want {
				t.Fatalf("expected %s, got %s (%q)", tt.want, ev.Type, ev.Text)
			}
			var id string
			switch {
			case ev.Monster != nil:
				id = ev.Monster.Name
			case ev.Item != nil:
				id = ev.Item.ID
			case ev.NPC != nil:
				id = ev.NPC.ID
			}
			if id != tt.id {
				t.Errorf("expected %q, got %q", tt.id, id)
			}
			if ev.Text == "" {
				t.Error("every event carries text")
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	defs := enginetest.Defs()
	for depth := 0; depth < 8000; depth += 350 {
		a := events.Generate(defs, depth, rng.New(99))
		b := events.Generate(defs, depth, rng.New(99))
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("depth %d: same seed gave different events", depth)
		}
	}
}

func TestMonsters_DepthFilter(t *testing.T) {
	defs := enginetest.Defs()
	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"Hammerbeak"}},
		{1500, []string{"Hammerbeak", "Serpent"}},
		{5000, []string{"Serpent", "Devourer"}},
		{20000, []string{"Devourer"}},
	}
	for _, tt := range tests {
		var got []string
		for _, m := range events.Monsters(defs, tt.depth) {
			got = append(got, m.Name)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("depth %d: expected %v, got %v", tt.depth, tt.want, got)
		}
	}
}

func TestSafeLoot(t *testing.T) {
	defs := enginetest.Defs()
	for _, it := range events.SafeLoot(defs) {
		switch it.Category {
		case types.CategoryLoot, types.CategoryMaterial:
		case types.CategoryConsumable:
			if it.Price > events.SafeLootMaxPrice {
				t.Errorf("%s is too expensive to find lying around", it.ID)
			}
		default:
			t.Errorf("%s (%s) should not be safe loot", it.ID, it.Category)
		}
	}
}

func TestGenerate_EventDoesNotAliasDefs(t *testing.T) {
	defs := enginetest.Defs()
	ev := events.Generate(defs, 100, rng.Fixed(0.05, 0.0))
	ev.Monster.Drops[0] = "changed"
	if defs.Monsters[0].Drops[0] != "meat" {
		t.Error("event mutation leaked into definitions")
	}
}

func TestFill(t *testing.T) {
	defs := enginetest.Defs()
	q := events.Fill(defs, nil, 1000, rng.New(1))
	if len(q) != events.ForecastLen {
		t.Fatalf("expected %d entries, got %d", events.ForecastLen, len(q))
	}
	for i, e := range q {
		if want := 1000 + (i+1)*events.ForecastStep; e.Depth != want {
			t.Errorf("entry %d: expected depth %d, got %d", i, want, e.Depth)
		}
	}
}

func TestAdvance_PopsFront(t *testing.T) {
	defs := enginetest.Defs()
	q := events.Fill(defs, nil, 1000, rng.New(1))
	front := q[0].Event

	ev, next := events.Advance(defs, q, 1050, rng.New(2))
	if !reflect.DeepEqual(ev, front) {
		t.Error("advance should return the front entry")
	}
	if len(next) != events.ForecastLen {
		t.Fatalf("expected queue refilled to %d, got %d", events.ForecastLen, len(next))
	}
	if next[0].Depth != 1100 || next[4].Depth != 1300 {
		t.Errorf("unexpected depths %d..%d", next[0].Depth, next[4].Depth)
	}
	if len(q) != events.ForecastLen {
		t.Error("input queue should not be modified")
	}
}

func TestAdvance_EmptyQueue(t *testing.T) {
	defs := enginetest.Defs()
	_, next := events.Advance(defs, nil, 500, rng.New(3))
	if len(next) != events.ForecastLen || next[0].Depth != 550 {
		t.Errorf("unexpected queue %+v", next)
	}
}

func TestAdvance_SkipsPassedEntries(t *testing.T) {
	defs := enginetest.Defs()
	q := events.Fill(defs, nil, 1000, rng.New(1))
	at := q[1].Event

	ev, next := events.Advance(defs, q, 1100, rng.New(2))
	if !reflect.DeepEqual(ev, at) {
		t.Error("advance should return the entry queued for the new depth")
	}
	if len(next) != events.ForecastLen || next[0].Depth != 1150 || next[4].Depth != 1350 {
		t.Errorf("unexpected queue %+v", next)
	}
}

func TestAdvance_QueueBehindPlayer(t *testing.T) {
	defs := enginetest.Defs()
	q := events.Fill(defs, nil, 0, rng.New(1))

	_, next := events.Advance(defs, q, 600, rng.New(2))
	if len(next) != events.ForecastLen {
		t.Fatalf("expected %d entries, got %d", events.ForecastLen, len(next))
	}
	for i, e := range next {
		if want := 600 + (i+1)*events.ForecastStep; e.Depth != want {
			t.Errorf("entry %d: expected depth %d, got %d", i, want, e.Depth)
		}
	}
}
