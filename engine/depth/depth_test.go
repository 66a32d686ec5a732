package depth_test

import (
	"errors"
	"testing"

	"github.com/nathoo/abysscore/engine/depth"
	"github.com/nathoo/abysscore/engine/enginetest"
	"github.com/nathoo/abysscore/engine/reject"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

func TestDescend_Starving(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Player.Hunger = 1

	if err := depth.Descend(defs, &s, 50, 2); err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if s.Player.Hunger != 0 {
		t.Errorf("expected hunger 0, got %d", s.Player.Hunger)
	}
	if s.Player.HP != 98 {
		t.Errorf("expected hp 98, got %d", s.Player.HP)
	}
	if s.Player.Depth != 50 || s.Player.MaxDepth != 50 {
		t.Errorf("expected depth 50/50, got %d/%d", s.Player.Depth, s.Player.MaxDepth)
	}
	if s.Status.Logs[0] != "You are starving! -2 HP." {
		t.Errorf("unexpected newest log %q", s.Status.Logs[0])
	}
}

func TestSpend_Boundary(t *testing.T) {
	tests := []struct {
		name     string
		hunger   int
		hp       int
		cost     int
		dir      depth.Direction
		wantHung int
		wantHP   int
		dead     bool
	}{
		{"covered", 10, 100, 2, depth.Down, 8, 100, false},
		{"exact", 2, 100, 2, depth.Down, 0, 100, false},
		{"deficit down", 0, 100, 5, depth.Down, 0, 90, false},
		{"deficit up", 0, 100, 5, depth.Up, 0, 85, false},
		{"fatal", 0, 4, 3, depth.Down, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(enginetest.Defs())
			s.Player.Hunger = tt.hunger
			s.Player.HP = tt.hp
			depth.Spend(&s, tt.cost, tt.dir)
			if s.Player.Hunger != tt.wantHung || s.Player.HP != tt.wantHP {
				t.Errorf("expected hunger %d hp %d, got %d %d", tt.wantHung, tt.wantHP, s.Player.Hunger, s.Player.HP)
			}
			if s.Status.IsDead != tt.dead {
				t.Errorf("expected dead=%v", tt.dead)
			}
		})
	}
}

func TestCost_Artifacts(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Inventory = append(s.Inventory, types.ItemStack{ID: "heavy_pack", Count: 2})

	if got := depth.Cost(defs, &s, depth.Down, 2); got != 4 {
		t.Errorf("descend: expected 4, got %d", got)
	}
	if got := depth.Cost(defs, &s, depth.Up, 2); got != 6 {
		t.Errorf("ascend: expected 6, got %d", got)
	}
	if got := depth.Cost(defs, &s, depth.Down, -10); got != 0 {
		t.Errorf("expected floor at 0, got %d", got)
	}
}

func TestDescend_Defaults(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	if err := depth.Descend(defs, &s, 0, 0); err != nil {
		t.Fatal(err)
	}
	if s.Player.Depth != depth.DefaultAmount || s.Player.Hunger != 100-depth.DefaultCost {
		t.Errorf("unexpected depth %d hunger %d", s.Player.Depth, s.Player.Hunger)
	}
}

func TestDescend_Blocked(t *testing.T) {
	defs := enginetest.Defs()
	tests := []struct {
		name  string
		setup func(*types.GameState)
	}{
		{"dead", func(s *types.GameState) { s.Player.HP = 0; s.Status.IsDead = true }},
		{"fighting", func(s *types.GameState) { s.Status.InCombat = true }},
		{"pending event", func(s *types.GameState) { s.Status.CurrentEvent = &types.Event{Type: types.EventInteraction} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(defs)
			tt.setup(&s)
			if err := depth.Descend(defs, &s, 50, 2); !errors.Is(err, reject.ErrBlocked) {
				t.Errorf("expected blocked, got %v", err)
			}
			if s.Player.Depth != 0 {
				t.Error("depth should not change")
			}
		})
	}
}

func TestAscend(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Player.Depth = 30
	s.Player.MaxDepth = 1000

	if err := depth.Ascend(defs, &s, 50, 2); err != nil {
		t.Fatal(err)
	}
	if s.Player.Depth != 0 {
		t.Errorf("expected depth floored at 0, got %d", s.Player.Depth)
	}
	if s.Player.MaxDepth != 1000 {
		t.Error("maxDepth never decreases")
	}
	if s.Status.CurseIntensity != depth.CursePulse {
		t.Errorf("expected curse %d, got %d", depth.CursePulse, s.Status.CurseIntensity)
	}
}

func TestAscend_Transformed(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	s.Player.Depth = 500
	s.Status.IsTransformed = true

	if err := depth.Ascend(defs, &s, 50, 2); !errors.Is(err, reject.ErrBlocked) {
		t.Errorf("expected blocked, got %v", err)
	}
	if s.Player.Depth != 500 || s.Player.Hunger != 100 {
		t.Error("blocked ascend must not change state")
	}
}

func TestDecayCurse(t *testing.T) {
	s := state.NewState(enginetest.Defs())
	s.Status.CurseIntensity = 7
	depth.DecayCurse(&s)
	if s.Status.CurseIntensity != 2 {
		t.Errorf("expected 2, got %d", s.Status.CurseIntensity)
	}
	depth.DecayCurse(&s)
	if s.Status.CurseIntensity != 0 {
		t.Errorf("expected 0, got %d", s.Status.CurseIntensity)
	}
}

func TestToggleTransform(t *testing.T) {
	s := state.NewState(enginetest.Defs())
	if err := depth.ToggleTransform(&s); err != nil || !s.Status.IsTransformed {
		t.Fatalf("expected transform, err=%v", err)
	}
	if err := depth.ToggleTransform(&s); err != nil || s.Status.IsTransformed {
		t.Fatalf("expected revert, err=%v", err)
	}

	s.Player.Hunger = 0
	if err := depth.ToggleTransform(&s); !errors.Is(err, reject.ErrInsufficientHunger) {
		t.Errorf("expected hunger rejection, got %v", err)
	}
}

func TestWhistleRank(t *testing.T) {
	tests := []struct {
		maxDepth int
		want     string
	}{
		{0, "Bell"},
		{1, "Red Whistle"},
		{1349, "Red Whistle"},
		{1350, "Blue Whistle"},
		{2600, "Moon Whistle"},
		{7000, "Black Whistle"},
		{13000, "White Whistle"},
	}
	for _, tt := range tests {
		if got := depth.WhistleRank(tt.maxDepth); got != tt.want {
			t.Errorf("WhistleRank(%d) = %q, want %q", tt.maxDepth, got, tt.want)
		}
	}
}

func TestLayerAt(t *testing.T) {
	defs := enginetest.Defs()
	if got := depth.LayerAt(defs, 2000); got != "Forest of Temptation" {
		t.Errorf("unexpected layer %q", got)
	}
	if got := depth.LayerAt(defs, -5); got != "Unknown Depths" {
		t.Errorf("unexpected layer %q", got)
	}
}

func TestAscend_AtSurface(t *testing.T) {
	defs := enginetest.Defs()
	s := state.NewState(defs)
	if err := depth.Ascend(defs, &s, 50, 2); !errors.Is(err, reject.ErrInvalidTarget) {
		t.Errorf("expected a silent no-op, got %v", err)
	}
	if s.Status.CurseIntensity != 0 {
		t.Error("no curse at the surface")
	}
}

func TestCurseDamage(t *testing.T) {
	if got := depth.CurseDamage(rng.Fixed(0)); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := depth.CurseDamage(rng.Fixed(0.99)); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
}
