package content

import (
	"testing"

	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "The Abyss", defs.Game.Title)
	assert.Len(t, defs.Layers, 7)
	assert.Len(t, defs.Machines, 6)
	assert.NotEmpty(t, defs.Atmosphere)

	for _, id := range []string{"ration", "scrap", "outpost_kit", "fuel_canister", "automaton_core", "star_compass"} {
		_, ok := state.Item(defs, id)
		assert.True(t, ok, "missing item %q", id)
	}
}

func TestDefault_LayersCoverEveryDepth(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)

	for _, d := range []int{0, 1350, 1351, 7000, 12500, 15500, 20000} {
		_, ok := state.Layer(defs, d)
		assert.True(t, ok, "no layer at %d", d)
	}
}

func TestDefault_Playable(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)

	e := engine.New(defs, 7)
	for i := 0; i < 60 && !e.State.Status.IsDead; i++ {
		switch {
		case e.State.Status.InCombat:
			e.Command("attack")
		case e.State.Status.CurrentEvent != nil && e.State.Status.CurrentEvent.Type == types.EventCombat:
			e.Command("fight")
		case e.State.Status.CurrentEvent != nil:
			e.Command("leave")
		default:
			e.Command("descend")
		}
	}
	assert.Positive(t, e.State.Player.MaxDepth)
}
