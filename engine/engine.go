// Package engine provides the transition function and the Engine that
// hosts drive one action or command at a time.
package engine

import (
	"github.com/nathoo/abysscore/engine/action"
	"github.com/nathoo/abysscore/engine/rng"
	"github.com/nathoo/abysscore/engine/state"
	"github.com/nathoo/abysscore/types"
)

// Engine holds the game definitions, the current state and the RNG that
// feeds every step. It is not safe for concurrent use; hosts serialize
// access through a single writer.
type Engine struct {
	Defs  *state.Defs
	State types.GameState
	RNG   *rng.RNG
}

// New creates an engine with a fresh state.
func New(defs *state.Defs, seed int64) *Engine {
	return &Engine{
		Defs:  defs,
		State: state.NewState(defs),
		RNG:   rng.New(seed),
	}
}

// Resume creates an engine from a restored state and RNG position.
func Resume(defs *state.Defs, s types.GameState, seed, position int64) *Engine {
	return &Engine{
		Defs:  defs,
		State: s,
		RNG:   rng.Restore(seed, position),
	}
}

// Step applies one action and returns the lines it emitted.
func (e *Engine) Step(a action.Action) types.Result {
	next, res := apply(e.Defs, e.State, a, e.RNG)
	e.State = next
	return res
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() types.GameState {
	return state.Clone(e.State)
}

// Presence summarizes the public view of the player.
func (e *Engine) Presence() types.Presence {
	p := e.State.Player
	return types.Presence{
		Name:      p.Name,
		Depth:     p.Depth,
		MaxDepth:  p.MaxDepth,
		Gold:      e.State.Resources.Gold,
		Level:     p.Level,
		HP:        p.HP,
		MaxHP:     p.MaxHP,
		Hunger:    p.Hunger,
		MaxHunger: p.MaxHunger,
	}
}

func merge(results ...types.Result) types.Result {
	var out types.Result
	for _, r := range results {
		out.Output = append(out.Output, r.Output...)
		out.Rejected = out.Rejected || r.Rejected
	}
	return out
}

func say(lines ...string) types.Result {
	return types.Result{Output: lines}
}
