// Package session drives an Engine in real time. A single goroutine owns
// the engine: player input, the passive and fast ticks, autosave and
// presence publishing are all serialized through Run.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nathoo/abysscore/engine"
	"github.com/nathoo/abysscore/engine/action"
	"github.com/nathoo/abysscore/engine/save"
	"github.com/nathoo/abysscore/store"
	"github.com/nathoo/abysscore/types"
)

// PresenceStep is the depth change that triggers an early presence publish.
const PresenceStep = 100

// ErrStopped is returned by Dispatch once Run has exited.
var ErrStopped = errors.New("session stopped")

// Publisher receives the public presence snapshot.
type Publisher interface {
	Publish(ctx context.Context, p types.Presence) error
}

// Listener is called from the session goroutine after every step.
// It must not call back into the session.
type Listener func(s types.GameState, res types.Result)

// Config sets the session cadences and save slot.
type Config struct {
	Slot             string
	PassiveTick      time.Duration
	FastTick         time.Duration
	AutosaveInterval time.Duration
	PresenceInterval time.Duration
}

type request struct {
	run   func(*engine.Engine) types.Result
	reply chan types.Result
	// exec requests skip listeners, presence and the dirty flag.
	exec bool
}

// Session serializes every mutation of one Engine.
type Session struct {
	eng    *engine.Engine
	store  store.Store
	pub    Publisher
	logger *slog.Logger
	cfg    Config

	requests chan request
	done     chan struct{}

	mu        sync.Mutex
	listeners []Listener

	dirty         bool
	lastPublished int
}

// New creates a session. store and pub may be nil to disable saving or
// publishing.
func New(eng *engine.Engine, st store.Store, pub Publisher, logger *slog.Logger, cfg Config) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		eng:           eng,
		store:         st,
		pub:           pub,
		logger:        logger.With("component", "session", "slot", cfg.Slot),
		cfg:           cfg,
		requests:      make(chan request),
		done:          make(chan struct{}),
		lastPublished: eng.State.Player.Depth,
	}
}

// Subscribe registers a listener for state publications.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies one action on the session goroutine and waits for the
// result.
func (s *Session) Dispatch(ctx context.Context, a action.Action) (types.Result, error) {
	return s.do(ctx, request{run: func(e *engine.Engine) types.Result { return e.Step(a) }})
}

// Command parses and runs one line of player input.
func (s *Session) Command(ctx context.Context, input string) (types.Result, error) {
	return s.do(ctx, request{run: func(e *engine.Engine) types.Result { return e.Command(input) }})
}

// Exec runs fn on the session goroutine. It is how hosts read the engine
// or swap in a loaded save without racing the tickers.
func (s *Session) Exec(ctx context.Context, fn func(*engine.Engine) types.Result) (types.Result, error) {
	return s.do(ctx, request{run: fn, exec: true})
}

func (s *Session) do(ctx context.Context, req request) (types.Result, error) {
	req.reply = make(chan types.Result, 1)
	select {
	case s.requests <- req:
	case <-s.done:
		return types.Result{}, ErrStopped
	case <-ctx.Done():
		return types.Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-s.done:
		return types.Result{}, ErrStopped
	case <-ctx.Done():
		return types.Result{}, ctx.Err()
	}
}

// Run owns the engine until ctx is cancelled, then saves one last time.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)

	passive := time.NewTicker(s.cfg.PassiveTick)
	defer passive.Stop()
	fast := time.NewTicker(s.cfg.FastTick)
	defer fast.Stop()
	autosave := time.NewTicker(s.cfg.AutosaveInterval)
	defer autosave.Stop()
	presence := time.NewTicker(s.cfg.PresenceInterval)
	defer presence.Stop()

	s.logger.Info("session started")
	for {
		select {
		case <-ctx.Done():
			// The parent context is gone; give the final save its own deadline.
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			err := s.flush(saveCtx)
			cancel()
			s.logger.Info("session stopped")
			return err
		case req := <-s.requests:
			if req.exec {
				req.reply <- req.run(s.eng)
				continue
			}
			req.reply <- s.step(ctx, req.run)
		case <-passive.C:
			s.step(ctx, func(e *engine.Engine) types.Result { return e.Step(action.TickPassive{}) })
		case <-fast.C:
			s.step(ctx, func(e *engine.Engine) types.Result { return e.Step(action.TickFast{}) })
		case <-autosave.C:
			if err := s.flush(ctx); err != nil {
				// Still dirty, so the next interval retries.
				s.logger.Warn("autosave failed", "error", err)
			}
		case <-presence.C:
			s.publish(ctx)
		}
	}
}

func (s *Session) step(ctx context.Context, run func(*engine.Engine) types.Result) types.Result {
	before := s.eng.State.Player.Depth
	res := run(s.eng)
	s.dirty = true

	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(s.eng.State, res)
	}

	if depth := s.eng.State.Player.Depth; depth != before && abs(depth-s.lastPublished) >= PresenceStep {
		s.publish(ctx)
	}
	return res
}

// flush writes the current state if anything changed since the last save.
func (s *Session) flush(ctx context.Context) error {
	if s.store == nil || !s.dirty {
		return nil
	}
	data, err := save.Save(s.eng.Defs, s.eng.State, s.eng.RNG.Seed(), s.eng.RNG.Position())
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := s.store.Save(ctx, s.cfg.Slot, data); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	s.dirty = false
	s.logger.Debug("saved", "bytes", len(data))
	return nil
}

func (s *Session) publish(ctx context.Context) {
	if s.pub == nil {
		return
	}
	p := s.eng.Presence()
	if err := s.pub.Publish(ctx, p); err != nil {
		s.logger.Warn("presence publish failed", "error", err)
		return
	}
	s.lastPublished = p.Depth
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
