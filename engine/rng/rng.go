// Package rng is the random-number port consumed by the simulation.
// Every probabilistic rule draws from a Source; nothing reads global state.
package rng

import "math/rand"

// Source yields uniform samples in [0, 1).
type Source interface {
	Next() float64
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, enabling save/restore.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Next returns a uniform sample in [0, 1).
func (r *RNG) Next() float64 {
	r.pos++
	return r.src.Float64()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of samples drawn since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Float64()
	}
	r.pos = position
	return r
}

// Sequence replays fixed samples in order, wrapping around when exhausted.
// An empty Sequence always yields 0.
type Sequence struct {
	values []float64
	i      int
}

// Fixed returns a Sequence over values.
func Fixed(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Next returns the next fixed sample.
func (s *Sequence) Next() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

// Drawn returns how many samples have been consumed.
func (s *Sequence) Drawn() int {
	return s.i
}

// Band is one row of a cumulative probability table: rolls below Upto
// (and at or above the previous row's Upto) select Value.
type Band[T any] struct {
	Upto  float64
	Value T
}

// Pick returns the value of the first band whose threshold exceeds roll.
// Bands must be ordered by ascending Upto. ok is false when roll falls
// past the last band.
func Pick[T any](roll float64, bands []Band[T]) (value T, ok bool) {
	for _, b := range bands {
		if roll < b.Upto {
			return b.Value, true
		}
	}
	return value, false
}

// Index draws a uniform index in [0, n). n must be positive.
func Index(src Source, n int) int {
	i := int(src.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
