package engine

import (
	"math/rand"

	"github.com/nathoo/epicquest/types"
)

// Source is the randomness the engine draws from. *RNG satisfies it; tests
// inject scripted sources.
type Source = types.Source

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position counts draws; with the seed it identifies where a session stands.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
