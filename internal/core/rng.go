package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding. Every simulation run owns exactly one instance; nothing in the
// core touches global rand state.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewRNGFrom wraps an existing rand source. Used when a resumed run must
// continue the draw sequence of the run it was paused from.
func NewRNGFrom(r *rand.Rand) *RNG {
	return &RNG{r: r}
}

// Bernoulli returns true with probability p.
func (r *RNG) Bernoulli(p float64) bool {
	return r.r.Float64() < p
}

// Float64 returns a uniform draw from [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform draw from [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	r.r.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
