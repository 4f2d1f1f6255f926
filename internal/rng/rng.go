// Package rng provides the single seedable random source of a battle.
package rng

import "math/rand/v2"

// Source is the sequential random source every roll of a battle draws from.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a PCG-backed source. Seed 0 is mapped to 1.
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Derive returns the seed of the i-th battle of a batch seeded with base.
func Derive(base uint64, i int) uint64 {
	return base + uint64(i)*7919
}

// Percent rolls a percent chance in [0, 100].
func Percent(src Source, chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return src.IntN(100) < chance
}

// Between returns a value in [lo, hi]. hi < lo yields lo.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
