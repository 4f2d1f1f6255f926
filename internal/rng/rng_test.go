package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNew_ZeroSeedMapped(t *testing.T) {
	a, b := New(0), New(1)
	assert.Equal(t, a.Uint64(), b.Uint64())
}

func TestPercent_Bounds(t *testing.T) {
	src := New(7)
	for range 50 {
		assert.False(t, Percent(src, 0))
		assert.True(t, Percent(src, 100))
	}
}

func TestBetween(t *testing.T) {
	src := New(3)
	for range 200 {
		v := Between(src, 1, 3)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
	}
	assert.Equal(t, 5, Between(src, 5, 2))
}

func TestDerive_Distinct(t *testing.T) {
	assert.NotEqual(t, Derive(1, 0), Derive(1, 1))
	assert.Equal(t, uint64(1), Derive(1, 0))
}
