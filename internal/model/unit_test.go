package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/game/status"
)

func newTestUnit(t *testing.T, spec UnitSpec) *Unit {
	t.Helper()
	u := NewUnit(1, spec, config.DefaultStatus())
	require.NotNil(t, u)
	return u
}

func TestNewUnit_Defaults(t *testing.T) {
	u := newTestUnit(t, UnitSpec{
		Name:     "Knight",
		Attack:   10,
		Health:   20,
		Speed:    5,
		Elements: []Element{ElementIce, ElementNone, ElementFire, ElementIce},
	})

	assert.Equal(t, "Knight", u.Name())
	assert.Equal(t, 10, u.Attack())
	assert.Equal(t, 20, u.Health())
	assert.Equal(t, 20, u.MaxHealth())
	assert.Equal(t, 5, u.Speed())
	assert.True(t, u.IsAlive())
	assert.Equal(t, []Element{ElementIce, ElementFire}, u.Elements())
}

func TestNewUnit_ClampsHealthAndSpeed(t *testing.T) {
	u := newTestUnit(t, UnitSpec{Attack: 1, Health: 50, MaxHealth: 30, Speed: -4})

	assert.Equal(t, 30, u.Health())
	assert.Equal(t, 0, u.Speed())
}

func TestTakeDamage_ClampsAtZero(t *testing.T) {
	u := newTestUnit(t, UnitSpec{Attack: 1, Health: 10, Speed: 1})

	assert.Equal(t, 4, u.TakeDamage(4))
	assert.Equal(t, 6, u.Health())

	assert.Equal(t, 6, u.TakeDamage(100))
	assert.Equal(t, 0, u.Health())
	assert.False(t, u.IsAlive())

	assert.Equal(t, 0, u.TakeDamage(5), "dead units take no damage")
	assert.Equal(t, 10, u.DamageTaken())
}

func TestTakeDamage_SoulDiesOnNextHit(t *testing.T) {
	u := newTestUnit(t, UnitSpec{Attack: 1, Health: 500, Speed: 1})
	u.Status().Apply(u.Status().NewEffect(status.Soul))

	assert.Equal(t, 500, u.TakeDamage(1))
	assert.False(t, u.IsAlive())
}

func TestMarkDead_Once(t *testing.T) {
	u := newTestUnit(t, UnitSpec{Attack: 1, Health: 2, Speed: 1})

	assert.False(t, u.MarkDead(), "alive unit cannot be marked dead")

	u.TakeDamage(2)
	assert.True(t, u.MarkDead())
	assert.False(t, u.MarkDead())
}

func TestParseElement(t *testing.T) {
	e, err := ParseElement("Lightning")
	require.NoError(t, err)
	assert.Equal(t, ElementLightning, e)

	_, err = ParseElement("plasma")
	assert.Error(t, err)
}

func TestParseEvolution(t *testing.T) {
	e, ok := ParseEvolution("GAMBLER")
	assert.True(t, ok)
	assert.Equal(t, EvolutionGambler, e)

	e, ok = ParseEvolution("")
	assert.True(t, ok)
	assert.Equal(t, EvolutionNone, e)

	_, ok = ParseEvolution("alchemist")
	assert.False(t, ok)
}

func TestSide_Other(t *testing.T) {
	assert.Equal(t, SideOpponent, SidePlayer.Other())
	assert.Equal(t, SidePlayer, SideOpponent.Other())
}
