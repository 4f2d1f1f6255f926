package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/stat"
)

// testBearer is a minimal Bearer for table tests.
type testBearer struct {
	stats *stat.Sheet
	soul  func() bool
}

func newTestBearer(attack, health, speed float64) *testBearer {
	return &testBearer{stats: stat.NewSheet(attack, health, health, speed)}
}

func (b *testBearer) Name() string       { return "bearer" }
func (b *testBearer) Stats() *stat.Sheet { return b.stats }
func (b *testBearer) IsAlive() bool      { return b.stats.Int(stat.Health) > 0 }
func (b *testBearer) TakeDamage(amount int) int {
	hp := b.stats.Int(stat.Health)
	if b.soul != nil && b.soul() {
		amount = hp
	}
	if amount > hp {
		amount = hp
	}
	b.stats.SetBase(stat.Health, float64(hp-amount))
	return amount
}

func newTestTable(t *testing.T, attack, health, speed float64) (*Table, *testBearer) {
	t.Helper()
	b := newTestBearer(attack, health, speed)
	return NewTable(b, config.DefaultStatus()), b
}

func TestApply_MergeStacksAndDuration(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 5)

	tbl.Apply(Effect{Type: Burn, Duration: 3, Stack: 1})
	tbl.Apply(Effect{Type: Burn, Duration: 2, Stack: 2})

	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, 3, tbl.StackOf(Burn))
	d, ok := tbl.DurationOf(Burn)
	require.True(t, ok)
	assert.Equal(t, 3, d, "longer duration wins")

	tbl.Apply(Effect{Type: Burn, Duration: 5, Stack: 1})
	d, _ = tbl.DurationOf(Burn)
	assert.Equal(t, 5, d)
	assert.Equal(t, 4, tbl.StackOf(Burn))
}

func TestApply_IndefiniteWins(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 5)

	tbl.Apply(Effect{Type: Madness, Duration: 3, Stack: 1})
	tbl.Apply(Effect{Type: Madness, Duration: Indefinite, Stack: 1})

	d, _ := tbl.DurationOf(Madness)
	assert.Equal(t, Indefinite, d)

	tbl.Apply(Effect{Type: Madness, Duration: 9, Stack: 1})
	d, _ = tbl.DurationOf(Madness)
	assert.Equal(t, Indefinite, d)
}

func TestFreeze_SlowsAndRestores(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 9)

	tbl.Apply(tbl.NewEffect(Freeze))
	assert.Equal(t, 7, b.stats.Int(stat.Speed))

	tbl.Apply(tbl.NewEffect(Freeze))
	assert.Equal(t, 5, b.stats.Int(stat.Speed), "two stacks slow by 4")

	tbl.Remove(Freeze)
	assert.Equal(t, 9, b.stats.Int(stat.Speed))
	assert.Equal(t, 0, b.stats.Engine(stat.Speed).ModifierCount())
}

func TestFreeze_FloorsAtOne(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 3)

	tbl.Apply(Effect{Type: Freeze, Duration: 2, Stack: 5})
	assert.Equal(t, 1, b.stats.Int(stat.Speed))

	tbl.Remove(Freeze)
	assert.Equal(t, 3, b.stats.Int(stat.Speed))
}

func TestFreeze_NeverRaisesSpeed(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 0)

	tbl.Apply(tbl.NewEffect(Freeze))
	assert.Equal(t, 0, b.stats.Int(stat.Speed))
}

func TestFreeze_ExpiresAfterDuration(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 6)
	tbl.Apply(tbl.NewEffect(Freeze)) // duration 2

	tbl.Tick()
	assert.True(t, tbl.Has(Freeze))
	assert.Equal(t, 4, b.stats.Int(stat.Speed))

	tbl.Tick()
	assert.False(t, tbl.Has(Freeze))
	assert.Equal(t, 6, b.stats.Int(stat.Speed))
}

func TestBurn_TicksDamageTimesStack(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 5)
	tbl.Apply(Effect{Type: Burn, Duration: 3, Stack: 2})

	tbl.Tick()
	assert.Equal(t, 46, b.stats.Int(stat.Health), "2 damage per stack")

	tbl.Tick()
	tbl.Tick()
	assert.Equal(t, 38, b.stats.Int(stat.Health))
	assert.False(t, tbl.Has(Burn))

	tbl.Tick()
	assert.Equal(t, 38, b.stats.Int(stat.Health))
}

func TestLightning_ThreeStacksConvertToStun(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 5)

	for range 3 {
		tbl.Apply(tbl.NewEffect(Lightning))
	}

	assert.True(t, tbl.Has(Stun))
	assert.False(t, tbl.Has(Lightning))
	assert.Equal(t, 0, tbl.StackOf(Lightning))
	assert.Equal(t, 0, b.stats.Int(stat.Speed))
}

func TestLightning_TwoStacksNoStun(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 5)

	tbl.Apply(tbl.NewEffect(Lightning))
	tbl.Apply(tbl.NewEffect(Lightning))

	assert.Equal(t, 2, tbl.StackOf(Lightning))
	assert.False(t, tbl.Has(Stun))

	d, _ := tbl.DurationOf(Lightning)
	assert.Equal(t, Indefinite, d)

	tbl.Tick()
	assert.Equal(t, 2, tbl.StackOf(Lightning), "lightning never expires on its own")
}

func TestStun_RestoresOnlyOwnDelta(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 8)

	// Unrelated speed buff active during the stun.
	b.stats.AddModifier(stat.Speed, stat.Modifier{Kind: stat.Flat, Value: 2, SourceID: 42})
	tbl.Apply(tbl.NewEffect(Freeze))
	require.Equal(t, 8, b.stats.Int(stat.Speed))

	tbl.Apply(tbl.NewEffect(Stun))
	assert.Equal(t, 0, b.stats.Int(stat.Speed))

	tbl.Tick() // stun lasts exactly one tick
	assert.False(t, tbl.Has(Stun))
	assert.Equal(t, 8, b.stats.Int(stat.Speed), "buff and freeze survive the stun")
}

func TestStun_DurationIsFixed(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 8)
	tbl.Apply(Effect{Type: Stun, Duration: 7, Stack: 1})

	d, _ := tbl.DurationOf(Stun)
	assert.Equal(t, 1, d)
}

func TestMadness_BoostsAttackAndReverts(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 5)

	tbl.Apply(tbl.NewEffect(Madness))
	assert.Equal(t, 15, b.stats.Int(stat.Attack))

	tbl.Apply(tbl.NewEffect(Madness))
	assert.Equal(t, 15, b.stats.Int(stat.Attack), "stacking does not compound the modifier")

	for range 3 {
		tbl.Tick()
	}
	assert.False(t, tbl.Has(Madness))
	assert.Equal(t, 10, b.stats.Int(stat.Attack))
}

func TestSoul_IsIndefinite(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 5)
	tbl.Apply(Effect{Type: Soul, Duration: 2, Stack: 1})

	for range 5 {
		tbl.Tick()
	}
	assert.True(t, tbl.Has(Soul))
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 5)

	tbl.Remove(Freeze)
	tbl.Remove(Stun)

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 5, b.stats.Int(stat.Speed))
}

func TestApply_UnknownTypeIgnored(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 5)
	tbl.Apply(Effect{Type: Type(99), Duration: 1, Stack: 1})
	assert.Equal(t, 0, tbl.Len())
}

func TestClear_RemovesAllModifiers(t *testing.T) {
	tbl, b := newTestTable(t, 10, 50, 9)
	tbl.Apply(tbl.NewEffect(Freeze))
	tbl.Apply(tbl.NewEffect(Stun))
	tbl.Apply(tbl.NewEffect(Madness))

	tbl.Clear()

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, b.stats.Engine(stat.Speed).ModifierCount())
	assert.Equal(t, 0, b.stats.Engine(stat.Attack).ModifierCount())
}

func TestActive_TickOrder(t *testing.T) {
	tbl, _ := newTestTable(t, 10, 50, 9)
	tbl.Apply(tbl.NewEffect(Madness))
	tbl.Apply(tbl.NewEffect(Burn))
	tbl.Apply(tbl.NewEffect(Freeze))

	var got []Type
	for _, e := range tbl.Active() {
		got = append(got, e.Type)
	}
	assert.Equal(t, []Type{Freeze, Burn, Madness}, got)
}
