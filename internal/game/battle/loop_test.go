package battle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/economy"
	"github.com/udisondev/autobattle/internal/event"
	"github.com/udisondev/autobattle/internal/game/combat"
	"github.com/udisondev/autobattle/internal/game/status"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/testutil"
)

func newTestLoop(t *testing.T, opts Options) *Loop {
	t.Helper()
	if opts.Combat == (config.Combat{}) {
		opts.Combat = config.DefaultCombat()
	}
	l := New(opts)
	require.Equal(t, StateNotStarted, l.State())
	return l
}

func runToEnd(t *testing.T, l *Loop) {
	t.Helper()
	for range 10_000 {
		more, err := l.Step()
		require.NoError(t, err)
		if !more {
			return
		}
	}
	t.Fatal("battle did not end")
}

func transcript(l *Loop) []string {
	var out []string
	for _, r := range l.Transcript().Records() {
		out = append(out, r.String())
	}
	return out
}

func TestLoop_GoldenScenario(t *testing.T) {
	b := testutil.NewRosterBuilder()
	player := b.Player(testutil.Fixtures.UnitA)
	opponent := b.Opponent(testutil.Fixtures.UnitB)

	l := newTestLoop(t, Options{Seed: 1})
	require.NoError(t, l.Start(player, opponent))
	assert.Equal(t, StateRunning, l.State())

	runToEnd(t, l)

	assert.Equal(t, StateEnded, l.State())
	assert.Equal(t, model.OutcomeVictory, l.Outcome())
	assert.Equal(t, 2, l.Round())
	assert.Equal(t, 12, player[0].Health())
	assert.Equal(t, 0, opponent[0].Health())

	assert.Equal(t, []string{
		"r1 turn_start",
		"r1 damage_dealt A#1(player)->B#2(opponent) 10",
		"r1 damage_dealt B#2(opponent)->A#1(player) 8",
		"r1 turn_end",
		"r2 turn_start",
		"r2 damage_dealt A#1(player)->B#2(opponent) 10",
		"r2 turn_end",
		"r2 battle_end victory",
	}, transcript(l))
}

func TestLoop_DrawAtRoundCap(t *testing.T) {
	b := testutil.NewRosterBuilder()
	player := b.Player(testutil.Fixtures.Pacifist)
	opponent := b.Opponent(testutil.Fixtures.Pacifist)

	l := newTestLoop(t, Options{Rules: config.DefaultBattle()})
	require.NoError(t, l.Start(player, opponent))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeDraw, l.Outcome())
	assert.Equal(t, 100, l.Round())
	assert.Equal(t, 900, player[0].Health(), "damage floor of 1 per hit")
	assert.Len(t, l.Transcript().Filter(event.KindBattleEnd), 1)
}

func TestLoop_CustomRoundCap(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{Rules: config.Battle{MaxRounds: 3}})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.Pacifist), b.Opponent(testutil.Fixtures.Pacifist)))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeDraw, l.Outcome())
	assert.Equal(t, 3, l.Round())
}

func TestLoop_BonusSlots(t *testing.T) {
	b := testutil.NewRosterBuilder()
	player := b.Player(testutil.Spec("hare", 5, 100, 10))
	opponent := b.Opponent(testutil.Spec("turtle", 1, 20, 5))

	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(player, opponent))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeVictory, l.Outcome())
	assert.Equal(t, 2, l.Round())
	assert.Len(t, l.Transcript().Filter(event.KindDamageDealt), 5)
	assert.Equal(t, 99, player[0].Health())
}

func TestLoop_DefeatAndSimultaneousWipe(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Spec("p", 1, 5, 1)), b.Opponent(testutil.Spec("o", 10, 50, 5))))
	runToEnd(t, l)
	assert.Equal(t, model.OutcomeDefeat, l.Outcome())

	// Both sides burn to death on the same round-start tick.
	b = testutil.NewRosterBuilder()
	player := b.Player(testutil.Spec("p", 1, 2, 1))
	opponent := b.Opponent(testutil.Spec("o", 1, 2, 1))
	for _, u := range []*model.Unit{player[0], opponent[0]} {
		u.Status().Apply(u.Status().NewEffect(status.Burn))
	}
	l = newTestLoop(t, Options{})
	require.NoError(t, l.Start(player, opponent))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeDraw, l.Outcome())
	assert.Equal(t, 1, l.Round())
	assert.Equal(t, []string{"r1 turn_start", "r1 turn_end", "r1 battle_end draw"}, transcript(l))
}

func TestLoop_TickDeathDecidesBeforeSlots(t *testing.T) {
	b := testutil.NewRosterBuilder()
	player := b.Player(testutil.Spec("p", 10, 2, 9))
	opponent := b.Opponent(testutil.Spec("o", 1, 50, 1))
	player[0].Status().Apply(player[0].Status().NewEffect(status.Burn))

	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(player, opponent))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeDefeat, l.Outcome())
	assert.Empty(t, l.Transcript().Filter(event.KindDamageDealt))
}

func TestLoop_Deterministic(t *testing.T) {
	run := func() ([]byte, model.Outcome, int) {
		b := testutil.NewRosterBuilder()
		player := b.Player(
			model.UnitSpec{Name: "dice", Attack: 3, Health: 40, Speed: 6, Evolution: model.EvolutionGambler},
			model.UnitSpec{Name: "axe", Attack: 4, Health: 30, Speed: 4, Evolution: model.EvolutionBerserker},
		)
		opponent := b.Opponent(
			model.UnitSpec{Name: "storm", Attack: 3, Health: 45, Speed: 5, Elements: []model.Element{model.ElementLightning}},
			model.UnitSpec{Name: "necro", Attack: 2, Health: 30, Speed: 3, Evolution: model.EvolutionNecromancer},
		)
		l := newTestLoop(t, Options{Seed: 7})
		require.NoError(t, l.Start(player, opponent))
		runToEnd(t, l)
		r := l.Report()
		return r.Digest, r.Outcome, r.Rounds
	}

	d1, o1, r1 := run()
	d2, o2, r2 := run()
	assert.Equal(t, d1, d2)
	assert.Equal(t, o1, o2)
	assert.Equal(t, r1, r2)
}

func TestLoop_SurrenderBetweenSlots(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.Pacifist), b.Opponent(testutil.Fixtures.Pacifist)))

	more, err := l.Step()
	require.NoError(t, err)
	require.True(t, more)
	require.True(t, l.RoundOpen())

	require.NoError(t, l.Surrender(model.SidePlayer))
	require.NoError(t, l.Surrender(model.SideOpponent), "later requests are ignored")

	more, err = l.Step()
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, model.OutcomeDefeat, l.Outcome())
	assert.True(t, l.Report().Surrender)

	records := transcript(l)
	assert.Equal(t, []string{"r1 turn_end", "r1 battle_end defeat"}, records[len(records)-2:])
	assert.Len(t, l.Transcript().Filter(event.KindDamageDealt), 1, "second slot never ran")

	assert.ErrorIs(t, l.Surrender(model.SidePlayer), ErrNotRunning)
	_, err = l.Step()
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestLoop_OpponentSurrenderIsVictory(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.Pacifist), b.Opponent(testutil.Fixtures.Pacifist)))

	require.NoError(t, l.Surrender(model.SideOpponent))
	more, err := l.Step()
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, model.OutcomeVictory, l.Outcome())
	assert.Equal(t, 0, l.Round())
}

func TestLoop_StartTwice(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.UnitA), b.Opponent(testutil.Fixtures.UnitB)))
	assert.ErrorIs(t, l.Start(nil, nil), ErrAlreadyStarted)
}

func TestLoop_StepBeforeStart(t *testing.T) {
	l := newTestLoop(t, Options{})
	_, err := l.Step()
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.ErrorIs(t, l.Surrender(model.SidePlayer), ErrNotRunning)
}

func TestLoop_EmptyRosterDecidesAtStart(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.UnitA), nil))

	assert.Equal(t, StateEnded, l.State())
	assert.Equal(t, model.OutcomeVictory, l.Outcome())
	assert.Equal(t, 0, l.Round())
}

func TestLoop_ListenerReceivesEvents(t *testing.T) {
	b := testutil.NewRosterBuilder()
	external := event.NewLog()
	l := newTestLoop(t, Options{Listener: external})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.UnitA), b.Opponent(testutil.Fixtures.UnitB)))
	runToEnd(t, l)

	assert.Equal(t, l.Transcript().Records(), external.Records())
}

func TestLoop_TurnEndIncomeOnEarlyExit(t *testing.T) {
	b := testutil.NewRosterBuilder()
	player := b.Player(model.UnitSpec{Name: "trader", Attack: 50, Health: 10, Speed: 5, Evolution: model.EvolutionNegotiator})
	opponent := b.Opponent(testutil.Spec("o", 1, 10, 1))
	purse := economy.NewPurse(0)

	l := newTestLoop(t, Options{Wallets: combat.Wallets{Player: purse}})
	require.NoError(t, l.Start(player, opponent))
	runToEnd(t, l)

	assert.Equal(t, model.OutcomeVictory, l.Outcome())
	assert.Equal(t, 1, l.Round())
	assert.GreaterOrEqual(t, purse.Gold(), 1, "income paid when the battle ends mid-round")
}

func TestLoop_Report(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{Seed: 99})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.UnitA), b.Opponent(testutil.Fixtures.UnitB)))
	runToEnd(t, l)

	r := l.Report()
	assert.Equal(t, l.ID().String(), r.ID)
	assert.Equal(t, uint64(99), r.Seed)
	assert.Equal(t, model.OutcomeVictory, r.Outcome)
	assert.Len(t, r.Digest, 32)
	assert.False(t, r.FinishedAt.Before(r.StartedAt))
	require.Len(t, r.Units, 2)
	assert.Equal(t, 15, r.Units[0].DamageDealt)
	assert.Equal(t, 8, r.Units[0].DamageTaken)
	assert.False(t, r.Units[1].Alive)
}

func TestRun_ZeroDelayMatchesPaced(t *testing.T) {
	run := func(pacing config.Pacing) []byte {
		b := testutil.NewRosterBuilder()
		l := newTestLoop(t, Options{Seed: 3})
		require.NoError(t, l.Start(b.Player(testutil.Fixtures.UnitA), b.Opponent(testutil.Fixtures.UnitB)))
		out, err := l.Run(context.Background(), pacing)
		require.NoError(t, err)
		require.Equal(t, model.OutcomeVictory, out)
		return l.Report().Digest
	}

	assert.Equal(t, run(config.Pacing{}), run(config.Pacing{SlotDelay: time.Millisecond, RoundDelay: 2 * time.Millisecond}))
}

func TestRun_CancelConcedes(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.Pacifist), b.Opponent(testutil.Fixtures.Pacifist)))

	out, err := l.Run(testutil.CancelledContext(t), config.Pacing{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, model.OutcomeDefeat, out)
	assert.True(t, l.Report().Surrender)
}

func TestRun_CancelDuringDelay(t *testing.T) {
	b := testutil.NewRosterBuilder()
	l := newTestLoop(t, Options{})
	require.NoError(t, l.Start(b.Player(testutil.Fixtures.Pacifist), b.Opponent(testutil.Fixtures.Pacifist)))

	out, err := l.Run(testutil.ContextWithTimeout(t, 20*time.Millisecond), config.Pacing{SlotDelay: time.Hour})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, model.OutcomeDefeat, out)
	assert.Len(t, l.Transcript().Filter(event.KindDamageDealt), 1)
}
