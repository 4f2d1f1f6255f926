package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/autobattle/internal/db/migrations"
	"github.com/udisondev/autobattle/internal/model"
	"github.com/udisondev/autobattle/internal/testutil"
)

func testReport(outcome model.Outcome, digest byte) model.BattleReport {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.BattleReport{
		ID:         uuid.NewString(),
		Seed:       42,
		Outcome:    outcome,
		Rounds:     7,
		Digest:     []byte{digest, 1, 2, 3},
		StartedAt:  start,
		FinishedAt: start.Add(time.Second),
		Units: []model.UnitReport{
			{UnitID: 1, Name: "A", Side: model.SidePlayer, Alive: true, DamageDealt: 20, DamageTaken: 8},
			{UnitID: 2, Name: "B", Side: model.SideOpponent, Evolution: model.EvolutionGambler, DamageDealt: 8, DamageTaken: 15},
			{UnitID: 3, Name: "B", Side: model.SideOpponent, Summoned: true},
		},
	}
}

func TestBattleRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewBattleRepository(pool)
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		testutil.TruncateBattles(t, pool)
		report := testReport(model.OutcomeVictory, 1)

		inserted, err := repo.Save(ctx, report)
		require.NoError(t, err)
		assert.True(t, inserted)

		got, err := repo.Get(ctx, report.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, report.ID, got.ID)
		assert.Equal(t, report.Seed, got.Seed)
		assert.Equal(t, report.Outcome, got.Outcome)
		assert.Equal(t, report.Rounds, got.Rounds)
		assert.Equal(t, report.Digest, got.Digest)
		assert.True(t, report.StartedAt.Equal(got.StartedAt))
		assert.Equal(t, report.Units, got.Units)
	})

	t.Run("resave of same battle is skipped", func(t *testing.T) {
		testutil.TruncateBattles(t, pool)
		report := testReport(model.OutcomeDraw, 2)

		inserted, err := repo.Save(ctx, report)
		require.NoError(t, err)
		require.True(t, inserted)

		report.Rounds = 99
		inserted, err = repo.Save(ctx, report)
		require.NoError(t, err)
		assert.False(t, inserted)

		got, err := repo.Get(ctx, report.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 7, got.Rounds, "first save wins")
	})

	t.Run("equal transcripts of distinct battles are both stored", func(t *testing.T) {
		testutil.TruncateBattles(t, pool)
		first := testReport(model.OutcomeVictory, 3)
		second := testReport(model.OutcomeVictory, 3)
		second.Seed = 43
		require.Equal(t, first.Digest, second.Digest)

		for _, r := range []model.BattleReport{first, second} {
			inserted, err := repo.Save(ctx, r)
			require.NoError(t, err)
			assert.True(t, inserted)
		}

		s, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Victories)
	})

	t.Run("missing", func(t *testing.T) {
		got, err := repo.Get(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = repo.Get(ctx, "not-a-uuid")
		assert.Error(t, err)
	})

	t.Run("stats", func(t *testing.T) {
		testutil.TruncateBattles(t, pool)
		for i, o := range []model.Outcome{model.OutcomeVictory, model.OutcomeVictory, model.OutcomeDefeat, model.OutcomeDraw} {
			_, err := repo.Save(ctx, testReport(o, byte(10+i)))
			require.NoError(t, err)
		}

		s, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, OutcomeStats{Victories: 2, Defeats: 1, Draws: 1}, s)
		assert.Equal(t, 4, s.Total())
	})
}

func TestMigrations_UpIsIdempotent(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	require.NoError(t, migrations.Up(ctx, pool))

	var tables int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.tables
		 WHERE table_name IN ('battles', 'battle_units')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}
