package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/autobattle/internal/model"
)

// OutcomeStats counts stored battles per outcome.
type OutcomeStats struct {
	Victories int
	Defeats   int
	Draws     int
}

// Total returns the number of decided battles.
func (s OutcomeStats) Total() int {
	return s.Victories + s.Defeats + s.Draws
}

// BattleRepository stores battle reports.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// Save stores report with its unit lines in one transaction.
// Saving the same battle id again is a no-op; the returned bool reports
// whether the report was inserted. Distinct battles with equal transcripts
// are stored separately.
func (r *BattleRepository) Save(ctx context.Context, report model.BattleReport) (bool, error) {
	id, err := uuid.Parse(report.ID)
	if err != nil {
		return false, fmt.Errorf("parsing battle id %q: %w", report.ID, err)
	}

	inserted := false
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`INSERT INTO battles (id, seed, outcome, rounds, surrender, digest, started_at, finished_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			id, int64(report.Seed), int16(report.Outcome), report.Rounds, report.Surrender,
			report.Digest, report.StartedAt, report.FinishedAt)
		if err != nil {
			return fmt.Errorf("insert battle: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		inserted = true

		batch := &pgx.Batch{}
		for _, u := range report.Units {
			batch.Queue(
				`INSERT INTO battle_units
				   (battle_id, unit_id, name, side, evolution, summoned, alive, damage_dealt, damage_taken)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				id, u.UnitID, u.Name, int16(u.Side), int16(u.Evolution),
				u.Summoned, u.Alive, u.DamageDealt, u.DamageTaken)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert battle units: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("saving battle %s: %w", report.ID, err)
	}
	return inserted, nil
}

// Get loads a report by id. Returns nil, nil if it does not exist.
func (r *BattleRepository) Get(ctx context.Context, id string) (*model.BattleReport, error) {
	bid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing battle id %q: %w", id, err)
	}

	var (
		report  model.BattleReport
		seed    int64
		outcome int16
	)
	err = r.pool.QueryRow(ctx,
		`SELECT seed, outcome, rounds, surrender, digest, started_at, finished_at
		 FROM battles WHERE id = $1`, bid,
	).Scan(&seed, &outcome, &report.Rounds, &report.Surrender, &report.Digest,
		&report.StartedAt, &report.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query battle %s: %w", id, err)
	}
	report.ID = bid.String()
	report.Seed = uint64(seed)
	report.Outcome = model.Outcome(outcome)

	rows, err := r.pool.Query(ctx,
		`SELECT unit_id, name, side, evolution, summoned, alive, damage_dealt, damage_taken
		 FROM battle_units WHERE battle_id = $1 ORDER BY unit_id`, bid)
	if err != nil {
		return nil, fmt.Errorf("query battle units %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			u         model.UnitReport
			side, evo int16
		)
		if err := rows.Scan(&u.UnitID, &u.Name, &side, &evo, &u.Summoned, &u.Alive,
			&u.DamageDealt, &u.DamageTaken); err != nil {
			return nil, fmt.Errorf("scan battle unit: %w", err)
		}
		u.Side = model.Side(side)
		u.Evolution = model.Evolution(evo)
		report.Units = append(report.Units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battle units: %w", err)
	}
	return &report, nil
}

// Stats counts stored battles per outcome.
func (r *BattleRepository) Stats(ctx context.Context) (OutcomeStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT outcome, COUNT(*) FROM battles GROUP BY outcome`)
	if err != nil {
		return OutcomeStats{}, fmt.Errorf("query battle stats: %w", err)
	}
	defer rows.Close()

	var s OutcomeStats
	for rows.Next() {
		var (
			outcome int16
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return OutcomeStats{}, fmt.Errorf("scan battle stats: %w", err)
		}
		switch model.Outcome(outcome) {
		case model.OutcomeVictory:
			s.Victories = n
		case model.OutcomeDefeat:
			s.Defeats = n
		case model.OutcomeDraw:
			s.Draws = n
		}
	}
	return s, rows.Err()
}
