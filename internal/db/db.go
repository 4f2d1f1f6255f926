// Package db is the PostgreSQL save layer for battle reports.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/autobattle/internal/config"
	"github.com/udisondev/autobattle/internal/db/migrations"
)

// DB owns the report store pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL. Batch workers save concurrently, so the pool is
// sized by cfg.MaxConns when set.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &DB{pool: pool}, nil
}

// Migrate brings the report schema up to date.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, d.pool)
}

func (d *DB) Close() {
	d.pool.Close()
}

// Battles returns the battle report repository backed by this DB.
func (d *DB) Battles() *BattleRepository {
	return NewBattleRepository(d.pool)
}
