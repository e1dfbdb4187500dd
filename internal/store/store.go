// Package store persists deals and results in Postgres. The server treats
// it as optional: a nil *Store disables persistence.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"patience/engine"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool. Safe on a nil receiver.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.pool.Close()
}

// RecordDeal writes one dealt game. Safe on a nil receiver.
func (s *Store) RecordDeal(ctx context.Context, gameID uuid.UUID, seed int64, v engine.Variant) error {
	if s == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO deals (game_id, seed, variant) VALUES ($1, $2, $3)
		 ON CONFLICT (game_id) DO NOTHING`,
		gameID, seed, v.String())
	if err != nil {
		return fmt.Errorf("store: record deal: %w", err)
	}
	return nil
}

// RecordResult writes the outcome of a finished or abandoned game. Safe on
// a nil receiver.
func (s *Store) RecordResult(ctx context.Context, gameID uuid.UUID, won bool, moveCount uint32, d time.Duration) error {
	if s == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO results (game_id, won, move_count, duration_ms)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (game_id) DO UPDATE
		 SET won = EXCLUDED.won,
		     move_count = EXCLUDED.move_count,
		     duration_ms = EXCLUDED.duration_ms,
		     finished_at = now()`,
		gameID, won, int32(moveCount), d.Milliseconds())
	if err != nil {
		return fmt.Errorf("store: record result: %w", err)
	}
	return nil
}

// SeedStats summarizes how a particular deal has gone for everyone who
// played it.
type SeedStats struct {
	Seed      int64  `json:"seed"`
	Variant   string `json:"variant"`
	Plays     int64  `json:"plays"`
	Wins      int64  `json:"wins"`
	BestMoves int32  `json:"bestMoves,omitempty"`
}

// StatsForSeed aggregates results for one seed and variant. Safe on a nil
// receiver, which reports zero plays.
func (s *Store) StatsForSeed(ctx context.Context, seed int64, v engine.Variant) (SeedStats, error) {
	stats := SeedStats{Seed: seed, Variant: v.String()}
	if s == nil {
		return stats, nil
	}
	err := s.pool.QueryRow(ctx,
		`SELECT count(r.game_id),
		        count(r.game_id) FILTER (WHERE r.won),
		        coalesce(min(r.move_count) FILTER (WHERE r.won), 0)
		 FROM deals d
		 JOIN results r ON r.game_id = d.game_id
		 WHERE d.seed = $1 AND d.variant = $2`,
		seed, v.String()).Scan(&stats.Plays, &stats.Wins, &stats.BestMoves)
	if err != nil {
		return stats, fmt.Errorf("store: seed stats: %w", err)
	}
	return stats, nil
}
