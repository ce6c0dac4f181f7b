package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed scan history.
type Store struct{ db *sql.DB }

//go:embed migrations/*.sql
var migrationFS embed.FS

// Run is one recorded scan.
type Run struct {
	ID        string
	StartedAt time.Time
	Chain     string
	Tier      string
	Fetched   int
	Analyzed  int
	Passed    int
}

// Pick is one ranked token of a recorded scan.
type Pick struct {
	RunID     string
	Position  int
	Symbol    string
	Name      string
	Score     float64
	MarketCap float64
	Price     float64
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema, err := migrationFS.ReadFile("migrations/0001_init.sql")
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("db not initialized")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun records a scan and its ranked picks in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, picks []Pick) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, chain, tier, fetched, analyzed, passed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.Chain, run.Tier, run.Fetched, run.Analyzed, run.Passed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, p := range picks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO picks (run_id, position, symbol, name, score, market_cap, price) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, p.Position, p.Symbol, p.Name, p.Score, p.MarketCap, p.Price,
		); err != nil {
			return fmt.Errorf("insert pick: %w", err)
		}
	}
	return tx.Commit()
}

// Runs returns the most recent scans, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, chain, tier, fetched, analyzed, passed FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Chain, &r.Tier, &r.Fetched, &r.Analyzed, &r.Passed); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Picks returns the ranked picks of one run.
func (s *Store) Picks(ctx context.Context, runID string) ([]Pick, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, position, symbol, name, score, market_cap, price FROM picks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []Pick
	for rows.Next() {
		var p Pick
		if err := rows.Scan(&p.RunID, &p.Position, &p.Symbol, &p.Name, &p.Score, &p.MarketCap, &p.Price); err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}
