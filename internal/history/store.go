// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records each pipeline cycle in a SQLite database so runs
// can be reviewed after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/daily-problem/pkg/types"
)

const defaultLimit = 20

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the cycle history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and its schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			stage TEXT NOT NULL,
			title TEXT,
			difficulty TEXT,
			path TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_started_at ON cycles(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_status ON cycles(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewID returns a fresh cycle ID.
func NewID() string {
	return uuid.NewString()
}

// Record inserts or replaces a cycle. An empty ID is assigned one.
func (s *Store) Record(ctx context.Context, c *types.Cycle) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	finished := ""
	if !c.FinishedAt.IsZero() {
		finished = c.FinishedAt.UTC().Format(timeLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (id, started_at, finished_at, status, stage, title, difficulty, path, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			started_at=excluded.started_at, finished_at=excluded.finished_at,
			status=excluded.status, stage=excluded.stage, title=excluded.title,
			difficulty=excluded.difficulty, path=excluded.path, error=excluded.error`,
		c.ID, c.StartedAt.UTC().Format(timeLayout), finished,
		string(c.Status), string(c.Stage), c.Title, string(c.Difficulty), c.Path, c.Error,
	)
	if err != nil {
		return fmt.Errorf("recording cycle %s: %w", c.ID, err)
	}
	return nil
}

// QueryOptions filters List.
type QueryOptions struct {
	// Status limits results to one outcome. Empty means all.
	Status types.CycleStatus

	// Limit caps the number of results (default 20). Negative means no cap.
	Limit int
}

// List returns cycles, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.Cycle, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	query := `SELECT id, started_at, finished_at, status, stage, title, difficulty, path, error FROM cycles`
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY started_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cycles: %w", err)
	}
	defer rows.Close()

	var cycles []types.Cycle
	for rows.Next() {
		var (
			c                   types.Cycle
			started, finished   string
			status, stage, diff string
		)
		if err := rows.Scan(&c.ID, &started, &finished, &status, &stage, &c.Title, &diff, &c.Path, &c.Error); err != nil {
			return nil, fmt.Errorf("scanning cycle: %w", err)
		}
		c.Status = types.CycleStatus(status)
		c.Stage = types.Stage(stage)
		c.Difficulty = types.Difficulty(diff)
		if c.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at of %s: %w", c.ID, err)
		}
		if finished != "" {
			if c.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
				return nil, fmt.Errorf("parsing finished_at of %s: %w", c.ID, err)
			}
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// Last returns the most recent cycle, or nil when none is recorded.
func (s *Store) Last(ctx context.Context) (*types.Cycle, error) {
	cycles, err := s.List(ctx, QueryOptions{Limit: 1})
	if err != nil || len(cycles) == 0 {
		return nil, err
	}
	return &cycles[0], nil
}
