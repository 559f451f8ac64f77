// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package statestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/repodef"
)

// State is the recorded progress of one operation for one repository.
type State string

const (
	// StatePending means the operation has never completed. Absent
	// records read as pending.
	StatePending State = "pending"
	// StateDone means the operation completed successfully.
	StateDone State = "done"
	// StateFailed means the most recent attempt failed.
	StateFailed State = "failed"
)

// Record is one stored status row.
type Record struct {
	Operation string
	State     State
	Detail    string
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS operation_state (
  repo_name  TEXT NOT NULL,
  repo_date  TEXT NOT NULL,
  operation  TEXT NOT NULL,
  state      TEXT NOT NULL,
  detail     TEXT NOT NULL DEFAULT '',
  updated_at INTEGER NOT NULL,
  PRIMARY KEY (repo_name, repo_date, operation)
);
`

// Store records operation states in a SQLite database file.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open creates or opens the state database at path. Use ":memory:" in
// tests. The caller must Close the store when done.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("statestore: path is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	poolSize := 2
	if path == ":memory:" {
		// Each in-memory connection is an independent database; the
		// pool must stay at one connection to see a single store.
		poolSize = 1
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			pragmas := []string{
				"PRAGMA journal_mode=WAL",
				"PRAGMA synchronous=NORMAL",
				"PRAGMA busy_timeout=5000",
			}
			for _, pragma := range pragmas {
				if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
					return fmt.Errorf("%s: %w", pragma, err)
				}
			}
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("statestore: opening %s: %w", path, err)
	}

	return &Store{pool: pool, logger: logger, path: path}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return fmt.Errorf("statestore: closing %s: %w", s.path, err)
	}
	return nil
}

// Set records the state of an operation for a repository, replacing any
// previous record.
func (s *Store) Set(ctx context.Context, repo repodef.Repo, operation string, state State, detail string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("statestore: set %s %s: %w", repo, operation, err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `
		INSERT INTO operation_state (repo_name, repo_date, operation, state, detail, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (repo_name, repo_date, operation)
		DO UPDATE SET state = excluded.state, detail = excluded.detail, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{
			Args: []any{repo.Name, repo.Date, operation, string(state), detail, time.Now().Unix()},
		})
	if err != nil {
		return fmt.Errorf("statestore: set %s %s: %w", repo, operation, err)
	}

	s.logger.Debug("operation state recorded",
		"repo", repo.String(),
		"operation", operation,
		"state", string(state),
	)
	return nil
}

// Get returns the recorded state of an operation. Operations with no
// record read as pending with empty detail.
func (s *Store) Get(ctx context.Context, repo repodef.Repo, operation string) (Record, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("statestore: get %s %s: %w", repo, operation, err)
	}
	defer s.pool.Put(conn)

	record := Record{Operation: operation, State: StatePending}
	err = sqlitex.Execute(conn, `
		SELECT state, detail, updated_at FROM operation_state
		WHERE repo_name = ? AND repo_date = ? AND operation = ?`,
		&sqlitex.ExecOptions{
			Args: []any{repo.Name, repo.Date, operation},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record.State = State(stmt.ColumnText(0))
				record.Detail = stmt.ColumnText(1)
				record.UpdatedAt = time.Unix(stmt.ColumnInt64(2), 0)
				return nil
			},
		})
	if err != nil {
		return Record{}, fmt.Errorf("statestore: get %s %s: %w", repo, operation, err)
	}
	return record, nil
}

// List returns all recorded states for a repository, ordered by
// operation name.
func (s *Store) List(ctx context.Context, repo repodef.Repo) ([]Record, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("statestore: list %s: %w", repo, err)
	}
	defer s.pool.Put(conn)

	var records []Record
	err = sqlitex.Execute(conn, `
		SELECT operation, state, detail, updated_at FROM operation_state
		WHERE repo_name = ? AND repo_date = ?
		ORDER BY operation`,
		&sqlitex.ExecOptions{
			Args: []any{repo.Name, repo.Date},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				records = append(records, Record{
					Operation: stmt.ColumnText(0),
					State:     State(stmt.ColumnText(1)),
					Detail:    stmt.ColumnText(2),
					UpdatedAt: time.Unix(stmt.ColumnInt64(3), 0),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("statestore: list %s: %w", repo, err)
	}
	return records, nil
}
