package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// sqlDialect holds the statements that differ between SQL backends.
type sqlDialect struct {
	schema []string
	upsert string
}

// sqlStore implements Store[S] on top of database/sql. SQLiteStore and
// MySQLStore embed it with their own dialect.
type sqlStore[S any] struct {
	db      *sql.DB
	dialect sqlDialect
	mu      sync.RWMutex
	closed  bool
}

func (s *sqlStore[S]) createTables(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (s *sqlStore[S]) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// SaveStep inserts or replaces the record for (runID, step).
func (s *sqlStore[S]) SaveStep(ctx context.Context, runID string, step int, nodeID string, state S) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, runID, step, nodeID, string(stateJSON)); err != nil {
		return fmt.Errorf("failed to save step: %w", err)
	}
	return nil
}

// LoadLatest returns the highest-numbered step of runID.
func (s *sqlStore[S]) LoadLatest(ctx context.Context, runID string) (state S, step int, err error) {
	var zero S
	if err := s.checkOpen(); err != nil {
		return zero, 0, err
	}

	query := `
		SELECT step, state
		FROM graph_steps
		WHERE run_id = ?
		ORDER BY step DESC
		LIMIT 1
	`

	var stateJSON string
	err = s.db.QueryRowContext(ctx, query, runID).Scan(&step, &stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, 0, ErrNotFound
	}
	if err != nil {
		return zero, 0, fmt.Errorf("failed to load latest step: %w", err)
	}

	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return zero, 0, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return state, step, nil
}

// History returns every recorded step of runID ordered by step number.
func (s *sqlStore[S]) History(ctx context.Context, runID string) ([]StepRecord[S], error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := `
		SELECT step, node_id, state
		FROM graph_steps
		WHERE run_id = ?
		ORDER BY step ASC
	`
	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []StepRecord[S]
	for rows.Next() {
		var (
			record    StepRecord[S]
			stateJSON string
		)
		if err := rows.Scan(&record.Step, &record.NodeID, &stateJSON); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(stateJSON), &record.State); err != nil {
			return nil, fmt.Errorf("failed to unmarshal state of step %d: %w", record.Step, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// Runs returns the recorded run IDs in lexical order.
func (s *sqlStore[S]) Runs(ctx context.Context) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT run_id FROM graph_steps ORDER BY run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

// Close closes the database. Closing twice is a no-op.
func (s *sqlStore[S]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *sqlStore[S]) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}
