package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite implementation of Store[S].
//
// History lives in a single table, graph_steps, keyed by (run_id, step), with
// the state stored as JSON text. The database is created and migrated on open.
//
// Path examples:
//   - "./history.db": file in the current directory
//   - ":memory:": in-memory database, lost on Close
type SQLiteStore[S any] struct {
	sqlStore[S]
	path string
}

// NewSQLiteStore opens (creating if needed) a SQLite database at path.
//
// Example:
//
//	history, err := store.NewSQLiteStore[graph.State]("./history.db")
//	if err != nil {
//	    return err
//	}
//	defer history.Close()
func NewSQLiteStore[S any](path string) (*SQLiteStore[S], error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time; a single connection also keeps
	// ":memory:" databases alive for the store's lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &SQLiteStore[S]{
		sqlStore: sqlStore[S]{
			db: db,
			dialect: sqlDialect{
				schema: []string{`
					CREATE TABLE IF NOT EXISTS graph_steps (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						run_id TEXT NOT NULL,
						step INTEGER NOT NULL,
						node_id TEXT NOT NULL,
						state TEXT NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						UNIQUE(run_id, step)
					)`,
				},
				upsert: `
					INSERT INTO graph_steps (run_id, step, node_id, state)
					VALUES (?, ?, ?, ?)
					ON CONFLICT(run_id, step) DO UPDATE SET
						node_id = excluded.node_id,
						state = excluded.state`,
			},
		},
		path: path,
	}

	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database path given to NewSQLiteStore.
func (s *SQLiteStore[S]) Path() string {
	return s.path
}
