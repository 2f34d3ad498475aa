package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB implementation of Store[S].
//
// It uses the same graph_steps layout as SQLiteStore. State is kept as text
// rather than a JSON column because MySQL reorders JSON object keys.
type MySQLStore[S any] struct {
	sqlStore[S]
}

// NewMySQLStore connects to the database named by dsn and creates the schema.
//
// DSN format:
//
//	user:password@tcp(localhost:3306)/workflows?parseTime=true
//
// Never hardcode credentials; read the DSN from the environment or config.
func NewMySQLStore[S any](dsn string) (*MySQLStore[S], error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	s := &MySQLStore[S]{
		sqlStore: sqlStore[S]{
			db: db,
			dialect: sqlDialect{
				schema: []string{`
					CREATE TABLE IF NOT EXISTS graph_steps (
						id BIGINT AUTO_INCREMENT PRIMARY KEY,
						run_id VARCHAR(255) NOT NULL,
						step INT NOT NULL,
						node_id VARCHAR(255) NOT NULL,
						state LONGTEXT NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						UNIQUE KEY unique_run_step (run_id, step)
					) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
				},
				upsert: `
					INSERT INTO graph_steps (run_id, step, node_id, state)
					VALUES (?, ?, ?, ?)
					ON DUPLICATE KEY UPDATE
						node_id = VALUES(node_id),
						state = VALUES(state)`,
			},
		},
	}

	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Stats returns connection pool statistics.
func (m *MySQLStore[S]) Stats() sql.DBStats {
	return m.db.Stats()
}
