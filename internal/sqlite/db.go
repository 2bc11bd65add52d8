package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the cache schema. It is safe to run on every start.
func (db *DB) RunMigrations() error {
	migration := `
-- Last good payload of each store resource
CREATE TABLE IF NOT EXISTS snapshots (
    resource TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    seq INTEGER NOT NULL DEFAULT 0,
    fetched_at TIMESTAMP NOT NULL
);

-- Actions performed through this client
CREATE TABLE IF NOT EXISTS activity_log (
    id TEXT PRIMARY KEY,
    activity_type TEXT NOT NULL,
    actor TEXT NOT NULL,
    subject_id TEXT,
    from_stage INTEGER CHECK(from_stage BETWEEN 0 AND 7),
    to_stage INTEGER CHECK(to_stage BETWEEN 0 AND 7),
    summary TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_subject ON activity_log(subject_id);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
