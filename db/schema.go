// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// drivers maps a configured database type to its database/sql driver name
var drivers = map[string]string{
	"sqlite":   "sqlite",
	"postgres": "postgres",
}

// Open connects to the database of the given type and verifies the
// connection.
func Open(dbType, url string) (*sqlx.DB, error) {
	driver, ok := drivers[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if dbType == "sqlite" {
		// One writer; avoids SQLITE_BUSY between pooled connections
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are written by the application so the same statements run on
// SQLite and PostgreSQL.
const schema = `
-- Candidate participations
CREATE TABLE IF NOT EXISTS candidate_participation (
    id TEXT PRIMARY KEY,
    candidate_name TEXT NOT NULL,
    election_type TEXT NOT NULL,
    level TEXT NOT NULL,
    position_path TEXT NOT NULL,
    category TEXT NOT NULL,
    subcategory TEXT NOT NULL DEFAULT '',
    nested_category TEXT NOT NULL DEFAULT '',
    position TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_participation_path ON candidate_participation(position_path);
CREATE INDEX IF NOT EXISTS idx_candidate_participation_type_level ON candidate_participation(election_type, level);
`
