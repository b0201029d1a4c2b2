// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open picks the driver from the configured database type and pings:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are sqlite (modernc.org/sqlite, pure Go) and postgres
(github.com/lib/pq).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn.DB); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidate_participation: one candidacy per row, keyed by id, holding the
    canonical position_path and the office fields it was built from

# Indexes

  - candidate_participation.position_path
  - candidate_participation.(election_type, level)
*/
package db
