// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Two backends are supported, selected by DATABASE_TYPE:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, used by the tests)

	conn, err := db.Open(ctx, db.TypePostgres, cfg.DatabaseURL)

Queries are written once with $N placeholders, which both drivers accept.

# Tables

  - users: local accounts keyed by discord_id (UNIQUE)
  - categories: award categories
  - nominees: candidates, category_id -> categories
  - votes: one row per (user_id, category_id), nominee_id or is_skip

# Usage

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		return err
	}

CreateSchema is idempotent (IF NOT EXISTS).
*/
package db
