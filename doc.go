// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chillville Awards API server.

Chillville Awards lets members of a Discord community sign in through
Supabase, browse award categories and cast one vote (or an explicit skip)
per category. Admins manage the catalog and read the global tallies.

# Starting the Server

Configuration comes from the environment (a .env file is loaded if
present) and can be overridden with flags:

	DATABASE_URL=awards.db SUPABASE_JWT_SECRET=... go run .

	go run . -p 3000 -t postgres -d "postgres://..."

Seed the demo categories and exit:

	go run . -seed

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file/DSN or PostgreSQL connection string
  - SUPABASE_JWT_SECRET, or SUPABASE_URL with SUPABASE_SERVICE_ROLE_KEY

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_DISCORD_IDS: comma-separated Discord ids with admin rights
  - FRONTEND_URL: allowed CORS origin and OAuth redirect base
  - REQUEST_TIMEOUT, LOG_LEVEL

# Architecture

  - handlers: HTTP request handlers (auth, categories, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth gates, JSON helpers
  - auth: Session verification and identity resolution
  - store: Users, catalog, ballots and tallies over sqlx
  - models: Domain, request and response types
  - apperr: Error kinds and their HTTP mapping
  - metrics: Prometheus collectors
  - db: Connection and schema creation
  - seed: Demo data
  - cliparse: Configuration parsing
*/
package main
