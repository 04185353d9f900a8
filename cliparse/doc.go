// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from the environment and CLI flags.

# Configuration

ParseFlags returns a validated Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read with struct tags first; flags then override
them:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SEED_DATA     → -seed

# Validation

ParseFlags returns an error when:

  - DATABASE_URL is empty
  - DATABASE_TYPE is not sqlite or postgres
  - neither SUPABASE_JWT_SECRET nor SUPABASE_URL with SUPABASE_SERVICE_ROLE_KEY is set
  - the port or REQUEST_TIMEOUT is out of range
*/
package cliparse
