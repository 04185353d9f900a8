// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Chillville Awards API.

# Handler Types

  - AuthHandler: session check and the Discord sign-in URL
  - CategoryHandler: catalog reads and admin mutations
  - VotingHandler: a user's ballots and ballot submission
  - ResultsHandler: per-category and global tallies

Handlers are created with the database connection:

	categoryHandler := handlers.NewCategoryHandler(db)

# Voting

	POST /api/votes/submit {"votes": {"1": 5, "2": "skip"}}

Every referenced category and nominee is checked before anything is
written. Each category is then upserted on its own and reported in
results; resubmitting a category replaces the earlier choice.
*/
package handlers
