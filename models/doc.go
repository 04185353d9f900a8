// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - User: local account keyed by the Discord identity (discordId)
  - Category: award category, owns nominees
  - Nominee: candidate within exactly one category
  - Ballot: one user's choice (or skip) for one category
  - Selection: the payload form of a ballot, a nominee id or "skip"

# Request Types

  - CategoryInput: title, code, description
  - NomineeInput: name, desc, role, imageUrl
  - SubmitVotesRequest: votes (categoryId -> nomineeId | "skip")

Inputs carry validator tags; call Normalize then Validate:

	in.Normalize()
	if err := models.Validate(in); err != nil { ... }

Validate returns an apperr invalid_input error naming the JSON field.

# Response Types

  - AuthMeResponse, AuthURLResponse, HealthResponse
  - CategoriesResponse, CategoryMutationResponse, NomineeMutationResponse
  - MyVotesResponse, SubmitVotesResponse
  - CategoryStatsResponse, AllStatsResponse
  - ErrorResponse: error

# Constants

	SkipValue           = "skip"
	DefaultNomineeRole  = "NEW"
*/
package models
