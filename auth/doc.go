// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves Supabase sessions to local users and holds the admin
allow-list.

# Session Verification

Tokens arrive as "Authorization: Bearer <token>". Two verifiers exist:

  - JWTVerifier: HS256 check with SUPABASE_JWT_SECRET, no network
  - GoTrueVerifier: GET {SUPABASE_URL}/auth/v1/user with the service key

NewVerifier picks the JWT verifier whenever a secret is configured.

# Identity Extraction

A verified Session is reduced to a Discord identity with ordered extractors,
first non-empty value wins:

	external id: provider_id, sub, provider user id
	name:        full_name, preferred_username, name, email local part, "User"
	avatar:      avatar_url, picture, none

# Resolving Users

	resolver := auth.NewResolver(verifier, store.NewUsers(db))
	user, err := resolver.Resolve(ctx, token)

The user row is created on first sight only; name and avatar are not refreshed
on later logins.

# Admin Allow-list

	admins := auth.NewAllowlist(cfg.AdminDiscordIDs)
	admins.Contains(user.DiscordID)
*/
package auth
