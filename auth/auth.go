// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/cliparse"
)

var (
	ErrMissingToken = apperr.New(apperr.CodeUnauthenticated, "Authorization required")
	ErrInvalidToken = apperr.New(apperr.CodeUnauthenticated, "Invalid or expired token")
)

// Verifier validates a session token with the auth provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}

// NewVerifier prefers local JWT verification when a secret is configured and
// falls back to asking GoTrue.
func NewVerifier(cfg cliparse.Config) (Verifier, error) {
	if cfg.SupabaseJWTSecret != "" {
		return NewJWTVerifier(cfg.SupabaseJWTSecret, cfg.SupabaseAudience), nil
	}
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		return NewGoTrueVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.RequestTimeout), nil
	}
	return nil, errors.New("no session verifier configured")
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// AuthorizeURL builds the provider URL that starts the Discord OAuth flow.
func AuthorizeURL(supabaseURL, redirectTo string) string {
	q := url.Values{}
	q.Set("provider", "discord")
	q.Set("redirect_to", redirectTo)
	return strings.TrimRight(supabaseURL, "/") + "/auth/v1/authorize?" + q.Encode()
}

// Allowlist holds the Discord ids of privileged users. It is built once at
// startup and never mutated.
type Allowlist struct {
	ids map[string]struct{}
}

func NewAllowlist(ids []string) Allowlist {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return Allowlist{ids: set}
}

func (a Allowlist) Contains(discordID string) bool {
	if discordID == "" {
		return false
	}
	_, ok := a.ids[discordID]
	return ok
}

func (a Allowlist) Len() int {
	return len(a.ids)
}
