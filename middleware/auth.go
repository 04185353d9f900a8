// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/auth"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

// IdentityResolver turns a bearer token into the local user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (models.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user set by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}

// RequireAuth rejects requests without a valid session with 401 and makes
// the resolved user available through UserFromContext.
func RequireAuth(resolver IdentityResolver, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			WriteError(w, r, auth.ErrMissingToken)
			return
		}

		user, err := resolver.Resolve(r.Context(), token)
		if err != nil {
			if apperr.Is(err, apperr.CodeUnauthenticated) {
				slog.Warn("unauthorized access - invalid token",
					"request_id", RequestID(r.Context()),
					"error", err,
				)
			}
			WriteError(w, r, err)
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireAdmin must run after RequireAuth. It answers 401 when no user is in
// the context and 403 when the user's Discord id is not allow-listed.
func RequireAdmin(admins auth.Allowlist, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, auth.ErrMissingToken)
			return
		}

		if !admins.Contains(user.DiscordID) {
			slog.Warn("forbidden - not an admin",
				"request_id", RequestID(r.Context()),
				"user_id", user.ID,
				"discord_id", user.DiscordID,
			)
			WriteError(w, r, apperr.New(apperr.CodeForbidden, "Access denied"))
			return
		}

		next(w, r)
	}
}
