// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"log/slog"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

// UserStore persists local users keyed by Discord id.
type UserStore interface {
	GetOrCreate(ctx context.Context, discordID, username string, avatar *string) (models.User, bool, error)
}

// Resolver maps a session token to the local user, creating the user the
// first time an identity is seen.
type Resolver struct {
	verifier  Verifier
	users     UserStore
	onCreated func()
}

func NewResolver(verifier Verifier, users UserStore) *Resolver {
	return &Resolver{verifier: verifier, users: users}
}

// OnUserCreated registers a callback fired after a first-sight insert.
func (r *Resolver) OnUserCreated(fn func()) {
	r.onCreated = fn
}

func (r *Resolver) Resolve(ctx context.Context, token string) (models.User, error) {
	session, err := r.verifier.Verify(ctx, token)
	if err != nil {
		return models.User{}, err
	}

	discordID, ok := session.ExternalID()
	if !ok {
		return models.User{}, apperr.New(apperr.CodeUnauthenticated, "Session has no identity")
	}

	user, created, err := r.users.GetOrCreate(ctx, discordID, session.DisplayName(), session.Avatar())
	if err != nil {
		return models.User{}, err
	}

	if created {
		slog.InfoContext(ctx, "user created", "user_id", user.ID, "discord_id", user.DiscordID)
		if r.onCreated != nil {
			r.onCreated()
		}
	}
	return user, nil
}
