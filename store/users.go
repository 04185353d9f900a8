// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/models"
)

type Users struct {
	db *sqlx.DB
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// GetOrCreate returns the user bound to discordID, inserting it on first
// sight. Username and avatar are only written by the insert; later calls never
// refresh them. created reports whether this call performed the insert.
func (s *Users) GetOrCreate(ctx context.Context, discordID, username string, avatar *string) (models.User, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (discord_id, username, avatar)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO NOTHING
	`, discordID, username, avatar)
	if err != nil {
		return models.User{}, false, dbError("failed to create user", err)
	}

	created := false
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		created = true
	}

	var user models.User
	err = s.db.GetContext(ctx, &user, `
		SELECT id, discord_id, username, avatar FROM users WHERE discord_id = $1
	`, discordID)
	if err != nil {
		return models.User{}, false, dbError("failed to load user", err)
	}

	return user, created, nil
}
