// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed inserts the demo award categories used for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
)

type category struct {
	input    models.CategoryInput
	nominees []models.NomineeInput
}

var demo = []category{
	{
		input: models.CategoryInput{Title: "SERVER TITANS", Code: "TITAN_CLASS"},
		nominees: []models.NomineeInput{
			{Name: "DarkSlayer", Description: "Life of the party 24/7. Lives in voice chat.", Role: "MVP"},
			{Name: "HealerGirl", Description: "Support of the year. Helps every newcomer.", Role: "HELPER"},
			{Name: "MemeLord", Description: "Chief generator of local memes.", Role: "FUN"},
		},
	},
	{
		input: models.CategoryInput{Title: "CRINGE OF THE YEAR", Code: "CRINGE_MOMENT"},
		nominees: []models.NomineeInput{
			{Name: "The Anime Argument", Description: "Five hours of shouting in #general.", Role: "DRAMA"},
			{Name: "Vasya's Microphone", Description: "ASMR chip eating on stream.", Role: "FAIL"},
			{Name: "Deleting #rules", Description: "An admin's accidental misclick.", Role: "EPIC"},
		},
	},
	{
		input: models.CategoryInput{Title: "EVENT OF THE YEAR", Code: "EVENT_LOG"},
		nominees: []models.NomineeInput{
			{Name: "CS2 Tournament", Description: "Team A's legendary comeback.", Role: "GAME"},
			{Name: "New Year 2024", Description: "Karaoke battle until 6 AM.", Role: "IRL"},
		},
	},
}

// Run inserts every demo category whose code is not present yet and returns
// how many were created.
func Run(ctx context.Context, db *sqlx.DB) (int, error) {
	catalog := store.NewCatalog(db)

	created := 0
	for _, c := range demo {
		var n int
		if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE code = $1`, c.input.Code); err != nil {
			return created, fmt.Errorf("check category %s: %w", c.input.Code, err)
		}
		if n > 0 {
			slog.Info("category already exists, skipping", "code", c.input.Code)
			continue
		}

		category, err := catalog.CreateCategory(ctx, c.input)
		if err != nil {
			return created, fmt.Errorf("create category %s: %w", c.input.Code, err)
		}
		for _, nom := range c.nominees {
			if _, err := catalog.CreateNominee(ctx, category.ID, nom); err != nil {
				return created, fmt.Errorf("create nominee %s: %w", nom.Name, err)
			}
		}

		slog.Info("category created", "category_id", category.ID, "title", category.Title)
		created++
	}
	return created, nil
}
