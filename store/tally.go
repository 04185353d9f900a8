// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"

	"github.com/forkedfool/Chillville-Awards-2025/models"
)

// Tallies are recomputed from the votes table on every call. Ballots whose
// nominee was deleted, or sits in another category, are not counted.

// CategoryTally counts non-skip ballots for every nominee of the category.
// Nominees without votes report zero. The result is ordered by vote count
// descending with ties kept in nominee id order.
func (s *Ballots) CategoryTally(ctx context.Context, categoryID int64) ([]models.NomineeTally, error) {
	exists, err := categoryExists(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errCategoryNotFound
	}

	tallies := []models.NomineeTally{}
	err = s.db.SelectContext(ctx, &tallies, `
		SELECT n.id, n.name, n.description, n.role, COUNT(v.id) AS vote_count
		FROM nominees n
		LEFT JOIN votes v
		       ON v.nominee_id = n.id
		      AND v.category_id = n.category_id
		      AND v.is_skip = FALSE
		WHERE n.category_id = $1
		GROUP BY n.id, n.name, n.description, n.role
		ORDER BY n.id
	`, categoryID)
	if err != nil {
		return nil, dbError("failed to count votes", err)
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].VoteCount > tallies[j].VoteCount
	})
	return tallies, nil
}

// AllTallies lists every category/nominee pair with at least one non-skip
// ballot, grouped by category and ordered by vote count within it.
func (s *Ballots) AllTallies(ctx context.Context) ([]models.TallyRow, error) {
	rows := []models.TallyRow{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT c.id AS category_id,
		       c.title AS category_title,
		       n.id AS nominee_id,
		       n.name AS nominee_name,
		       COUNT(*) AS vote_count
		FROM votes v
		JOIN nominees n ON n.id = v.nominee_id AND n.category_id = v.category_id
		JOIN categories c ON c.id = v.category_id
		WHERE v.is_skip = FALSE
		GROUP BY c.id, c.title, n.id, n.name
		ORDER BY c.id, vote_count DESC, n.id
	`)
	if err != nil {
		return nil, dbError("failed to count votes", err)
	}
	return rows, nil
}
