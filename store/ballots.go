// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

// defaultSubmitConcurrency bounds how many category upserts of one batch run at once.
const defaultSubmitConcurrency = 4

// Ballots records each user's single choice per category.
type Ballots struct {
	db          *sqlx.DB
	concurrency int
}

func NewBallots(db *sqlx.DB) *Ballots {
	return &Ballots{db: db, concurrency: defaultSubmitConcurrency}
}

// UserBallots maps category id to the user's selection. Categories without a
// ballot are absent.
func (s *Ballots) UserBallots(ctx context.Context, userID int64) (map[int64]models.Selection, error) {
	ballots := []models.Ballot{}
	err := s.db.SelectContext(ctx, &ballots, `
		SELECT user_id, category_id, nominee_id, is_skip
		FROM votes
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, dbError("failed to query votes", err)
	}

	votes := make(map[int64]models.Selection, len(ballots))
	for _, b := range ballots {
		votes[b.CategoryID] = b.Selection()
	}
	return votes, nil
}

// Submit upserts one ballot per entry. All references are checked first and
// nothing is written if any is invalid. Each entry then commits in its own
// transaction, so one failing entry does not undo the others; its result is
// reported with Success false. Results are ordered by category id.
func (s *Ballots) Submit(ctx context.Context, userID int64, selections map[int64]models.Selection) ([]models.BallotResult, error) {
	if err := s.validate(ctx, selections); err != nil {
		return nil, err
	}

	categoryIDs := make([]int64, 0, len(selections))
	for id := range selections {
		categoryIDs = append(categoryIDs, id)
	}
	slices.Sort(categoryIDs)

	results := make([]models.BallotResult, len(categoryIDs))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, categoryID := range categoryIDs {
		g.Go(func() error {
			result := models.BallotResult{CategoryID: categoryID, Success: true}
			if err := s.upsert(ctx, userID, categoryID, selections[categoryID]); err != nil {
				slog.ErrorContext(ctx, "failed to upsert ballot",
					"error", err, "user_id", userID, "category_id", categoryID)
				result.Success = false
				result.Error = apperr.PublicMessage(err)
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// validate checks that every category exists and every nominee belongs to
// the category it is submitted for.
func (s *Ballots) validate(ctx context.Context, selections map[int64]models.Selection) error {
	if len(selections) == 0 {
		return nil
	}

	categoryIDs := make([]int64, 0, len(selections))
	var nomineeIDs []int64
	for categoryID, sel := range selections {
		categoryIDs = append(categoryIDs, categoryID)
		if !sel.Skip {
			nomineeIDs = append(nomineeIDs, sel.NomineeID)
		}
	}

	query, args, err := sqlx.In(`SELECT id FROM categories WHERE id IN (?)`, categoryIDs)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to build query", err)
	}
	var existing []int64
	if err := s.db.SelectContext(ctx, &existing, s.db.Rebind(query), args...); err != nil {
		return dbError("failed to query categories", err)
	}
	for _, id := range categoryIDs {
		if !slices.Contains(existing, id) {
			return apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("category %d does not exist", id))
		}
	}

	if len(nomineeIDs) == 0 {
		return nil
	}

	query, args, err = sqlx.In(`SELECT id, category_id FROM nominees WHERE id IN (?)`, nomineeIDs)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to build query", err)
	}
	var owners []struct {
		ID         int64 `db:"id"`
		CategoryID int64 `db:"category_id"`
	}
	if err := s.db.SelectContext(ctx, &owners, s.db.Rebind(query), args...); err != nil {
		return dbError("failed to query nominees", err)
	}
	ownerOf := make(map[int64]int64, len(owners))
	for _, o := range owners {
		ownerOf[o.ID] = o.CategoryID
	}

	for categoryID, sel := range selections {
		if sel.Skip {
			continue
		}
		owner, ok := ownerOf[sel.NomineeID]
		if !ok || owner != categoryID {
			return apperr.New(apperr.CodeInvalidInput,
				fmt.Sprintf("nominee %d does not belong to category %d", sel.NomineeID, categoryID))
		}
	}
	return nil
}

// upsert writes a single ballot atomically. The nominee is re-checked inside
// the transaction in case it was deleted after validation.
func (s *Ballots) upsert(ctx context.Context, userID, categoryID int64, sel models.Selection) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var nomineeID *int64
	if !sel.Skip {
		var ok bool
		err := tx.GetContext(ctx, &ok, `
			SELECT EXISTS(SELECT 1 FROM nominees WHERE id = $1 AND category_id = $2)
		`, sel.NomineeID, categoryID)
		if err != nil {
			return dbError("failed to query nominee", err)
		}
		if !ok {
			return apperr.New(apperr.CodeInvalidInput, "nominee no longer exists")
		}
		id := sel.NomineeID
		nomineeID = &id
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (user_id, category_id, nominee_id, is_skip, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, category_id)
		DO UPDATE SET nominee_id = excluded.nominee_id,
		              is_skip = excluded.is_skip,
		              updated_at = excluded.updated_at
	`, userID, categoryID, nomineeID, sel.Skip)
	if err != nil {
		return dbError("failed to save vote", err)
	}

	if err := tx.Commit(); err != nil {
		return dbError("failed to commit transaction", err)
	}
	return nil
}
