// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
	"github.com/forkedfool/Chillville-Awards-2025/testutil"
)

func TestCategoryTally(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	voters := make([]int64, 5)
	for i := range voters {
		voters[i] = testutil.CreateTestUser(t, f.db, fmt.Sprintf("v%d", i), "voter")
	}

	// n2 gets 3 votes, n1 gets 1, one voter skips
	choices := []models.Selection{
		models.Vote(f.n2), models.Vote(f.n2), models.Vote(f.n2), models.Vote(f.n1), models.Skip(),
	}
	for i, sel := range choices {
		_, err := f.ballots.Submit(ctx, voters[i], map[int64]models.Selection{f.c1: sel})
		require.NoError(t, err)
	}

	tally, err := f.ballots.CategoryTally(ctx, f.c1)
	require.NoError(t, err)
	require.Len(t, tally, 2)
	assert.Equal(t, f.n2, tally[0].ID)
	assert.Equal(t, int64(3), tally[0].VoteCount)
	assert.Equal(t, f.n1, tally[1].ID)
	assert.Equal(t, int64(1), tally[1].VoteCount)

	var total, nonSkip int64
	for _, row := range tally {
		total += row.VoteCount
	}
	require.NoError(t, f.db.Get(&nonSkip, `SELECT COUNT(*) FROM votes WHERE category_id = $1 AND is_skip = FALSE`, f.c1))
	assert.Equal(t, nonSkip, total)

	// Every nominee is listed even without votes
	empty, err := f.ballots.CategoryTally(ctx, f.c2)
	require.NoError(t, err)
	require.Len(t, empty, 2)
	assert.Equal(t, f.n3, empty[0].ID)
	assert.Zero(t, empty[0].VoteCount)
	assert.Equal(t, f.n4, empty[1].ID)

	// An unknown category is a 404, not an empty stats list
	_, err = f.ballots.CategoryTally(ctx, 9999)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCategoryTally_TiesKeepNomineeOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := testutil.CreateTestUser(t, f.db, "2002", "other")

	_, err := f.ballots.Submit(ctx, f.user, map[int64]models.Selection{f.c1: models.Vote(f.n2)})
	require.NoError(t, err)
	_, err = f.ballots.Submit(ctx, other, map[int64]models.Selection{f.c1: models.Vote(f.n1)})
	require.NoError(t, err)

	tally, err := f.ballots.CategoryTally(ctx, f.c1)
	require.NoError(t, err)
	require.Len(t, tally, 2)
	assert.Equal(t, f.n1, tally[0].ID)
	assert.Equal(t, f.n2, tally[1].ID)
}

func TestAllTallies_OnlyVotedNominees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ballots.Submit(ctx, f.user, map[int64]models.Selection{
		f.c1: models.Vote(f.n1),
		f.c2: models.Skip(),
	})
	require.NoError(t, err)

	rows, err := f.ballots.AllTallies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TallyRow{{
		CategoryID:    f.c1,
		CategoryTitle: "Titans",
		NomineeID:     f.n1,
		NomineeName:   "DarkSlayer",
		VoteCount:     1,
	}}, rows)
}

func TestAllTallies_Ordering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := testutil.CreateTestUser(t, f.db, "a", "a")
	b := testutil.CreateTestUser(t, f.db, "b", "b")

	_, err := f.ballots.Submit(ctx, f.user, map[int64]models.Selection{f.c1: models.Vote(f.n1), f.c2: models.Vote(f.n4)})
	require.NoError(t, err)
	_, err = f.ballots.Submit(ctx, a, map[int64]models.Selection{f.c1: models.Vote(f.n2), f.c2: models.Vote(f.n4)})
	require.NoError(t, err)
	_, err = f.ballots.Submit(ctx, b, map[int64]models.Selection{f.c1: models.Vote(f.n2), f.c2: models.Vote(f.n3)})
	require.NoError(t, err)

	rows, err := f.ballots.AllTallies(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	got := make([][2]int64, len(rows))
	for i, r := range rows {
		got[i] = [2]int64{r.NomineeID, r.VoteCount}
	}
	assert.Equal(t, [][2]int64{{f.n2, 2}, {f.n1, 1}, {f.n4, 2}, {f.n3, 1}}, got)
}

func TestTallies_ExcludeOrphanedBallots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	catalog := store.NewCatalog(f.db)

	_, err := f.ballots.Submit(ctx, f.user, map[int64]models.Selection{f.c1: models.Vote(f.n1)})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteNominee(ctx, f.c1, f.n1))

	// The ballot survives and still reports the deleted nominee
	mine, err := f.ballots.UserBallots(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, map[int64]models.Selection{f.c1: models.Vote(f.n1)}, mine)

	tally, err := f.ballots.CategoryTally(ctx, f.c1)
	require.NoError(t, err)
	require.Len(t, tally, 1)
	assert.Equal(t, f.n2, tally[0].ID)
	assert.Zero(t, tally[0].VoteCount)

	rows, err := f.ballots.AllTallies(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Voting for the deleted nominee again is rejected
	_, err = f.ballots.Submit(ctx, f.user, map[int64]models.Selection{f.c1: models.Vote(f.n1)})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidInput))
}
