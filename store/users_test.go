// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkedfool/Chillville-Awards-2025/store"
	"github.com/forkedfool/Chillville-Awards-2025/testutil"
)

func TestUsers_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	users := store.NewUsers(testutil.SetupTestDB(t))

	first, created, err := users.GetOrCreate(ctx, "42", "Gamer", strPtr("a.png"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "42", first.DiscordID)
	assert.Equal(t, "Gamer", first.Username)
	require.NotNil(t, first.Avatar)

	again, created, err := users.GetOrCreate(ctx, "42", "Renamed", nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)

	other, created, err := users.GetOrCreate(ctx, "43", "Other", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Nil(t, other.Avatar)
}
