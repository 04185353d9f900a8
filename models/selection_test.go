// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in      string
		want    Selection
		wantErr bool
	}{
		{"skip", Skip(), false},
		{" skip ", Skip(), false},
		{"42", Vote(42), false},
		{"0", Selection{}, true},
		{"-3", Selection{}, true},
		{"SKIP", Selection{}, true},
		{"abc", Selection{}, true},
		{"", Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelection(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelection_UnmarshalJSON(t *testing.T) {
	var req SubmitVotesRequest
	err := json.Unmarshal([]byte(`{"votes":{"1":"skip","2":7,"3":"9"}}`), &req)
	require.NoError(t, err)

	assert.Equal(t, map[string]Selection{
		"1": Skip(),
		"2": Vote(7),
		"3": Vote(9),
	}, req.Votes)

	for _, bad := range []string{`0`, `-1`, `1.5`, `null`, `true`, `"nope"`, `{}`} {
		var s Selection
		assert.Error(t, json.Unmarshal([]byte(bad), &s), "input %s", bad)
	}
}

func TestSelection_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(MyVotesResponse{Votes: map[int64]Selection{
		1: Skip(),
		2: Vote(5),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"votes":{"1":"skip","2":5}}`, string(data))
}

func TestBallot_Selection(t *testing.T) {
	id := int64(3)
	assert.Equal(t, Vote(3), Ballot{NomineeID: &id}.Selection())
	assert.Equal(t, Skip(), Ballot{IsSkip: true}.Selection())
}
