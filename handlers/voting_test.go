// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/forkedfool/Chillville-Awards-2025/metrics"
	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/testutil"
)

func withUser(req *http.Request, id int64) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), models.User{ID: id, DiscordID: fmt.Sprint(id)}))
}

func TestSubmitVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	handler := NewVotingHandler(db, m)

	user := testutil.CreateTestUser(t, db, "1001", "voter")
	c1 := testutil.CreateTestCategory(t, db, "Titans", "TITAN_CLASS")
	n1 := testutil.AddTestNominee(t, db, c1, "DarkSlayer")
	c2 := testutil.CreateTestCategory(t, db, "Cringe", "CRINGE_MOMENT")
	n2 := testutil.AddTestNominee(t, db, c2, "Microphone")

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "vote and skip",
			body:           fmt.Sprintf(`{"votes":{"%d":%d,"%d":"skip"}}`, c1, n1, c2),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "nominee string form",
			body:           fmt.Sprintf(`{"votes":{"%d":"%d"}}`, c2, n2),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing votes",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "votes must be an object",
		},
		{
			name:           "votes not an object",
			body:           `{"votes":[1,2]}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid vote format",
		},
		{
			name:           "bad selection",
			body:           fmt.Sprintf(`{"votes":{"%d":"maybe"}}`, c1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid vote format",
		},
		{
			name:           "bad category key",
			body:           `{"votes":{"abc":"skip"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid category id: abc",
		},
		{
			name:           "non-canonical category key",
			body:           fmt.Sprintf(`{"votes":{"%d":%d,"0%d":"skip"}}`, c1, n1, c1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  fmt.Sprintf("Invalid category id: 0%d", c1),
		},
		{
			name:           "signed category key",
			body:           fmt.Sprintf(`{"votes":{"+%d":"skip"}}`, c1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  fmt.Sprintf("Invalid category id: +%d", c1),
		},
		{
			name:           "nominee from other category",
			body:           fmt.Sprintf(`{"votes":{"%d":%d}}`, c1, n2),
			expectedStatus: http.StatusBadRequest,
			expectedError:  fmt.Sprintf("nominee %d does not belong to category %d", n2, c1),
		},
		{
			name:           "unknown category",
			body:           `{"votes":{"9999":"skip"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "category 9999 does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withUser(httptest.NewRequest("POST", "/api/votes/submit", strings.NewReader(tt.body)), user)
			w := httptest.NewRecorder()

			handler.SubmitVotes(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Error != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, resp.Error)
				}
				return
			}

			var resp models.SubmitVotesResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Success {
				t.Errorf("Expected success, got %+v", resp)
			}
			for _, r := range resp.Results {
				if !r.Success {
					t.Errorf("Expected category %d to succeed", r.CategoryID)
				}
			}
		})
	}

	// The second submission replaced the skip in c2
	req := withUser(httptest.NewRequest("GET", "/api/votes/my-votes", nil), user)
	w := httptest.NewRecorder()
	handler.GetMyVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	expected := fmt.Sprintf(`{"votes":{"%d":%d,"%d":%d}}`, c1, n1, c2, n2)
	if body := strings.TrimSpace(w.Body.String()); body != expected {
		t.Errorf("Expected %s, got %s", expected, body)
	}

	if got := promtest.ToFloat64(m.BallotsSubmitted.WithLabelValues("vote")); got != 2 {
		t.Errorf("Expected 2 vote ballots counted, got %v", got)
	}
	if got := promtest.ToFloat64(m.BallotsSubmitted.WithLabelValues("skip")); got != 1 {
		t.Errorf("Expected 1 skip ballot counted, got %v", got)
	}
}

func TestGetMyVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewVotingHandler(db, nil)
	user := testutil.CreateTestUser(t, db, "1001", "voter")

	t.Run("no ballots", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetMyVotes(w, withUser(httptest.NewRequest("GET", "/api/votes/my-votes", nil), user))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := strings.TrimSpace(w.Body.String()); body != `{"votes":{}}` {
			t.Errorf("Expected empty votes object, got %s", body)
		}
	})

	t.Run("no user in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetMyVotes(w, httptest.NewRequest("GET", "/api/votes/my-votes", nil))

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}
