// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/auth"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

type stubResolver map[string]models.User

func (s stubResolver) Resolve(_ context.Context, token string) (models.User, error) {
	switch token {
	case "down":
		return models.User{}, apperr.New(apperr.CodeUnavailable, "provider down")
	case "slow":
		return models.User{}, context.DeadlineExceeded
	}
	u, ok := s[token]
	if !ok {
		return models.User{}, auth.ErrInvalidToken
	}
	return u, nil
}

func TestRequireAuth(t *testing.T) {
	resolver := stubResolver{"good": {ID: 7, DiscordID: "111"}}

	var gotUser models.User
	handler := RequireAuth(resolver, func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"provider unavailable", "Bearer down", http.StatusBadGateway},
		{"provider timeout", "Bearer slow", http.StatusGatewayTimeout},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	if gotUser.ID != 7 {
		t.Errorf("Expected resolved user 7 in context, got %d", gotUser.ID)
	}
}

func TestRequireAdmin(t *testing.T) {
	admins := auth.NewAllowlist([]string{"111"})
	handler := RequireAdmin(admins, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name           string
		user           *models.User
		expectedStatus int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"not allow-listed", &models.User{ID: 1, DiscordID: "222"}, http.StatusForbidden},
		{"admin", &models.User{ID: 2, DiscordID: "111"}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("DELETE", "/api/categories/1", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
		})
	}
}
