// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/cliparse"
	"github.com/forkedfool/Chillville-Awards-2025/db"
)

const (
	// TestJWTSecret signs every token issued by IssueToken
	TestJWTSecret = "test-jwt-secret-with-enough-length"

	// AdminDiscordID is allow-listed in GetTestConfig
	AdminDiscordID = "100000000000000001"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Every call gets its own database, so tests can run in parallel.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Open(context.Background(), db.TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3000,
		DatabaseURL:       "file::memory:",
		DatabaseType:      db.TypeSQLite,
		SupabaseURL:       "https://project.supabase.co",
		SupabaseJWTSecret: TestJWTSecret,
		SupabaseAudience:  "authenticated",
		FrontendURL:       "http://localhost:5173",
		AdminDiscordIDs:   []string{AdminDiscordID},
		RequestTimeout:    5 * time.Second,
		LogLevel:          "info",
	}
}

// IssueToken signs a Supabase-style access token for a Discord user.
func IssueToken(t *testing.T, discordID, name string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   uuid.NewString(),
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"email": name + "@example.com",
		"user_metadata": map[string]any{
			"provider_id": discordID,
			"full_name":   name,
			"avatar_url":  "https://cdn.discordapp.com/avatars/" + discordID + ".png",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// BearerHeader returns request headers carrying token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestCategory inserts a category and returns its ID
func CreateTestCategory(t *testing.T, conn *sqlx.DB, title, code string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(`
		INSERT INTO categories (title, code) VALUES ($1, $2) RETURNING id
	`, title, code).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return id
}

// AddTestNominee adds a nominee to a category and returns its ID
func AddTestNominee(t *testing.T, conn *sqlx.DB, categoryID int64, name string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(`
		INSERT INTO nominees (category_id, name, description, role)
		VALUES ($1, $2, '', 'NEW') RETURNING id
	`, categoryID, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test nominee: %v", err)
	}
	return id
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, conn *sqlx.DB, discordID, username string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(`
		INSERT INTO users (discord_id, username) VALUES ($1, $2) RETURNING id
	`, discordID, username).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
