// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkedfool/Chillville-Awards-2025/cliparse"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"Bearer   padded  ", "padded", true},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizeURL(t *testing.T) {
	raw := AuthorizeURL("https://proj.supabase.co/", "http://localhost:5173/auth/callback")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "proj.supabase.co", u.Host)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "discord", u.Query().Get("provider"))
	assert.Equal(t, "http://localhost:5173/auth/callback", u.Query().Get("redirect_to"))
}

func TestAllowlist(t *testing.T) {
	list := NewAllowlist([]string{" 111 ", "", "222"})

	assert.Equal(t, 2, list.Len())
	assert.True(t, list.Contains("111"))
	assert.True(t, list.Contains("222"))
	assert.False(t, list.Contains("333"))
	assert.False(t, list.Contains(""))

	var empty Allowlist
	assert.False(t, empty.Contains("111"))
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(cliparse.Config{SupabaseJWTSecret: "secret", SupabaseURL: "https://x", SupabaseServiceKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &JWTVerifier{}, v)

	v, err = NewVerifier(cliparse.Config{SupabaseURL: "https://x", SupabaseServiceKey: "k", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &GoTrueVerifier{}, v)

	_, err = NewVerifier(cliparse.Config{SupabaseURL: "https://x"})
	assert.Error(t, err)
}
