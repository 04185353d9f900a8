// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
)

// supabaseClaims mirrors the access token GoTrue issues.
type supabaseClaims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// JWTVerifier checks Supabase access tokens locally with the project's JWT
// secret. It never touches the network.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret, audience string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrMissingToken
	}

	var claims supabaseClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, apperr.Wrap(apperr.CodeUnauthenticated, "Token has expired", err)
		}
		return Session{}, apperr.Wrap(apperr.CodeUnauthenticated, ErrInvalidToken.Message, err)
	}
	if claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Metadata: claims.UserMetadata,
	}, nil
}

// GoTrueVerifier asks the Supabase auth server who owns a token.
type GoTrueVerifier struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewGoTrueVerifier(baseURL, serviceKey string, timeout time.Duration) *GoTrueVerifier {
	return &GoTrueVerifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
	}
}

type goTrueUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.CodeInternal, "failed to build auth request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return Session{}, apperr.Wrap(apperr.CodeTimeout, "auth provider timed out", err)
		}
		return Session{}, apperr.Wrap(apperr.CodeUnavailable, "auth provider unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return Session{}, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Session{}, apperr.Wrap(apperr.CodeUnavailable, "auth provider error",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var user goTrueUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return Session{}, apperr.Wrap(apperr.CodeUnavailable, "invalid auth provider response", err)
	}
	if user.ID == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:   user.ID,
		Email:    user.Email,
		Metadata: user.UserMetadata,
	}, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
