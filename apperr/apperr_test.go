// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", New(CodeNotFound, "missing"), CodeNotFound},
		{"wrapped by fmt", fmt.Errorf("outer: %w", New(CodeForbidden, "no")), CodeForbidden},
		{"bare deadline", context.DeadlineExceeded, CodeTimeout},
		{"wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), CodeTimeout},
		{"plain error", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestWrap_DeadlineBecomesTimeout(t *testing.T) {
	err := Wrap(CodeUnavailable, "provider failed", context.DeadlineExceeded)

	assert.Equal(t, CodeTimeout, err.Code)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "provider failed")
}

func TestIs(t *testing.T) {
	assert.True(t, Is(New(CodeInvalidInput, "bad"), CodeInvalidInput))
	assert.False(t, Is(New(CodeInvalidInput, "bad"), CodeNotFound))
	assert.False(t, Is(nil, CodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeUnauthenticated: http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeInvalidInput:    http.StatusBadRequest,
		CodeNotFound:        http.StatusNotFound,
		CodeUnavailable:     http.StatusBadGateway,
		CodeTimeout:         http.StatusGatewayTimeout,
		CodeInternal:        http.StatusInternalServerError,
	}

	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Category not found", PublicMessage(New(CodeNotFound, "Category not found")))
	assert.Equal(t, "Internal server error",
		PublicMessage(Wrap(CodeInternal, "failed to query votes", errors.New("pq: relation missing"))))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw driver error")))
	assert.Equal(t, "Upstream service unavailable", PublicMessage(New(CodeUnavailable, "dial tcp refused")))
	assert.Equal(t, "Upstream service timed out", PublicMessage(context.DeadlineExceeded))
}
