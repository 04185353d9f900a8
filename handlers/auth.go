// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/forkedfool/Chillville-Awards-2025/auth"
	"github.com/forkedfool/Chillville-Awards-2025/cliparse"
	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

type AuthHandler struct {
	resolver middleware.IdentityResolver
	cfg      cliparse.Config
}

func NewAuthHandler(resolver middleware.IdentityResolver, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{resolver: resolver, cfg: cfg}
}

// Me handles GET /api/auth/me
// Never fails: any auth problem is reported as authenticated=false
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.AuthMeResponse{Authenticated: false})
		return
	}

	user, err := h.resolver.Resolve(r.Context(), token)
	if err != nil {
		slog.Debug("session check failed", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.AuthMeResponse{Authenticated: false})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthMeResponse{
		Authenticated: true,
		User:          &user,
	})
}

// DiscordURL handles GET /api/auth/discord/url
func (h *AuthHandler) DiscordURL(w http.ResponseWriter, r *http.Request) {
	if h.cfg.SupabaseURL == "" {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Supabase is not configured")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthURLResponse{
		URL: auth.AuthorizeURL(h.cfg.SupabaseURL, h.cfg.AuthRedirectURL()),
	})
}
