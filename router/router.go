// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/auth"
	"github.com/forkedfool/Chillville-Awards-2025/cliparse"
	"github.com/forkedfool/Chillville-Awards-2025/handlers"
	"github.com/forkedfool/Chillville-Awards-2025/metrics"
	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
)

// NewRouter wires every API route. m may be nil, in which case no metrics
// are recorded and /metrics is not served.
func NewRouter(db *sqlx.DB, cfg cliparse.Config, m *metrics.Metrics) (http.Handler, error) {
	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("session verifier: %w", err)
	}

	resolver := auth.NewResolver(verifier, store.NewUsers(db))
	resolver.OnUserCreated(m.IncrementUsersCreated)
	admins := auth.NewAllowlist(cfg.AdminDiscordIDs)
	if admins.Len() == 0 {
		slog.Warn("admin allow-list is empty; catalog management is disabled")
	}

	return newMux(db, cfg, m, resolver, admins), nil
}

func newMux(db *sqlx.DB, cfg cliparse.Config, m *metrics.Metrics, resolver middleware.IdentityResolver, admins auth.Allowlist) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(resolver, cfg)
	categoryHandler := handlers.NewCategoryHandler(db)
	votingHandler := handlers.NewVotingHandler(db, m)
	resultsHandler := handlers.NewResultsHandler(db)

	logged := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(m, h)
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return logged(middleware.RequireAuth(resolver, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireAdmin(admins, h))
	}

	// Health check
	mux.HandleFunc("GET /api/health", logged(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		})
	}))

	// Session (public)
	mux.HandleFunc("GET /api/auth/me", logged(authHandler.Me))
	mux.HandleFunc("GET /api/auth/discord/url", logged(authHandler.DiscordURL))

	// Catalog (public reads, admin writes)
	mux.HandleFunc("GET /api/categories", logged(categoryHandler.ListCategories))
	mux.HandleFunc("GET /api/categories/{id}", logged(categoryHandler.GetCategory))
	mux.HandleFunc("POST /api/categories", admin(categoryHandler.CreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", admin(categoryHandler.UpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", admin(categoryHandler.DeleteCategory))
	mux.HandleFunc("POST /api/categories/{categoryId}/nominees", admin(categoryHandler.CreateNominee))
	mux.HandleFunc("PUT /api/categories/{categoryId}/nominees/{nomineeId}", admin(categoryHandler.UpdateNominee))
	mux.HandleFunc("DELETE /api/categories/{categoryId}/nominees/{nomineeId}", admin(categoryHandler.DeleteNominee))

	// Ballots (authenticated)
	mux.HandleFunc("GET /api/votes/my-votes", authed(votingHandler.GetMyVotes))
	mux.HandleFunc("POST /api/votes/submit", authed(votingHandler.SubmitVotes))

	// Tallies
	mux.HandleFunc("GET /api/votes/stats/{categoryId}", logged(resultsHandler.GetCategoryStats))
	mux.HandleFunc("GET /api/votes/stats", admin(resultsHandler.GetAllStats))

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	var h http.Handler = mux
	h = middleware.WithTimeout(cfg.RequestTimeout, h)
	h = middleware.Recover(h)
	h = middleware.CORS(cfg.FrontendURL, h)
	return h
}
