// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
)

type ResultsHandler struct {
	ballots *store.Ballots
}

func NewResultsHandler(db *sqlx.DB) *ResultsHandler {
	return &ResultsHandler{ballots: store.NewBallots(db)}
}

// GetCategoryStats handles GET /api/votes/stats/{categoryId}
// Public; recomputed from the votes table on every call
func (h *ResultsHandler) GetCategoryStats(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	stats, err := h.ballots.CategoryTally(r.Context(), categoryID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoryStatsResponse{Stats: stats})
}

// GetAllStats handles GET /api/votes/stats (admin)
func (h *ResultsHandler) GetAllStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ballots.AllTallies(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AllStatsResponse{Stats: stats})
}
