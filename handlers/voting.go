// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/metrics"
	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
)

type VotingHandler struct {
	ballots *store.Ballots
	metrics *metrics.Metrics
}

func NewVotingHandler(db *sqlx.DB, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{ballots: store.NewBallots(db), metrics: m}
}

// GetMyVotes handles GET /api/votes/my-votes (authenticated)
func (h *VotingHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	votes, err := h.ballots.UserBallots(r.Context(), user.ID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVotesResponse{Votes: votes})
}

// SubmitVotes handles POST /api/votes/submit (authenticated)
// Each category is upserted on its own; a resubmission overwrites the
// previous choice
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	// Parse request
	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote format")
		return
	}
	if req.Votes == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes must be an object")
		return
	}

	selections := make(map[int64]models.Selection, len(req.Votes))
	for key, sel := range req.Votes {
		// Only canonical ids, so "1" and "01" cannot name the same category
		categoryID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || categoryID <= 0 || strconv.FormatInt(categoryID, 10) != key {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid category id: "+key)
			return
		}
		selections[categoryID] = sel
	}

	results, err := h.ballots.Submit(r.Context(), user.ID, selections)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	allOK := true
	for _, res := range results {
		if !res.Success {
			allOK = false
			continue
		}
		h.metrics.IncrementBallots(selections[res.CategoryID].Skip)
	}

	slog.Info("votes submitted", "user_id", user.ID, "categories", len(results), "all_ok", allOK)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVotesResponse{
		Success: allOK,
		Results: results,
	})
}
