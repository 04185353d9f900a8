// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/middleware"
	"github.com/forkedfool/Chillville-Awards-2025/models"
	"github.com/forkedfool/Chillville-Awards-2025/store"
)

type CategoryHandler struct {
	catalog *store.Catalog
}

func NewCategoryHandler(db *sqlx.DB) *CategoryHandler {
	return &CategoryHandler{catalog: store.NewCatalog(db)}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CategoriesResponse{Categories: categories})
}

// GetCategory handles GET /api/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, category)
}

// CreateCategory handles POST /api/categories (admin)
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := parseCategoryInput(w, r)
	if !ok {
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), in)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("category created", "category_id", category.ID, "code", category.Code)

	middleware.JSONResponse(w, http.StatusCreated, models.CategoryMutationResponse{
		Success:  true,
		Category: &category,
	})
}

// UpdateCategory handles PUT /api/categories/{id} (admin)
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	in, ok := parseCategoryInput(w, r)
	if !ok {
		return
	}

	if _, err := h.catalog.UpdateCategory(r.Context(), id, in); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("category updated", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteCategory handles DELETE /api/categories/{id} (admin)
// Nominees and ballots of the category are removed with it
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("category deleted", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// CreateNominee handles POST /api/categories/{categoryId}/nominees (admin)
func (h *CategoryHandler) CreateNominee(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	in, ok := parseNomineeInput(w, r)
	if !ok {
		return
	}

	nominee, err := h.catalog.CreateNominee(r.Context(), categoryID, in)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("nominee created", "category_id", categoryID, "nominee_id", nominee.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.NomineeMutationResponse{
		Success: true,
		Nominee: &nominee,
	})
}

// UpdateNominee handles PUT /api/categories/{categoryId}/nominees/{nomineeId} (admin)
func (h *CategoryHandler) UpdateNominee(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	nomineeID, err := pathID(r, "nomineeId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	in, ok := parseNomineeInput(w, r)
	if !ok {
		return
	}

	if _, err := h.catalog.UpdateNominee(r.Context(), categoryID, nomineeID, in); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("nominee updated", "category_id", categoryID, "nominee_id", nomineeID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteNominee handles DELETE /api/categories/{categoryId}/nominees/{nomineeId} (admin)
func (h *CategoryHandler) DeleteNominee(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	nomineeID, err := pathID(r, "nomineeId")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.catalog.DeleteNominee(r.Context(), categoryID, nomineeID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("nominee deleted", "category_id", categoryID, "nominee_id", nomineeID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func parseCategoryInput(w http.ResponseWriter, r *http.Request) (models.CategoryInput, bool) {
	var in models.CategoryInput
	if err := middleware.ParseJSONBody(r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return in, false
	}

	in.Normalize()
	if err := models.Validate(in); err != nil {
		middleware.WriteError(w, r, err)
		return in, false
	}
	return in, true
}

func parseNomineeInput(w http.ResponseWriter, r *http.Request) (models.NomineeInput, bool) {
	var in models.NomineeInput
	if err := middleware.ParseJSONBody(r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return in, false
	}

	in.Normalize()
	if err := models.Validate(in); err != nil {
		middleware.WriteError(w, r, err)
		return in, false
	}
	return in, true
}
