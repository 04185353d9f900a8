// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/forkedfool/Chillville-Awards-2025/apperr"
	"github.com/forkedfool/Chillville-Awards-2025/models"
)

var (
	errCategoryNotFound = apperr.New(apperr.CodeNotFound, "Category not found")
	errNomineeNotFound  = apperr.New(apperr.CodeNotFound, "Nominee not found")
)

// Catalog manages categories and their nominees.
type Catalog struct {
	db *sqlx.DB
}

func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{db: db}
}

// ListCategories returns every category with its nominees, both in id order.
func (s *Catalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, `
		SELECT id, title, code, description FROM categories ORDER BY id
	`)
	if err != nil {
		return nil, dbError("failed to query categories", err)
	}

	nominees := []models.Nominee{}
	err = s.db.SelectContext(ctx, &nominees, `
		SELECT id, category_id, name, description, role, image_url
		FROM nominees
		ORDER BY category_id, id
	`)
	if err != nil {
		return nil, dbError("failed to query nominees", err)
	}

	byCategory := make(map[int64][]models.Nominee, len(categories))
	for _, n := range nominees {
		byCategory[n.CategoryID] = append(byCategory[n.CategoryID], n)
	}
	for i := range categories {
		categories[i].Nominees = byCategory[categories[i].ID]
		if categories[i].Nominees == nil {
			categories[i].Nominees = []models.Nominee{}
		}
	}

	return categories, nil
}

func (s *Catalog) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, `
		SELECT id, title, code, description FROM categories WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, errCategoryNotFound
	}
	if err != nil {
		return models.Category{}, dbError("failed to query category", err)
	}

	category.Nominees = []models.Nominee{}
	err = s.db.SelectContext(ctx, &category.Nominees, `
		SELECT id, category_id, name, description, role, image_url
		FROM nominees
		WHERE category_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return models.Category{}, dbError("failed to query nominees", err)
	}

	return category, nil
}

// categoryExists runs on either the pool or an open transaction.
func categoryExists(ctx context.Context, q sqlx.QueryerContext, id int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)
	`, id)
	if err != nil {
		return false, dbError("failed to query category", err)
	}
	return exists, nil
}

func (s *Catalog) CreateCategory(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		Title:       in.Title,
		Code:        in.Code,
		Description: in.Description,
		Nominees:    []models.Nominee{},
	}
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO categories (title, code, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, in.Title, in.Code, in.Description).Scan(&category.ID)
	if err != nil {
		return models.Category{}, dbError("failed to create category", err)
	}

	return category, nil
}

// UpdateCategory replaces title, code and description.
func (s *Catalog) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (models.Category, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Category{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET title = $1, code = $2, description = $3
		WHERE id = $4
	`, in.Title, in.Code, in.Description, id)
	if err != nil {
		return models.Category{}, dbError("failed to update category", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Category{}, errCategoryNotFound
	}

	return models.Category{ID: id, Title: in.Title, Code: in.Code, Description: in.Description}, nil
}

// DeleteCategory removes the category with its nominees and ballots in one
// transaction.
func (s *Catalog) DeleteCategory(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE category_id = $1`, id); err != nil {
		return dbError("failed to delete category votes", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nominees WHERE category_id = $1`, id); err != nil {
		return dbError("failed to delete category nominees", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return dbError("failed to delete category", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return dbError("failed to commit transaction", err)
	}
	return nil
}

func (s *Catalog) CreateNominee(ctx context.Context, categoryID int64, in models.NomineeInput) (models.Nominee, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Nominee{}, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Nominee{}, dbError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	exists, err := categoryExists(ctx, tx, categoryID)
	if err != nil {
		return models.Nominee{}, err
	}
	if !exists {
		return models.Nominee{}, errCategoryNotFound
	}

	nominee := models.Nominee{
		CategoryID:  categoryID,
		Name:        in.Name,
		Description: in.Description,
		Role:        in.Role,
		ImageURL:    in.ImageURL,
	}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO nominees (category_id, name, description, role, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, categoryID, in.Name, in.Description, in.Role, in.ImageURL).Scan(&nominee.ID)
	if err != nil {
		return models.Nominee{}, dbError("failed to create nominee", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Nominee{}, dbError("failed to commit transaction", err)
	}
	return nominee, nil
}

// UpdateNominee replaces every field of a nominee within its category.
func (s *Catalog) UpdateNominee(ctx context.Context, categoryID, nomineeID int64, in models.NomineeInput) (models.Nominee, error) {
	in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Nominee{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE nominees
		SET name = $1, description = $2, role = $3, image_url = $4
		WHERE id = $5 AND category_id = $6
	`, in.Name, in.Description, in.Role, in.ImageURL, nomineeID, categoryID)
	if err != nil {
		return models.Nominee{}, dbError("failed to update nominee", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Nominee{}, errNomineeNotFound
	}

	return models.Nominee{
		ID:          nomineeID,
		CategoryID:  categoryID,
		Name:        in.Name,
		Description: in.Description,
		Role:        in.Role,
		ImageURL:    in.ImageURL,
	}, nil
}

// DeleteNominee removes a nominee. Ballots that reference it are kept and
// drop out of the tallies.
func (s *Catalog) DeleteNominee(ctx context.Context, categoryID, nomineeID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM nominees WHERE id = $1 AND category_id = $2
	`, nomineeID, categoryID)
	if err != nil {
		return dbError("failed to delete nominee", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errNomineeNotFound
	}
	return nil
}
