// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kuzenim/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, parent_id, link, icon, menu_order,
	is_active_in_menu, menu_target, likes, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Link, &c.Icon, &c.MenuOrder,
		&c.IsActiveInMenu, &c.MenuTarget, &c.Likes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// queryCategories runs a SELECT returning category rows.
func (s *CategoryStore) queryCategories(ctx context.Context, op, query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns all categories, newest first.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.queryCategories(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC`)
}

// Children returns the direct children of a category ordered for menus.
func (s *CategoryStore) Children(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return s.queryCategories(ctx, "list child categories",
		`SELECT `+categoryColumns+` FROM categories
		 WHERE parent_id = $1
		 ORDER BY menu_order, created_at DESC`, parentID)
}

// ListMissingSlug returns categories without a slug, roots first.
func (s *CategoryStore) ListMissingSlug(ctx context.Context) ([]models.Category, error) {
	return s.queryCategories(ctx, "list categories missing slug",
		`SELECT `+categoryColumns+` FROM categories
		 WHERE slug = ''
		 ORDER BY parent_id NULLS FIRST, created_at`)
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// HasChildren reports whether any category references id as its parent.
func (s *CategoryStore) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category children: %w", err)
	}
	return exists, nil
}

// NameTaken reports whether another category in the same parent scope
// already uses name. excludeID is ignored when nil.
func (s *CategoryStore) NameTaken(ctx context.Context, name string, parentID, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE name = $1
			  AND parent_id IS NOT DISTINCT FROM $2
			  AND ($3::uuid IS NULL OR id <> $3)
		)`, name, parentID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return exists, nil
}

// SlugTaken reports whether another category already uses slug.
func (s *CategoryStore) SlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2)
		)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it. The caller supplies the ID
// so the derived link can be computed before the insert. Returns
// ErrDuplicate when a unique index rejects the row.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, slug, parent_id, link, icon, menu_order,
		                        is_active_in_menu, menu_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+categoryColumns,
		c.ID, c.Name, c.Slug, c.ParentID, c.Link, c.Icon, c.MenuOrder,
		c.IsActiveInMenu, c.MenuTarget,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Update writes every mutable column of an existing category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	return updateCategory(ctx, s.db, c)
}

func updateCategory(ctx context.Context, ex execer, c *models.Category) error {
	res, err := ex.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, parent_id = $3, link = $4, icon = $5,
			menu_order = $6, is_active_in_menu = $7, menu_target = $8,
			updated_at = NOW()
		WHERE id = $9
	`, c.Name, c.Slug, c.ParentID, c.Link, c.Icon,
		c.MenuOrder, c.IsActiveInMenu, c.MenuTarget, c.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res, "update category")
}

// LinkUpdate pairs a category ID with its re-derived link.
type LinkUpdate struct {
	ID   uuid.UUID
	Link string
}

// UpdateCascade writes c and rewrites the stored links of its children in
// one transaction. Either every row changes or none does.
func (s *CategoryStore) UpdateCascade(ctx context.Context, c *models.Category, children []LinkUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := updateCategory(ctx, tx, c); err != nil {
		return err
	}

	if len(children) > 0 {
		stmt, err := tx.PrepareContext(ctx, `UPDATE categories SET link = $1, updated_at = $2 WHERE id = $3`)
		if err != nil {
			return fmt.Errorf("prepare link update: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, item := range children {
			if _, err := stmt.ExecContext(ctx, item.Link, now, item.ID); err != nil {
				return fmt.Errorf("update link for category %s: %w", item.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit category update: %w", err)
	}
	return nil
}

// Delete removes a category by ID. The parent_id foreign key is
// ON DELETE RESTRICT, so a category with children cannot be removed even if
// a concurrent insert slipped past the service check.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res, "delete category")
}

// AdjustLikes applies delta to the like counter atomically, clamping at
// zero, and returns the new value.
func (s *CategoryStore) AdjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, `
		UPDATE categories SET likes = GREATEST(likes + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING likes
	`, delta, id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjust category likes: %w", err)
	}
	return likes, nil
}

// requireRow converts a zero rows-affected result into ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
