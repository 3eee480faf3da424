// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kuzenim/internal/models"
)

// ArticleStore reads articles and maintains their denormalized like counter.
// Article content itself is managed elsewhere.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, COALESCE(slug, ''), status, category_id, likes, views, created_at, updated_at`

func scanArticle(row scanner) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Status, &a.CategoryID,
		&a.Likes, &a.Views, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindBySlug retrieves an article by its slug. Returns nil if not found.
func (s *ArticleStore) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// FindBySlugOrID resolves a public article reference. A value that parses
// as a UUID is looked up by ID first, then by slug.
func (s *ArticleStore) FindBySlugOrID(ctx context.Context, ref string) (*models.Article, error) {
	if id, err := uuid.Parse(ref); err == nil {
		a, err := s.FindByID(ctx, id)
		if err != nil || a != nil {
			return a, err
		}
	}
	return s.FindBySlug(ctx, ref)
}

// AdjustLikes applies delta to the like counter in a single statement,
// clamping at zero, and returns the new value.
func (s *ArticleStore) AdjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var likes int
	err := s.db.QueryRowContext(ctx, `
		UPDATE articles SET likes = GREATEST(likes + $1, 0)
		WHERE id = $2
		RETURNING likes
	`, delta, id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjust article likes: %w", err)
	}
	return likes, nil
}

// ReconcileLikes sets the counter of one article to its ledger row count.
// It returns the reconciled value and the value it replaced.
func (s *ArticleStore) ReconcileLikes(ctx context.Context, id uuid.UUID) (likes, previous int, err error) {
	err = s.db.QueryRowContext(ctx, `
		WITH prev AS (SELECT likes FROM articles WHERE id = $1)
		UPDATE articles
		SET likes = (SELECT COUNT(*) FROM article_likes WHERE article_id = $1)
		WHERE id = $1
		RETURNING likes, (SELECT likes FROM prev)
	`, id).Scan(&likes, &previous)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("reconcile article likes: %w", err)
	}
	return likes, previous, nil
}

// ReconcileAllLikes repairs every article whose counter differs from its
// ledger row count and returns how many were corrected.
func (s *ArticleStore) ReconcileAllLikes(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles a SET likes = c.total
		FROM (
			SELECT ar.id, COUNT(l.id) AS total
			FROM articles ar
			LEFT JOIN article_likes l ON l.article_id = ar.id
			GROUP BY ar.id
		) c
		WHERE a.id = c.id AND a.likes <> c.total
	`)
	if err != nil {
		return 0, fmt.Errorf("reconcile all article likes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reconcile all article likes rows affected: %w", err)
	}
	return int(n), nil
}
