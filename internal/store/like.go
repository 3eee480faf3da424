// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// LikeStore manages article_likes ledger rows. The (article_id, identity)
// unique constraint is the only serialization point for likes.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore with the given database connection.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Exists reports whether identity currently likes the article.
func (s *LikeStore) Exists(ctx context.Context, articleID uuid.UUID, identity string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM article_likes WHERE article_id = $1 AND identity = $2)
	`, articleID, identity).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article like: %w", err)
	}
	return exists, nil
}

// Insert records a like. Returns ErrDuplicate if the row already exists.
func (s *LikeStore) Insert(ctx context.Context, articleID uuid.UUID, identity string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO article_likes (article_id, identity) VALUES ($1, $2)
	`, articleID, identity)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert article like: %w", err)
	}
	return nil
}

// Delete removes a like and reports whether a row was actually removed.
func (s *LikeStore) Delete(ctx context.Context, articleID uuid.UUID, identity string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM article_likes WHERE article_id = $1 AND identity = $2
	`, articleID, identity)
	if err != nil {
		return false, fmt.Errorf("delete article like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete article like rows affected: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of ledger rows for an article.
func (s *LikeStore) Count(ctx context.Context, articleID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM article_likes WHERE article_id = $1`, articleID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count article likes: %w", err)
	}
	return count, nil
}
