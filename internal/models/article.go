// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article holds the article fields the engagement ledger works with.
// Body, images and authorship belong to the article editor and are not
// loaded here. Likes is a cache of the ArticleLike row count.
type Article struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Status     ArticleStatus `json:"status"`
	CategoryID *uuid.UUID    `json:"category,omitempty"`
	Likes      int           `json:"likes"`
	Views      int           `json:"views"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// ArticleLike is a ledger row: one identity's active like on one article.
// At most one row exists per (ArticleID, Identity).
type ArticleLike struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"article"`
	Identity  string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
}
