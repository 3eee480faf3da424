// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engagement implements the article like ledger: one row per
// (article, identity) pair plus a denormalized counter on the article.
// The unique constraint on the ledger is the only serialization point;
// the counter is kept close with atomic deltas and repaired by Reconcile.
package engagement

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"kuzenim/internal/apperr"
	"kuzenim/internal/models"
	"kuzenim/internal/observability"
	"kuzenim/internal/store"
)

// Articles is the article access the ledger needs. *store.ArticleStore
// satisfies it.
type Articles interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	FindBySlugOrID(ctx context.Context, ref string) (*models.Article, error)
	AdjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error)
	ReconcileLikes(ctx context.Context, id uuid.UUID) (likes, previous int, err error)
	ReconcileAllLikes(ctx context.Context) (int, error)
}

// Likes is the ledger row access. *store.LikeStore satisfies it.
type Likes interface {
	Exists(ctx context.Context, articleID uuid.UUID, identity string) (bool, error)
	Insert(ctx context.Context, articleID uuid.UUID, identity string) error
	Delete(ctx context.Context, articleID uuid.UUID, identity string) (bool, error)
}

// Result is the caller-visible state after a ledger operation.
type Result struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// Drift describes a counter repair.
type Drift struct {
	Likes    int `json:"likes"`
	Previous int `json:"previous"`
}

// Delta is how far the counter was off before the repair.
func (d Drift) Delta() int {
	return d.Previous - d.Likes
}

// Ledger toggles likes and keeps article counters in step.
type Ledger struct {
	articles Articles
	likes    Likes
}

// NewLedger creates a ledger over the given stores.
func NewLedger(articles Articles, likes Likes) *Ledger {
	return &Ledger{articles: articles, likes: likes}
}

// Toggle likes the article for identity, or removes the like if one
// exists. A concurrent insert that loses the unique-constraint race is
// treated as "already liked" and takes the unlike path.
func (l *Ledger) Toggle(ctx context.Context, articleRef, identity string) (Result, error) {
	article, identity, err := l.resolve(ctx, articleRef, identity)
	if err != nil {
		return Result{}, err
	}

	liked, err := l.likes.Exists(ctx, article.ID, identity)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	if liked {
		return l.remove(ctx, article.ID, identity)
	}

	err = l.likes.Insert(ctx, article.ID, identity)
	if errors.Is(err, store.ErrDuplicate) {
		slog.Warn("like insert lost race, treating as liked",
			"article_id", article.ID, "identity", identity)
		observability.LikeTogglesTotal.WithLabelValues("race_recovered").Inc()
		return l.remove(ctx, article.ID, identity)
	}
	if err != nil {
		return Result{}, apperr.Internal(err)
	}

	likes, err := l.adjust(ctx, article.ID, 1)
	if err != nil {
		return Result{}, err
	}
	observability.LikeTogglesTotal.WithLabelValues("liked").Inc()
	slog.Debug("article liked", "article_id", article.ID, "likes", likes)
	return Result{Likes: likes, IsLiked: true}, nil
}

// Unlike removes identity's like. It fails with InvalidState when the
// article was not liked by identity.
func (l *Ledger) Unlike(ctx context.Context, articleRef, identity string) (Result, error) {
	article, identity, err := l.resolve(ctx, articleRef, identity)
	if err != nil {
		return Result{}, err
	}

	liked, err := l.likes.Exists(ctx, article.ID, identity)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	if !liked {
		return Result{}, apperr.InvalidState("article has not been liked")
	}
	return l.remove(ctx, article.ID, identity)
}

// Status reports the counter and whether identity currently likes the article.
func (l *Ledger) Status(ctx context.Context, articleRef, identity string) (Result, error) {
	article, identity, err := l.resolve(ctx, articleRef, identity)
	if err != nil {
		return Result{}, err
	}

	liked, err := l.likes.Exists(ctx, article.ID, identity)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}
	return Result{Likes: article.Likes, IsLiked: liked}, nil
}

// Reconcile sets one article's counter to its ledger row count.
func (l *Ledger) Reconcile(ctx context.Context, articleID uuid.UUID) (Drift, error) {
	likes, previous, err := l.articles.ReconcileLikes(ctx, articleID)
	if errors.Is(err, store.ErrNotFound) {
		return Drift{}, apperr.NotFound("article", articleID)
	}
	if err != nil {
		return Drift{}, apperr.Internal(err)
	}

	d := Drift{Likes: likes, Previous: previous}
	if d.Delta() != 0 {
		observability.LikeDriftCorrected.Inc()
		slog.Info("article like counter reconciled",
			"article_id", articleID, "likes", likes, "previous", previous)
	}
	return d, nil
}

// ReconcileAll repairs every drifted counter and returns how many changed.
func (l *Ledger) ReconcileAll(ctx context.Context) (int, error) {
	n, err := l.articles.ReconcileAllLikes(ctx)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if n > 0 {
		observability.LikeDriftCorrected.Add(float64(n))
		slog.Info("article like counters reconciled", "corrected", n)
	}
	return n, nil
}

// remove deletes the ledger row and decrements the counter only if this
// call actually removed it.
func (l *Ledger) remove(ctx context.Context, articleID uuid.UUID, identity string) (Result, error) {
	removed, err := l.likes.Delete(ctx, articleID, identity)
	if err != nil {
		return Result{}, apperr.Internal(err)
	}

	var likes int
	if removed {
		if likes, err = l.adjust(ctx, articleID, -1); err != nil {
			return Result{}, err
		}
		observability.LikeTogglesTotal.WithLabelValues("unliked").Inc()
	} else {
		article, err := l.articles.FindByID(ctx, articleID)
		if err != nil {
			return Result{}, apperr.Internal(err)
		}
		if article == nil {
			return Result{}, apperr.NotFound("article", articleID)
		}
		likes = article.Likes
	}

	slog.Debug("article unliked", "article_id", articleID, "likes", likes, "removed", removed)
	return Result{Likes: likes, IsLiked: false}, nil
}

func (l *Ledger) adjust(ctx context.Context, articleID uuid.UUID, delta int) (int, error) {
	likes, err := l.articles.AdjustLikes(ctx, articleID, delta)
	if errors.Is(err, store.ErrNotFound) {
		return 0, apperr.NotFound("article", articleID)
	}
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return likes, nil
}

// resolve loads the article and normalizes the identity.
func (l *Ledger) resolve(ctx context.Context, articleRef, identity string) (*models.Article, string, error) {
	articleRef = strings.TrimSpace(articleRef)
	if articleRef == "" {
		return nil, "", apperr.Validation("article reference is required")
	}
	identity = boundIdentity(strings.TrimSpace(identity))
	if identity == "" {
		identity = UnknownIdentity
	}

	article, err := l.articles.FindBySlugOrID(ctx, articleRef)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if article == nil {
		return nil, "", apperr.NotFound("article", articleRef)
	}
	return article, identity, nil
}

// UnknownIdentity is used when no client address can be determined.
const UnknownIdentity = "unknown"

// MaxIdentityLen is the width of the article_likes.identity column.
const MaxIdentityLen = 100

// boundIdentity cuts identity to MaxIdentityLen bytes without splitting a
// UTF-8 sequence.
func boundIdentity(identity string) string {
	if len(identity) <= MaxIdentityLen {
		return identity
	}
	identity = identity[:MaxIdentityLen]
	for !utf8.ValidString(identity) {
		identity = identity[:len(identity)-1]
	}
	return identity
}
