// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kuzenim/internal/engagement"
	"kuzenim/internal/middleware"
)

// Public groups the unauthenticated API handlers.
type Public struct {
	categories CategoryService
	menus      MenuProjector
	ledger     LikeLedger
	verbose    bool
}

// NewPublic creates the public handler group.
func NewPublic(categories CategoryService, menus MenuProjector, ledger LikeLedger, verbose bool) *Public {
	return &Public{
		categories: categories,
		menus:      menus,
		ledger:     ledger,
		verbose:    verbose,
	}
}

// Menu returns the navigation tree of active entries.
func (p *Public) Menu(w http.ResponseWriter, r *http.Request) {
	nodes, err := p.menus.Project(r.Context(), true)
	if err != nil {
		writeError(w, r, err, p.verbose)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

// Category resolves /categories/{slug} and /categories/{parentSlug}/{slug}.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	c, err := p.categories.FindByPath(r.Context(), chi.URLParam(r, "parentSlug"), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err, p.verbose)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ArticleLike toggles the caller's like on an article.
func (p *Public) ArticleLike(w http.ResponseWriter, r *http.Request) {
	p.ledgerOp(w, r, p.ledger.Toggle)
}

// ArticleUnlike removes the caller's like. It fails when there is none.
func (p *Public) ArticleUnlike(w http.ResponseWriter, r *http.Request) {
	p.ledgerOp(w, r, p.ledger.Unlike)
}

// ArticleLikeStatus reports the counter and whether the caller likes it.
func (p *Public) ArticleLikeStatus(w http.ResponseWriter, r *http.Request) {
	p.ledgerOp(w, r, p.ledger.Status)
}

func (p *Public) ledgerOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, ref, identity string) (engagement.Result, error)) {
	res, err := op(r.Context(), chi.URLParam(r, "slugOrId"), middleware.ClientIP(r))
	if err != nil {
		writeError(w, r, err, p.verbose)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
