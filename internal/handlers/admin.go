// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Kuzenim API.
// Handlers are grouped by audience (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"kuzenim/internal/category"
	"kuzenim/internal/engagement"
	"kuzenim/internal/menu"
	"kuzenim/internal/models"
)

// CategoryService is the category hierarchy. *category.Service satisfies it.
type CategoryService interface {
	Create(ctx context.Context, in category.CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, in category.UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	FindByPath(ctx context.Context, parentSlug, childSlug string) (*models.Category, error)
	Like(ctx context.Context, id uuid.UUID) (int, error)
	Unlike(ctx context.Context, id uuid.UUID) (int, error)
	BackfillSlugs(ctx context.Context) (int, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, in category.MenuInput) (*models.Category, error)
	ResetMenu(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// MenuProjector builds navigation trees. *menu.Projector satisfies it.
type MenuProjector interface {
	Project(ctx context.Context, activeOnly bool) ([]menu.Node, error)
}

// LikeLedger is the article like ledger. *engagement.Ledger satisfies it.
type LikeLedger interface {
	Toggle(ctx context.Context, articleRef, identity string) (engagement.Result, error)
	Unlike(ctx context.Context, articleRef, identity string) (engagement.Result, error)
	Status(ctx context.Context, articleRef, identity string) (engagement.Result, error)
	Reconcile(ctx context.Context, articleID uuid.UUID) (engagement.Drift, error)
}

// Admin groups the administrative API handlers.
type Admin struct {
	categories CategoryService
	menus      MenuProjector
	ledger     LikeLedger
	verbose    bool
}

// NewAdmin creates the admin handler group. verbose exposes internal
// error causes in responses and is meant for development.
func NewAdmin(categories CategoryService, menus MenuProjector, ledger LikeLedger, verbose bool) *Admin {
	return &Admin{
		categories: categories,
		menus:      menus,
		ledger:     ledger,
		verbose:    verbose,
	}
}

// --- Categories ---

// CategoriesList returns the category tree, roots newest first.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	list, err := a.categories.List(r.Context())
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CategoryGet returns one category with its subcategories.
func (a *Admin) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	c, err := a.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CategoryCreate creates a root or child category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	in, err := req.toCreateInput()
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	c, err := a.categories.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	slog.Info("category created", "category_id", c.ID, "slug", c.Slug)
	writeJSON(w, http.StatusCreated, c)
}

// CategoryUpdate renames, moves and edits menu attributes in one call.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	in, err := req.toUpdateInput()
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	c, err := a.categories.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	slog.Info("category updated", "category_id", c.ID, "link", c.Link)
	writeJSON(w, http.StatusOK, c)
}

// CategoryDelete removes a category without children.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	c, err := a.categories.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	slog.Info("category deleted", "category_id", c.ID, "name", c.Name)
	writeJSON(w, http.StatusOK, struct {
		Message         string           `json:"message"`
		DeletedCategory *models.Category `json:"deletedCategory"`
	}{"Category deleted", c})
}

// CategoryLike increments the category's like counter.
func (a *Admin) CategoryLike(w http.ResponseWriter, r *http.Request) {
	a.adjustCategoryLikes(w, r, a.categories.Like)
}

// CategoryUnlike decrements the category's like counter, never below zero.
func (a *Admin) CategoryUnlike(w http.ResponseWriter, r *http.Request) {
	a.adjustCategoryLikes(w, r, a.categories.Unlike)
}

func (a *Admin) adjustCategoryLikes(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (int, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	likes, err := op(r.Context(), id)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Likes int `json:"likes"`
	}{likes})
}

// CategoriesGenerateSlugs backfills slugs and links for legacy rows.
func (a *Admin) CategoriesGenerateSlugs(w http.ResponseWriter, r *http.Request) {
	n, err := a.categories.BackfillSlugs(r.Context())
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	slog.Info("category slugs backfilled", "updated", n)
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Updated int    `json:"updated"`
	}{"Slugs generated", n})
}

// --- Menus ---

// MenusList returns the full menu tree, including inactive entries.
func (a *Admin) MenusList(w http.ResponseWriter, r *http.Request) {
	nodes, err := a.menus.Project(r.Context(), false)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

// MenuGet returns one category's menu entry.
func (a *Admin) MenuGet(w http.ResponseWriter, r *http.Request) {
	a.CategoryGet(w, r)
}

// MenuUpdate edits only the menu attributes of a category.
func (a *Admin) MenuUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	var req menuRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	if err := validateMenu(req); err != nil {
		writeError(w, r, err, a.verbose)
		return
	}

	c, err := a.categories.UpdateMenu(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// MenuReset restores a category's menu attributes to their defaults.
// The category itself is kept.
func (a *Admin) MenuReset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	c, err := a.categories.ResetMenu(r.Context(), id)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message  string           `json:"message"`
		Category *models.Category `json:"category"`
	}{"Menu settings reset", c})
}

// --- Articles ---

// ArticleReconcileLikes recounts an article's ledger rows and repairs
// its counter.
func (a *Admin) ArticleReconcileLikes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	d, err := a.ledger.Reconcile(r.Context(), id)
	if err != nil {
		writeError(w, r, err, a.verbose)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Likes int `json:"likes"`
		Drift int `json:"drift"`
	}{d.Likes, d.Delta()})
}
