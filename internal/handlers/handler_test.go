// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: stub services and a
// chi mux that mirrors the production routes.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kuzenim/internal/category"
	"kuzenim/internal/engagement"
	"kuzenim/internal/menu"
	"kuzenim/internal/models"
)

// stubCategories embeds the interface so tests only provide the methods
// they exercise; anything else panics.
type stubCategories struct {
	CategoryService

	create     func(category.CreateInput) (*models.Category, error)
	update     func(uuid.UUID, category.UpdateInput) (*models.Category, error)
	get        func(uuid.UUID) (*models.Category, error)
	list       func() ([]models.Category, error)
	del        func(uuid.UUID) (*models.Category, error)
	findByPath func(parentSlug, childSlug string) (*models.Category, error)
	like       func(uuid.UUID) (int, error)
	unlike     func(uuid.UUID) (int, error)
	backfill   func() (int, error)
	updateMenu func(uuid.UUID, category.MenuInput) (*models.Category, error)
	resetMenu  func(uuid.UUID) (*models.Category, error)
}

func (s *stubCategories) Create(_ context.Context, in category.CreateInput) (*models.Category, error) {
	return s.create(in)
}

func (s *stubCategories) Update(_ context.Context, id uuid.UUID, in category.UpdateInput) (*models.Category, error) {
	return s.update(id, in)
}

func (s *stubCategories) Get(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return s.get(id)
}

func (s *stubCategories) List(context.Context) ([]models.Category, error) {
	return s.list()
}

func (s *stubCategories) Delete(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return s.del(id)
}

func (s *stubCategories) FindByPath(_ context.Context, parentSlug, childSlug string) (*models.Category, error) {
	return s.findByPath(parentSlug, childSlug)
}

func (s *stubCategories) Like(_ context.Context, id uuid.UUID) (int, error) {
	return s.like(id)
}

func (s *stubCategories) Unlike(_ context.Context, id uuid.UUID) (int, error) {
	return s.unlike(id)
}

func (s *stubCategories) BackfillSlugs(context.Context) (int, error) {
	return s.backfill()
}

func (s *stubCategories) UpdateMenu(_ context.Context, id uuid.UUID, in category.MenuInput) (*models.Category, error) {
	return s.updateMenu(id, in)
}

func (s *stubCategories) ResetMenu(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return s.resetMenu(id)
}

type menuFunc func(activeOnly bool) ([]menu.Node, error)

func (f menuFunc) Project(_ context.Context, activeOnly bool) ([]menu.Node, error) {
	return f(activeOnly)
}

type stubLedger struct {
	LikeLedger

	toggle    func(ref, identity string) (engagement.Result, error)
	unlike    func(ref, identity string) (engagement.Result, error)
	status    func(ref, identity string) (engagement.Result, error)
	reconcile func(uuid.UUID) (engagement.Drift, error)
}

func (s *stubLedger) Toggle(_ context.Context, ref, identity string) (engagement.Result, error) {
	return s.toggle(ref, identity)
}

func (s *stubLedger) Unlike(_ context.Context, ref, identity string) (engagement.Result, error) {
	return s.unlike(ref, identity)
}

func (s *stubLedger) Status(_ context.Context, ref, identity string) (engagement.Result, error) {
	return s.status(ref, identity)
}

func (s *stubLedger) Reconcile(_ context.Context, id uuid.UUID) (engagement.Drift, error) {
	return s.reconcile(id)
}

// newTestMux mounts the handlers on the same paths the router uses,
// without auth or rate limiting.
func newTestMux(admin *Admin, public *Public) chi.Router {
	r := chi.NewRouter()

	r.Route("/api/admin", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.CategoriesList)
			r.Post("/", admin.CategoryCreate)
			r.Post("/generate-slugs", admin.CategoriesGenerateSlugs)
			r.Get("/{id}", admin.CategoryGet)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
			r.Post("/{id}/like", admin.CategoryLike)
			r.Post("/{id}/unlike", admin.CategoryUnlike)
		})
		r.Route("/menus", func(r chi.Router) {
			r.Get("/", admin.MenusList)
			r.Get("/{id}", admin.MenuGet)
			r.Put("/{id}", admin.MenuUpdate)
			r.Delete("/{id}", admin.MenuReset)
		})
		r.Post("/articles/{id}/reconcile-likes", admin.ArticleReconcileLikes)
	})

	r.Get("/api/menus", public.Menu)
	r.Get("/api/categories/{slug}", public.Category)
	r.Get("/api/categories/{parentSlug}/{slug}", public.Category)
	r.Get("/api/articles/{slugOrId}/like", public.ArticleLikeStatus)
	r.Post("/api/articles/{slugOrId}/like", public.ArticleLike)
	r.Post("/api/articles/{slugOrId}/unlike", public.ArticleUnlike)

	return r
}

// do sends a request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the recorder's JSON body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func ptr[T any](v T) *T { return &v }
