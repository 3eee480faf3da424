// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Kuzenim API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kuzenim/internal/handlers"
	"kuzenim/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. likeLimiter throttles the like endpoints.
func New(admin *handlers.Admin, public *handlers.Public, jwtSecret []byte, likeLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health and metrics, no auth.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Admin API, bearer JWT with the admin role.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtSecret))

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

	// Public API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/menus", public.Menu)
		r.Get("/categories/{slug}", public.Category)
		r.Get("/categories/{parentSlug}/{slug}", public.Category)

		r.Route("/articles/{slugOrId}", func(r chi.Router) {
			r.Get("/like", public.ArticleLikeStatus)
			r.Group(func(r chi.Router) {
				r.Use(likeLimiter.Middleware)
				r.Post("/like", public.ArticleLike)
				r.Post("/unlike", public.ArticleUnlike)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
