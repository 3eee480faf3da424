// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"kuzenim/internal/slug"
)

// seedTree is the sample category tree created in development.
var seedTree = []struct {
	name     string
	icon     string
	children []string
}{
	{"Teknoloji", "cpu", []string{"Yapay Zeka", "Web Geliştirme", "Mobil"}},
	{"Bilim", "flask", []string{"Uzay", "Sağlık"}},
	{"Spor", "ball", []string{"Futbol", "Basketbol"}},
	{"Kültür & Sanat", "palette", nil},
}

// seedArticles are published sample articles for exercising likes.
var seedArticles = []struct {
	title    string
	category string
}{
	{"Merhaba Dünya", "Teknoloji"},
	{"Büyük Dil Modelleri Nasıl Çalışır?", "Yapay Zeka"},
	{"Mars'a Yolculuk", "Uzay"},
}

// Seed populates the database with a sample category tree and a few
// published articles. It is a no-op if any category already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	ids := make(map[string]string)
	insert := func(name, icon string, order int, parentID *string, link string) error {
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (name, slug, parent_id, link, icon, menu_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, name, slug.Generate(name), parentID, link, icon, order).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
		ids[name] = id
		return nil
	}

	for i, root := range seedTree {
		rootSlug := slug.Generate(root.name)
		if err := insert(root.name, root.icon, i, nil, "/categories/"+rootSlug); err != nil {
			return err
		}
		parentID := ids[root.name]
		for j, child := range root.children {
			link := "/categories/" + rootSlug + "/" + slug.Generate(child)
			if err := insert(child, "", j, &parentID, link); err != nil {
				return err
			}
		}
	}

	for _, a := range seedArticles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO articles (title, slug, category_id, status)
			VALUES ($1, $2, $3, 'published')
		`, a.title, slug.Generate(a.title), ids[a.category])
		if err != nil {
			return fmt.Errorf("seed insert article %q: %w", a.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with sample categories",
		"categories", len(ids),
		"articles", len(seedArticles),
	)
	return nil
}
