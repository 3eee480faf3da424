// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu projects the category tree into navigation menus.
package menu

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"kuzenim/internal/models"
)

// Node is one menu entry. Roots carry their children; children never do.
type Node struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Link           string            `json:"link"`
	Icon           string            `json:"icon"`
	MenuOrder      int               `json:"menuOrder"`
	IsActiveInMenu bool              `json:"isActiveInMenu"`
	MenuTarget     models.MenuTarget `json:"menuTarget"`
	Children       []Node            `json:"subCategories"`
}

func newNode(c models.Category) Node {
	return Node{
		ID:             c.ID,
		Name:           c.Name,
		Slug:           c.Slug,
		Link:           c.Link,
		Icon:           c.Icon,
		MenuOrder:      c.MenuOrder,
		IsActiveInMenu: c.IsActiveInMenu,
		MenuTarget:     c.MenuTarget,
		Children:       []Node{},
	}
}

// Build arranges categories into a root-to-children menu. Each level is
// sorted by menu order, newest first on ties. With activeOnly, inactive
// roots and inactive children are dropped independently; children of a
// dropped root are never promoted. The input is not modified.
func Build(categories []models.Category, activeOnly bool) []Node {
	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MenuOrder != sorted[j].MenuOrder {
			return sorted[i].MenuOrder < sorted[j].MenuOrder
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	children := make(map[uuid.UUID][]Node)
	for _, c := range sorted {
		if c.ParentID == nil || (activeOnly && !c.IsActiveInMenu) {
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], newNode(c))
	}

	roots := []Node{}
	for _, c := range sorted {
		if c.ParentID != nil || (activeOnly && !c.IsActiveInMenu) {
			continue
		}
		n := newNode(c)
		if kids, ok := children[c.ID]; ok {
			n.Children = kids
		}
		roots = append(roots, n)
	}
	return roots
}

// Source lists every category. *store.CategoryStore satisfies it.
type Source interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Projector reads the current categories on every call and builds a menu.
type Projector struct {
	src Source
}

// NewProjector creates a projector over src.
func NewProjector(src Source) *Projector {
	return &Projector{src: src}
}

// Project returns the menu tree, optionally limited to active entries.
func (p *Projector) Project(ctx context.Context, activeOnly bool) ([]Node, error) {
	cats, err := p.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("project menu: %w", err)
	}
	return Build(cats, activeOnly), nil
}
