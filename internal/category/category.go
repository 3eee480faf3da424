// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package category owns the two-level category tree. It enforces the depth,
// uniqueness and delete rules and keeps each category's stored slug and
// link in step with its name and parent.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"kuzenim/internal/apperr"
	"kuzenim/internal/models"
	"kuzenim/internal/slug"
	"kuzenim/internal/store"
)

// Name and slug bounds match the categories.name and categories.slug
// columns. A slug can be longer than its name (ß becomes ss).
const (
	maxNameLen = 200
	maxSlugLen = 250
)

// Repository is the persistence the service needs. *store.CategoryStore
// satisfies it.
type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	ListMissingSlug(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	NameTaken(ctx context.Context, name string, parentID, excludeID *uuid.UUID) (bool, error)
	SlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	UpdateCascade(ctx context.Context, c *models.Category, children []store.LinkUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// MenuInput carries optional menu attributes. Nil fields are left unchanged.
type MenuInput struct {
	Icon           *string
	MenuOrder      *int
	IsActiveInMenu *bool
	MenuTarget     *models.MenuTarget
}

// CreateInput describes a new category.
type CreateInput struct {
	Name     string
	ParentID *uuid.UUID
	MenuInput
}

// UpdateInput describes an administrative edit. ParentSet distinguishes
// "leave the parent alone" from an explicit move, where a nil ParentID
// turns the category into a root.
type UpdateInput struct {
	Name      *string
	ParentSet bool
	ParentID  *uuid.UUID
	MenuInput
}

// Service implements the category hierarchy operations.
type Service struct {
	repo Repository
}

// NewService creates a category service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new category with its slug and link.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Category, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:             uuid.New(),
		Name:           name,
		Slug:           slug.Generate(name),
		ParentID:       in.ParentID,
		IsActiveInMenu: true,
		MenuTarget:     models.MenuTargetSelf,
	}
	if err := applyMenu(c, in.MenuInput); err != nil {
		return nil, err
	}

	var parent *models.Category
	if in.ParentID != nil {
		parent, err = s.repo.FindByID(ctx, *in.ParentID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if parent == nil {
			return nil, apperr.NotFound("parent category", *in.ParentID)
		}
		if !parent.IsRoot() {
			return nil, apperr.Invariant("a subcategory cannot be placed under another subcategory")
		}
	}

	if err := s.checkUnique(ctx, c, nil); err != nil {
		return nil, err
	}

	c.Link = ResolveLink(c, parent)

	created, err := s.repo.Create(ctx, c)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperr.Conflict("a category named %q already exists", name)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	slog.Info("category created", "id", created.ID, "slug", created.Slug, "link", created.Link)
	return created, nil
}

// Rename changes a category's name and re-derives its slug and link.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	return s.Update(ctx, id, UpdateInput{Name: &name})
}

// Reparent moves a category under newParentID, or makes it a root when
// newParentID is nil.
func (s *Service) Reparent(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) (*models.Category, error) {
	return s.Update(ctx, id, UpdateInput{ParentSet: true, ParentID: newParentID})
}

// UpdateMenu edits only the menu attributes of a category.
func (s *Service) UpdateMenu(ctx context.Context, id uuid.UUID, in MenuInput) (*models.Category, error) {
	return s.Update(ctx, id, UpdateInput{MenuInput: in})
}

// Update applies an administrative edit. Every change is validated before
// anything is written, and the derived fields are persisted in the same
// write. Renaming a root re-derives the links of its children.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.Category, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug, oldParent := c.Slug, c.ParentID

	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			return nil, err
		}
		if name != c.Name {
			c.Name = name
			c.Slug = slug.Generate(name)
		}
	}

	var parent *models.Category
	if in.ParentSet {
		parent, err = s.checkReparent(ctx, c, in.ParentID)
		if err != nil {
			return nil, err
		}
		c.ParentID = in.ParentID
	} else if c.ParentID != nil {
		parent, err = s.repo.FindByID(ctx, *c.ParentID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
	}

	if err := applyMenu(c, in.MenuInput); err != nil {
		return nil, err
	}

	if c.Slug != oldSlug || !sameParent(c.ParentID, oldParent) || in.Name != nil {
		if err := s.checkUnique(ctx, c, &c.ID); err != nil {
			return nil, err
		}
	}

	c.Link = ResolveLink(c, parent)

	if c.IsRoot() && c.Slug != oldSlug {
		children, err := s.childLinks(ctx, c)
		if err != nil {
			return nil, err
		}
		if err := updateError(s.repo.UpdateCascade(ctx, c, children), c, id); err != nil {
			return nil, err
		}
		if len(children) > 0 {
			slog.Debug("child links re-derived", "parent", c.ID, "count", len(children))
		}
	} else if err := updateError(s.repo.Update(ctx, c), c, id); err != nil {
		return nil, err
	}

	slog.Info("category updated", "id", c.ID, "slug", c.Slug, "link", c.Link)
	return c, nil
}

// updateError maps a store write error to the service error kinds.
func updateError(err error, c *models.Category, id uuid.UUID) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict("a category named %q already exists", c.Name)
	}
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("category", id)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ResetMenu restores a category's menu attributes to their defaults while
// keeping the category itself.
func (s *Service) ResetMenu(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ResetMenu()

	var parent *models.Category
	if c.ParentID != nil {
		if parent, err = s.repo.FindByID(ctx, *c.ParentID); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	c.Link = ResolveLink(c, parent)

	if err := updateError(s.repo.Update(ctx, c), c, id); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category that has no children and returns it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	hasChildren, err := s.repo.HasChildren(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if hasChildren {
		return nil, apperr.Invariant("a category with subcategories cannot be deleted; delete the subcategories first")
	}

	err = s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, store.ErrReferenced):
		return nil, apperr.Invariant("a category with subcategories cannot be deleted; delete the subcategories first")
	case errors.Is(err, store.ErrNotFound):
		return nil, apperr.NotFound("category", id)
	case err != nil:
		return nil, apperr.Internal(err)
	}

	slog.Info("category deleted", "id", id, "slug", c.Slug)
	return c, nil
}

// Like increments the category's like counter.
func (s *Service) Like(ctx context.Context, id uuid.UUID) (int, error) {
	return s.adjustLikes(ctx, id, 1)
}

// Unlike decrements the category's like counter, never below zero.
func (s *Service) Unlike(ctx context.Context, id uuid.UUID) (int, error) {
	return s.adjustLikes(ctx, id, -1)
}

func (s *Service) adjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	likes, err := s.repo.AdjustLikes(ctx, id, delta)
	if errors.Is(err, store.ErrNotFound) {
		return 0, apperr.NotFound("category", id)
	}
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return likes, nil
}

// Get returns a category; roots come with their subcategories.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsRoot() {
		children, err := s.repo.Children(ctx, c.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		c.SubCategories = children
	}
	return c, nil
}

// List returns the admin view of the tree: roots newest first, each with
// its subcategories.
func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	flat, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return buildTree(flat), nil
}

// FindByPath resolves a public link back to a category. parentSlug is
// empty for single-segment links.
func (s *Service) FindByPath(ctx context.Context, parentSlug, childSlug string) (*models.Category, error) {
	c, err := s.repo.FindBySlug(ctx, childSlug)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if c == nil {
		return nil, apperr.NotFound("category", childSlug)
	}

	if parentSlug == "" {
		if !c.IsRoot() {
			return nil, apperr.NotFound("category", childSlug)
		}
		return s.Get(ctx, c.ID)
	}

	if c.IsRoot() {
		return nil, apperr.NotFound("category", parentSlug+"/"+childSlug)
	}
	parent, err := s.repo.FindByID(ctx, *c.ParentID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if parent == nil || parent.Slug != parentSlug {
		return nil, apperr.NotFound("category", parentSlug+"/"+childSlug)
	}
	return c, nil
}

// BackfillSlugs derives slug and link for categories stored without a
// slug. Roots are processed before children so child links can use the
// fresh parent slug. Rows whose slug would collide are skipped and logged.
func (s *Service) BackfillSlugs(ctx context.Context) (int, error) {
	missing, err := s.repo.ListMissingSlug(ctx)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	updated := 0
	for i := range missing {
		c := &missing[i]
		c.Slug = slug.Generate(c.Name)
		if c.Slug == "" {
			continue
		}
		if len(c.Slug) > maxSlugLen {
			slog.Warn("slug backfill skipped, slug too long", "id", c.ID, "length", len(c.Slug))
			continue
		}

		taken, err := s.repo.SlugTaken(ctx, c.Slug, &c.ID)
		if err != nil {
			return updated, apperr.Internal(err)
		}
		if taken {
			slog.Warn("slug backfill skipped, slug in use", "id", c.ID, "slug", c.Slug)
			continue
		}

		var parent *models.Category
		if c.ParentID != nil {
			if parent, err = s.repo.FindByID(ctx, *c.ParentID); err != nil {
				return updated, apperr.Internal(err)
			}
		}
		c.Link = ResolveLink(c, parent)

		if err := s.repo.Update(ctx, c); err != nil {
			return updated, apperr.Internal(fmt.Errorf("backfill category %s: %w", c.ID, err))
		}
		updated++
	}

	if updated > 0 {
		slog.Info("category slugs backfilled", "updated", updated)
	}
	return updated, nil
}

// find loads a category or returns a NotFound error.
func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if c == nil {
		return nil, apperr.NotFound("category", id)
	}
	return c, nil
}

// checkReparent validates moving c under newParentID and returns the new
// parent (nil when becoming a root).
func (s *Service) checkReparent(ctx context.Context, c *models.Category, newParentID *uuid.UUID) (*models.Category, error) {
	if newParentID == nil {
		return nil, nil
	}
	if *newParentID == c.ID {
		return nil, apperr.Invariant("a category cannot be its own parent")
	}

	parent, err := s.repo.FindByID(ctx, *newParentID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if parent == nil {
		return nil, apperr.NotFound("parent category", *newParentID)
	}
	if !parent.IsRoot() {
		return nil, apperr.Invariant("a subcategory cannot be placed under another subcategory")
	}

	hasChildren, err := s.repo.HasChildren(ctx, c.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if hasChildren {
		return nil, apperr.Invariant("a category with subcategories cannot be placed under another category")
	}
	return parent, nil
}

// checkUnique enforces name-per-scope and global slug uniqueness.
func (s *Service) checkUnique(ctx context.Context, c *models.Category, excludeID *uuid.UUID) error {
	taken, err := s.repo.NameTaken(ctx, c.Name, c.ParentID, excludeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflict("a category named %q already exists", c.Name)
	}

	if c.Slug == "" {
		return nil
	}
	taken, err = s.repo.SlugTaken(ctx, c.Slug, excludeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflict("slug %q is already in use", c.Slug)
	}
	return nil
}

// childLinks re-derives the links of a root's children for its new slug.
func (s *Service) childLinks(ctx context.Context, root *models.Category) ([]store.LinkUpdate, error) {
	children, err := s.repo.Children(ctx, root.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	updates := make([]store.LinkUpdate, 0, len(children))
	for i := range children {
		updates = append(updates, store.LinkUpdate{
			ID:   children[i].ID,
			Link: ResolveLink(&children[i], root),
		})
	}
	return updates, nil
}

// validateName trims a category name and checks it is present, bounded
// and yields a non-empty slug.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("category name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", apperr.Validation("category name is too long (max %d characters)", maxNameLen)
	}
	generated := slug.Generate(name)
	if generated == "" {
		return "", apperr.Validation("category name must contain at least one letter or digit")
	}
	if len(generated) > maxSlugLen {
		return "", apperr.Validation("category name is too long (slug exceeds %d characters)", maxSlugLen)
	}
	return name, nil
}

// applyMenu copies the set menu attributes onto c.
func applyMenu(c *models.Category, in MenuInput) error {
	if in.MenuTarget != nil {
		if !in.MenuTarget.Valid() {
			return apperr.Validation("menuTarget must be _self or _blank")
		}
		c.MenuTarget = *in.MenuTarget
	}
	if in.Icon != nil {
		c.Icon = strings.TrimSpace(*in.Icon)
	}
	if in.MenuOrder != nil {
		c.MenuOrder = *in.MenuOrder
	}
	if in.IsActiveInMenu != nil {
		c.IsActiveInMenu = *in.IsActiveInMenu
	}
	return nil
}

// sameParent compares two *uuid.UUID for equality (both nil or same value).
func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
