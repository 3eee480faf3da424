// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuTarget controls whether a menu entry opens in the same window or a new one.
type MenuTarget string

const (
	MenuTargetSelf  MenuTarget = "_self"
	MenuTargetBlank MenuTarget = "_blank"
)

// Valid reports whether t is one of the known targets.
func (t MenuTarget) Valid() bool {
	return t == MenuTargetSelf || t == MenuTargetBlank
}

// Category is a node in the two-level category tree. Roots have a nil
// ParentID; children reference a root and never have children themselves.
// Slug and Link are derived from Name and the parent's slug and are stored
// at write time.
type Category struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	ParentID       *uuid.UUID `json:"parentCategory"`
	Link           string     `json:"link"`
	Icon           string     `json:"icon"`
	MenuOrder      int        `json:"menuOrder"`
	IsActiveInMenu bool       `json:"isActiveInMenu"`
	MenuTarget     MenuTarget `json:"menuTarget"`
	Likes          int        `json:"likes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Virtual field populated by hierarchical reads.
	SubCategories []Category `json:"subCategories,omitempty"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// ResetMenu restores the menu attributes to their defaults.
func (c *Category) ResetMenu() {
	c.Icon = ""
	c.MenuOrder = 0
	c.IsActiveInMenu = true
	c.MenuTarget = MenuTargetSelf
}
