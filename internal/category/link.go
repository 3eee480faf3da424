// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import (
	"kuzenim/internal/models"
)

// LinkPrefix is the public path under which categories are served.
const LinkPrefix = "/categories"

// ResolveLink derives the canonical path of c. A child whose parent has a
// slug gets a two-segment path, everything else with a slug gets a single
// segment, and a category without a slug falls back to an ID-based path.
func ResolveLink(c *models.Category, parent *models.Category) string {
	if c.Slug == "" {
		return LinkPrefix + "/id/" + c.ID.String()
	}
	if parent != nil && parent.Slug != "" {
		return LinkPrefix + "/" + parent.Slug + "/" + c.Slug
	}
	return LinkPrefix + "/" + c.Slug
}
