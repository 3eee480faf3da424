// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package category

import (
	"github.com/google/uuid"

	"kuzenim/internal/models"
)

// buildTree nests a flat list into roots with their subcategories,
// preserving the input order at each level.
func buildTree(flat []models.Category) []models.Category {
	return buildLevel(flat, nil, 0)
}

func buildLevel(flat []models.Category, parentID *uuid.UUID, depth int) []models.Category {
	result := []models.Category{}
	for _, c := range flat {
		if !sameParent(c.ParentID, parentID) {
			continue
		}
		if depth == 0 {
			c.SubCategories = buildLevel(flat, &c.ID, depth+1)
		}
		result = append(result, c)
	}
	return result
}
