// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kuzenim/internal/apperr"
	"kuzenim/internal/category"
	"kuzenim/internal/models"
)

// Request limits for JSON bodies and menu fields.
const (
	maxBodyBytes = 64 << 10
	maxIconLen   = 200
	maxMenuOrder = 1_000_000
)

// menuRequest holds the optional menu attributes accepted by category and
// menu endpoints. Absent fields leave the stored value unchanged.
type menuRequest struct {
	Icon           *string            `json:"icon"`
	MenuOrder      *int               `json:"menuOrder"`
	IsActiveInMenu *bool              `json:"isActiveInMenu"`
	MenuTarget     *models.MenuTarget `json:"menuTarget"`
}

func (m menuRequest) input() category.MenuInput {
	return category.MenuInput{
		Icon:           m.Icon,
		MenuOrder:      m.MenuOrder,
		IsActiveInMenu: m.IsActiveInMenu,
		MenuTarget:     m.MenuTarget,
	}
}

// createCategoryRequest is the body of POST /api/admin/categories.
type createCategoryRequest struct {
	Name           string  `json:"name"`
	ParentCategory *string `json:"parentCategory"`
	menuRequest
}

// updateCategoryRequest is the body of PUT /api/admin/categories/{id}.
// ParentCategory stays raw so an explicit null can be told apart from an
// absent field.
type updateCategoryRequest struct {
	Name           *string         `json:"name"`
	ParentCategory json.RawMessage `json:"parentCategory"`
	menuRequest
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("request body is too large")
		}
		return apperr.Validation("invalid request body")
	}
	return nil
}

// validateMenu checks menu fields the service does not bound.
func validateMenu(m menuRequest) error {
	if m.Icon != nil && utf8.RuneCountInString(*m.Icon) > maxIconLen {
		return apperr.Validation("icon is too long (max %d characters)", maxIconLen)
	}
	if m.MenuOrder != nil && (*m.MenuOrder < -maxMenuOrder || *m.MenuOrder > maxMenuOrder) {
		return apperr.Validation("menuOrder is out of range")
	}
	return nil
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id %q", raw)
	}
	return id, nil
}

// parentRef parses an optional parent reference. An empty string means no
// parent.
func parentRef(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation("invalid parentCategory %q", raw)
	}
	return &id, nil
}

// toCreateInput validates a create request.
func (req createCategoryRequest) toCreateInput() (category.CreateInput, error) {
	if err := validateMenu(req.menuRequest); err != nil {
		return category.CreateInput{}, err
	}
	in := category.CreateInput{Name: req.Name, MenuInput: req.input()}
	if req.ParentCategory != nil {
		parent, err := parentRef(*req.ParentCategory)
		if err != nil {
			return category.CreateInput{}, err
		}
		in.ParentID = parent
	}
	return in, nil
}

// toUpdateInput validates an update request. A present parentCategory,
// including null or "", is an explicit move.
func (req updateCategoryRequest) toUpdateInput() (category.UpdateInput, error) {
	if err := validateMenu(req.menuRequest); err != nil {
		return category.UpdateInput{}, err
	}
	in := category.UpdateInput{Name: req.Name, MenuInput: req.input()}
	if len(req.ParentCategory) == 0 {
		return in, nil
	}

	in.ParentSet = true
	if bytes.Equal(bytes.TrimSpace(req.ParentCategory), []byte("null")) {
		return in, nil
	}
	var raw string
	if err := json.Unmarshal(req.ParentCategory, &raw); err != nil {
		return category.UpdateInput{}, apperr.Validation("parentCategory must be an id or null")
	}
	parent, err := parentRef(raw)
	if err != nil {
		return category.UpdateInput{}, err
	}
	in.ParentID = parent
	return in, nil
}
