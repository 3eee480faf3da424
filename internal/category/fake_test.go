package category

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kuzenim/internal/models"
	"kuzenim/internal/store"
)

// memRepo is an in-memory Repository with the same uniqueness and
// referential rules as the database schema.
type memRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]models.Category
	clock time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		items: make(map[uuid.UUID]models.Category),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) sorted(filter func(models.Category) bool, less func(a, b models.Category) bool) []models.Category {
	var out []models.Category
	for _, c := range m.items {
		if filter(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newestFirst(a, b models.Category) bool { return a.CreatedAt.After(b.CreatedAt) }

func (m *memRepo) List(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(models.Category) bool { return true }, newestFirst), nil
}

func (m *memRepo) Children(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(
		func(c models.Category) bool { return c.ParentID != nil && *c.ParentID == parentID },
		func(a, b models.Category) bool {
			if a.MenuOrder != b.MenuOrder {
				return a.MenuOrder < b.MenuOrder
			}
			return newestFirst(a, b)
		},
	), nil
}

func (m *memRepo) ListMissingSlug(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(
		func(c models.Category) bool { return c.Slug == "" },
		func(a, b models.Category) bool {
			if a.IsRoot() != b.IsRoot() {
				return a.IsRoot()
			}
			return a.CreatedAt.Before(b.CreatedAt)
		},
	), nil
}

func (m *memRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if slug != "" && c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasChildren(id), nil
}

func (m *memRepo) hasChildren(id uuid.UUID) bool {
	for _, c := range m.items {
		if c.ParentID != nil && *c.ParentID == id {
			return true
		}
	}
	return false
}

func (m *memRepo) NameTaken(ctx context.Context, name string, parentID, excludeID *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nameTaken(name, parentID, excludeID), nil
}

func (m *memRepo) nameTaken(name string, parentID, excludeID *uuid.UUID) bool {
	for _, c := range m.items {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.Name == name && sameParent(c.ParentID, parentID) {
			return true
		}
	}
	return false
}

func (m *memRepo) SlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug, excludeID), nil
}

func (m *memRepo) slugTaken(slug string, excludeID *uuid.UUID) bool {
	if slug == "" {
		return false
	}
	for _, c := range m.items {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func (m *memRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(c.Name, c.ParentID, nil) || m.slugTaken(c.Slug, nil) {
		return nil, store.ErrDuplicate
	}
	created := *c
	created.SubCategories = nil
	created.CreatedAt = m.tick()
	created.UpdatedAt = created.CreatedAt
	m.items[created.ID] = created
	return &created, nil
}

func (m *memRepo) Update(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(c)
}

func (m *memRepo) update(c *models.Category) error {
	old, ok := m.items[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	if m.nameTaken(c.Name, c.ParentID, &c.ID) || m.slugTaken(c.Slug, &c.ID) {
		return store.ErrDuplicate
	}
	updated := *c
	updated.SubCategories = nil
	updated.CreatedAt = old.CreatedAt
	updated.Likes = old.Likes
	updated.UpdatedAt = m.tick()
	m.items[c.ID] = updated
	return nil
}

// UpdateCascade validates every row before touching any, so a failure
// leaves the tree unchanged like a rolled back transaction.
func (m *memRepo) UpdateCascade(ctx context.Context, c *models.Category, children []store.LinkUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range children {
		if _, ok := m.items[it.ID]; !ok {
			return store.ErrNotFound
		}
	}
	if err := m.update(c); err != nil {
		return err
	}
	for _, it := range children {
		child := m.items[it.ID]
		child.Link = it.Link
		m.items[it.ID] = child
	}
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	if m.hasChildren(id) {
		return store.ErrReferenced
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) AdjustLikes(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	c.Likes = max(c.Likes+delta, 0)
	m.items[id] = c
	return c.Likes, nil
}

// put inserts a row directly, bypassing the service, to model legacy data.
func (m *memRepo) put(c models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = m.tick()
	m.items[c.ID] = c
}

// all returns every stored category.
func (m *memRepo) all() []models.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out
}
