package category

import (
	"context"
	"sort"
	"sync"
)

type fakeStorage struct {
	mu       sync.Mutex
	nextID   uint
	rows     map[uint]Category
	products map[uint]int64

	// beforeLock runs ahead of the locked checks, standing in for a
	// concurrent writer that commits between validation and the write.
	beforeLock func()
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{rows: map[uint]Category{}, products: map[uint]int64{}}
}

func (f *fakeStorage) Create(_ context.Context, c *Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Slug == c.Slug {
			return errSlugTaken
		}
	}
	if c.ParentID != nil {
		if _, ok := f.rows[*c.ParentID]; !ok {
			return errParentNotFound
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeStorage) CreateChild(ctx context.Context, c *Category) error {
	if f.beforeLock != nil {
		f.beforeLock()
	}
	f.mu.Lock()
	if err := f.requireRoot(*c.ParentID); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()
	return f.Create(ctx, c)
}

func (f *fakeStorage) Reparent(ctx context.Context, id, parentID uint, fields map[string]interface{}) error {
	if f.beforeLock != nil {
		f.beforeLock()
	}
	f.mu.Lock()
	if _, ok := f.rows[id]; !ok {
		f.mu.Unlock()
		return errCategoryNotFound
	}
	if err := f.requireRoot(parentID); err != nil {
		f.mu.Unlock()
		return err
	}
	for _, r := range f.rows {
		if r.ParentID != nil && *r.ParentID == id {
			f.mu.Unlock()
			return errHasChildren
		}
	}
	f.mu.Unlock()
	fields["parent_id"] = parentID
	return f.Update(ctx, id, fields)
}

func (f *fakeStorage) requireRoot(id uint) error {
	p, ok := f.rows[id]
	if !ok {
		return errParentNotFound
	}
	if !p.IsRoot() {
		return errParentNotRoot
	}
	return nil
}

func (f *fakeStorage) GetByID(_ context.Context, id uint) (*Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return nil, errCategoryNotFound
	}
	return &c, nil
}

func (f *fakeStorage) GetWithParent(ctx context.Context, id uint) (*Category, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ParentID != nil {
		p, err := f.GetByID(ctx, *c.ParentID)
		if err == nil {
			c.Parent = p
		}
	}
	return c, nil
}

func (f *fakeStorage) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.rows {
		if r.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorage) Update(_ context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return errCategoryNotFound
	}
	for k, v := range fields {
		switch k {
		case "name_az":
			c.NameAz = v.(string)
		case "name_en":
			c.NameEn = v.(string)
		case "name_ru":
			c.NameRu = v.(string)
		case "slug":
			c.Slug = v.(string)
		case "parent_id":
			if v == nil {
				c.ParentID = nil
			} else {
				p := v.(uint)
				c.ParentID = &p
			}
		}
	}
	f.rows[id] = c
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return errCategoryNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStorage) sorted(keep func(Category) bool) []Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Category{}
	for _, r := range f.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStorage) ListRoots(_ context.Context, skip, limit int) ([]Category, error) {
	roots := f.sorted(func(c Category) bool { return c.IsRoot() })
	if skip > len(roots) {
		return []Category{}, nil
	}
	roots = roots[skip:]
	if limit < len(roots) {
		roots = roots[:limit]
	}
	return roots, nil
}

func (f *fakeStorage) ListChildren(_ context.Context, parentID uint) ([]Category, error) {
	return f.sorted(func(c Category) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (f *fakeStorage) ListSubcategories(_ context.Context, parentID *uint) ([]Category, error) {
	return f.sorted(func(c Category) bool {
		return c.ParentID != nil && (parentID == nil || *c.ParentID == *parentID)
	}), nil
}

func (f *fakeStorage) ListAll(_ context.Context) ([]Category, error) {
	return f.sorted(func(Category) bool { return true }), nil
}

func (f *fakeStorage) CountChildren(ctx context.Context, id uint) (int64, error) {
	children, _ := f.ListChildren(ctx, id)
	return int64(len(children)), nil
}

func (f *fakeStorage) CountProducts(_ context.Context, id uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id], nil
}

func (f *fakeStorage) ProductCounts(_ context.Context) (map[uint]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint]int64, len(f.products))
	for k, v := range f.products {
		out[k] = v
	}
	return out, nil
}
