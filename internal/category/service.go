package category

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
)

const maxNameLength = 255

type Service interface {
	CreateParent(ctx context.Context, actor auth.Principal, in CreateInput) (*Category, error)
	CreateSubcategory(ctx context.Context, actor auth.Principal, parentID uint, in CreateInput) (*Category, error)
	Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error)
	UpdateParent(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error)
	UpdateSubcategory(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error)
	DeleteParent(ctx context.Context, actor auth.Principal, id uint) error
	DeleteSubcategory(ctx context.Context, actor auth.Principal, id uint) error

	ListParents(ctx context.Context, skip, limit int) ([]Category, error)
	GetParent(ctx context.Context, id uint) (*Category, error)
	ListChildren(ctx context.Context, parentID uint) ([]Category, error)
	ListSubcategories(ctx context.Context, parentID *uint) ([]Category, error)
	GetSubcategory(ctx context.Context, id uint) (*Category, error)
	Tree(ctx context.Context) ([]TreeNode, error)
}

type categoryService struct {
	storage Storage
	logger  *logrus.Entry
}

func NewService(storage Storage, log *logrus.Entry) Service {
	return &categoryService{
		storage: storage,
		logger:  log,
	}
}

func (s *categoryService) CreateParent(ctx context.Context, actor auth.Principal, in CreateInput) (*Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	c, err := s.newCategory(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Create(ctx, c); err != nil {
		return nil, s.translate(err, c.ID, c.Slug)
	}

	s.logger.WithFields(logrus.Fields{"id": c.ID, "slug": c.Slug, "admin": actor.UserID}).Info("parent category created")
	return c, nil
}

func (s *categoryService) CreateSubcategory(ctx context.Context, actor auth.Principal, parentID uint, in CreateInput) (*Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	if err := s.requireRoot(ctx, parentID); err != nil {
		return nil, err
	}

	c, err := s.newCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	c.ParentID = &parentID

	if err := s.storage.CreateChild(ctx, c); err != nil {
		return nil, s.translate(err, parentID, c.Slug)
	}

	s.logger.WithFields(logrus.Fields{"id": c.ID, "parent_id": parentID, "slug": c.Slug, "admin": actor.UserID}).Info("subcategory created")
	return c, nil
}

func (s *categoryService) UpdateParent(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.IsRoot() {
		return nil, apperror.NotFound("category.not_found", id)
	}
	if in.ParentID.Set {
		return nil, apperror.InvalidArgument("category.parent_field")
	}

	return s.update(ctx, actor, current, in)
}

func (s *categoryService) UpdateSubcategory(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsRoot() {
		return nil, apperror.NotFound("category.subcategory_not_found", id)
	}
	if in.ParentID.Set && in.ParentID.Null {
		return nil, apperror.InvalidArgument("category.parent_required")
	}

	return s.update(ctx, actor, current, in)
}

// Update applies a partial update to any category row.
func (s *categoryService) Update(ctx context.Context, actor auth.Principal, id uint, in UpdateInput) (*Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, actor, current, in)
}

func (s *categoryService) update(ctx context.Context, actor auth.Principal, current *Category, in UpdateInput) (*Category, error) {
	fields := make(map[string]interface{})

	names := []struct {
		column string
		value  func() (string, bool, error)
	}{
		{"name_az", func() (string, bool, error) { return nameValue(in.NameAz.Set, in.NameAz.Null, in.NameAz.Value) }},
		{"name_en", func() (string, bool, error) { return nameValue(in.NameEn.Set, in.NameEn.Null, in.NameEn.Value) }},
		{"name_ru", func() (string, bool, error) { return nameValue(in.NameRu.Set, in.NameRu.Null, in.NameRu.Value) }},
	}
	for _, n := range names {
		v, ok, err := n.value()
		if err != nil {
			return nil, err
		}
		if ok {
			fields[n.column] = v
		}
	}

	if in.Slug.Set {
		sl := strings.TrimSpace(in.Slug.Value)
		if in.Slug.Null || !slug.IsSlug(sl) {
			return nil, apperror.InvalidArgument("category.slug_invalid", sl)
		}
		if sl != current.Slug {
			taken, err := s.storage.SlugExists(ctx, sl, current.ID)
			if err != nil {
				return nil, apperror.FromDB(err)
			}
			if taken {
				return nil, apperror.Conflict("category.slug_exists", sl)
			}
			fields["slug"] = sl
		}
	}

	if in.ParentID.HasValue() {
		newParent := in.ParentID.Value
		if newParent == current.ID {
			return nil, apperror.InvalidArgument("category.self_parent", current.ID)
		}
		if current.ParentID == nil || *current.ParentID != newParent {
			if err := s.requireRoot(ctx, newParent); err != nil {
				return nil, err
			}
			if current.IsRoot() {
				children, err := s.storage.CountChildren(ctx, current.ID)
				if err != nil {
					return nil, apperror.FromDB(err)
				}
				if children > 0 {
					return nil, apperror.Conflict("category.cannot_nest", current.ID)
				}
			}
			fields["parent_id"] = newParent
		}
	} else if in.ParentID.Set && in.ParentID.Null && current.ParentID != nil {
		fields["parent_id"] = nil
	}

	if len(fields) == 0 {
		return current, nil
	}

	var err error
	if newParent, ok := fields["parent_id"].(uint); ok {
		err = s.storage.Reparent(ctx, current.ID, newParent, fields)
	} else {
		err = s.storage.Update(ctx, current.ID, fields)
	}
	if err != nil {
		switch {
		case errors.Is(err, errParentNotFound), errors.Is(err, errParentNotRoot):
			return nil, apperror.NotFound("category.parent_not_found", in.ParentID.Value).Wrap(err)
		case errors.Is(err, errHasChildren):
			return nil, apperror.Conflict("category.cannot_nest", current.ID).Wrap(err)
		}
		return nil, s.translate(err, current.ID, current.Slug)
	}

	s.logger.WithFields(logrus.Fields{"id": current.ID, "fields": len(fields), "admin": actor.UserID}).Info("category updated")
	return s.load(ctx, current.ID)
}

func (s *categoryService) DeleteParent(ctx context.Context, actor auth.Principal, id uint) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsRoot() {
		return apperror.NotFound("category.not_found", id)
	}

	children, err := s.storage.CountChildren(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if children > 0 {
		return apperror.Conflict("category.has_children", id)
	}

	return s.delete(ctx, actor, id)
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, actor auth.Principal, id uint) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if current.IsRoot() {
		return apperror.NotFound("category.subcategory_not_found", id)
	}

	return s.delete(ctx, actor, id)
}

// delete refuses while products still reference the row. The foreign key
// enforces the same rule for products created concurrently.
func (s *categoryService) delete(ctx context.Context, actor auth.Principal, id uint) error {
	products, err := s.storage.CountProducts(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}
	if products > 0 {
		return apperror.Conflict("category.has_products", id)
	}

	if err := s.storage.Delete(ctx, id); err != nil {
		return s.translate(err, id, "")
	}

	s.logger.WithFields(logrus.Fields{"id": id, "admin": actor.UserID}).Info("category deleted")
	return nil
}

func (s *categoryService) ListParents(ctx context.Context, skip, limit int) ([]Category, error) {
	categories, err := s.storage.ListRoots(ctx, skip, limit)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return categories, nil
}

func (s *categoryService) GetParent(ctx context.Context, id uint) (*Category, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsRoot() {
		return nil, apperror.NotFound("category.not_found", id)
	}
	return c, nil
}

func (s *categoryService) ListChildren(ctx context.Context, parentID uint) ([]Category, error) {
	if err := s.requireRoot(ctx, parentID); err != nil {
		return nil, err
	}
	children, err := s.storage.ListChildren(ctx, parentID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return children, nil
}

func (s *categoryService) ListSubcategories(ctx context.Context, parentID *uint) ([]Category, error) {
	subs, err := s.storage.ListSubcategories(ctx, parentID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return subs, nil
}

func (s *categoryService) GetSubcategory(ctx context.Context, id uint) (*Category, error) {
	c, err := s.storage.GetWithParent(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "")
	}
	if c.IsRoot() {
		return nil, apperror.NotFound("category.subcategory_not_found", id)
	}
	return c, nil
}

func (s *categoryService) newCategory(ctx context.Context, in CreateInput) (*Category, error) {
	c := &Category{
		NameAz: strings.TrimSpace(in.NameAz),
		NameEn: strings.TrimSpace(in.NameEn),
		NameRu: strings.TrimSpace(in.NameRu),
		Slug:   strings.TrimSpace(in.Slug),
	}
	for _, name := range []string{c.NameAz, c.NameEn, c.NameRu} {
		if name == "" || len(name) > maxNameLength {
			return nil, apperror.InvalidArgument("error.invalid_request", "name")
		}
	}

	if c.Slug == "" {
		c.Slug = slug.Make(c.NameEn)
	}
	if !slug.IsSlug(c.Slug) {
		return nil, apperror.InvalidArgument("category.slug_invalid", c.Slug)
	}

	taken, err := s.storage.SlugExists(ctx, c.Slug, 0)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if taken {
		return nil, apperror.Conflict("category.slug_exists", c.Slug)
	}

	return c, nil
}

func (s *categoryService) load(ctx context.Context, id uint) (*Category, error) {
	c, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id, "")
	}
	return c, nil
}

// requireRoot fails with NotFound unless id names an existing root category.
func (s *categoryService) requireRoot(ctx context.Context, id uint) error {
	parent, err := s.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errCategoryNotFound) {
			return apperror.NotFound("category.parent_not_found", id)
		}
		return apperror.FromDB(err)
	}
	if !parent.IsRoot() {
		s.logger.Debugf("category %d is not a root, refusing to nest under it", id)
		return apperror.NotFound("category.parent_not_found", id)
	}
	return nil
}

func (s *categoryService) translate(err error, id uint, sl string) error {
	switch {
	case errors.Is(err, errCategoryNotFound):
		return apperror.NotFound("category.not_found", id).Wrap(err)
	case errors.Is(err, errParentNotFound), errors.Is(err, errParentNotRoot):
		return apperror.NotFound("category.parent_not_found", id).Wrap(err)
	case errors.Is(err, errSlugTaken):
		return apperror.Conflict("category.slug_exists", sl).Wrap(err)
	case errors.Is(err, errCategoryInUse):
		return apperror.Conflict("error.conflict").Wrap(err)
	}
	s.logger.Errorf("storage failure for category %d: %v", id, err)
	return apperror.FromDB(err)
}

func nameValue(set, null bool, value string) (string, bool, error) {
	if !set {
		return "", false, nil
	}
	v := strings.TrimSpace(value)
	if null || v == "" || len(v) > maxNameLength {
		return "", false, apperror.InvalidArgument("error.invalid_request", "name")
	}
	return v, true, nil
}
