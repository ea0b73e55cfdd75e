package category

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type Storage interface {
	Create(ctx context.Context, c *Category) error
	// CreateChild inserts c under c.ParentID while the parent row is locked.
	CreateChild(ctx context.Context, c *Category) error
	// Reparent applies fields to id and moves it under parentID. Both rows
	// stay locked while the parent is checked to be a root and id to have
	// no children.
	Reparent(ctx context.Context, id, parentID uint, fields map[string]interface{}) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetWithParent(ctx context.Context, id uint) (*Category, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error

	ListRoots(ctx context.Context, skip, limit int) ([]Category, error)
	ListChildren(ctx context.Context, parentID uint) ([]Category, error)
	ListSubcategories(ctx context.Context, parentID *uint) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)

	CountChildren(ctx context.Context, id uint) (int64, error)
	CountProducts(ctx context.Context, id uint) (int64, error)
	ProductCounts(ctx context.Context) (map[uint]int64, error)
}

type CategoryStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &CategoryStorage{
		db: db,
	}
}

func (s *CategoryStorage) Create(ctx context.Context, c *Category) error {
	return create(s.db.WithContext(ctx), c)
}

func (s *CategoryStorage) CreateChild(ctx context.Context, c *Category) error {
	if c.ParentID == nil {
		return errParentNotFound
	}
	parentID := *c.ParentID
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockRows(tx, parentID)
		if err != nil {
			return err
		}
		if err := requireLockedRoot(locked, parentID); err != nil {
			return err
		}
		return create(tx, c)
	})
}

func (s *CategoryStorage) Reparent(ctx context.Context, id, parentID uint, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockRows(tx, id, parentID)
		if err != nil {
			return err
		}
		if _, ok := locked[id]; !ok {
			return errCategoryNotFound
		}
		if err := requireLockedRoot(locked, parentID); err != nil {
			return err
		}

		var children int64
		if err := tx.Model(&Category{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return errHasChildren
		}

		fields["parent_id"] = parentID
		return update(tx, id, fields)
	})
}

// lockRows takes row locks in id order so concurrent callers cannot deadlock.
func lockRows(tx *gorm.DB, ids ...uint) (map[uint]Category, error) {
	var rows []Category
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	locked := make(map[uint]Category, len(rows))
	for _, r := range rows {
		locked[r.ID] = r
	}
	return locked, nil
}

func requireLockedRoot(locked map[uint]Category, id uint) error {
	parent, ok := locked[id]
	if !ok {
		return errParentNotFound
	}
	if !parent.IsRoot() {
		return errParentNotRoot
	}
	return nil
}

func create(db *gorm.DB, c *Category) error {
	err := db.Create(c).Error
	if err != nil {
		if apperror.IsUniqueViolation(err) {
			return errSlugTaken
		}
		if apperror.IsForeignKeyViolation(err) {
			return errParentNotFound
		}
		return fmt.Errorf("failed to create category - %w", err)
	}
	return nil
}

func (s *CategoryStorage) GetByID(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := s.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStorage) GetWithParent(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := s.db.WithContext(ctx).Preload("Parent").First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *CategoryStorage) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CategoryStorage) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return update(s.db.WithContext(ctx), id, fields)
}

func update(db *gorm.DB, id uint, fields map[string]interface{}) error {
	result := db.Model(&Category{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if apperror.IsUniqueViolation(result.Error) {
			return errSlugTaken
		}
		if apperror.IsForeignKeyViolation(result.Error) {
			return errParentNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errCategoryNotFound
	}
	return nil
}

func (s *CategoryStorage) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Category{}, id)
	if result.Error != nil {
		if apperror.IsForeignKeyViolation(result.Error) {
			return errCategoryInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errCategoryNotFound
	}
	return nil
}

func (s *CategoryStorage) ListRoots(ctx context.Context, skip, limit int) ([]Category, error) {
	var categories []Category
	err := s.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return []Category{}, err
	}
	return categories, nil
}

func (s *CategoryStorage) ListChildren(ctx context.Context, parentID uint) ([]Category, error) {
	var categories []Category
	err := s.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id").Find(&categories).Error
	if err != nil {
		return []Category{}, err
	}
	return categories, nil
}

func (s *CategoryStorage) ListSubcategories(ctx context.Context, parentID *uint) ([]Category, error) {
	q := s.db.WithContext(ctx).Where("parent_id IS NOT NULL")
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	}

	var categories []Category
	if err := q.Order("id").Find(&categories).Error; err != nil {
		return []Category{}, err
	}
	return categories, nil
}

func (s *CategoryStorage) ListAll(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return []Category{}, err
	}
	return categories, nil
}

func (s *CategoryStorage) CountChildren(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// Products are counted through the table name so this package stays
// independent of the product package.
func (s *CategoryStorage) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("products").Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (s *CategoryStorage) ProductCounts(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		Count      int64
	}
	err := s.db.WithContext(ctx).
		Table("products").
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}
