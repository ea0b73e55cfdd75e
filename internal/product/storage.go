package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type Storage interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, f Filter, skip, limit int) ([]Product, error)
	Search(ctx context.Context, q string, limit int) ([]Product, error)
	ListByIDs(ctx context.Context, ids []uint) ([]Product, error)

	CategoryExists(ctx context.Context, id uint) (bool, error)
	BrandExists(ctx context.Context, id uint) (bool, error)
	CountOrderItems(ctx context.Context, id uint) (int64, error)
}

type ProductStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &ProductStorage{
		db: db,
	}
}

func (s *ProductStorage) Create(ctx context.Context, p *Product) error {
	if err := s.db.WithContext(ctx).Omit("Category", "Brand").Create(p).Error; err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return errMissingReference
		}
		return fmt.Errorf("failed to create product - %w", err)
	}
	return nil
}

func (s *ProductStorage) GetByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).Preload("Brand").Preload("Category").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProductStorage) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if apperror.IsForeignKeyViolation(result.Error) {
			return errMissingReference
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

func (s *ProductStorage) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, id)
	if result.Error != nil {
		if apperror.IsForeignKeyViolation(result.Error) {
			return errProductInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errProductNotFound
	}
	return nil
}

func (s *ProductStorage) List(ctx context.Context, f Filter, skip, limit int) ([]Product, error) {
	q := s.db.WithContext(ctx).Model(&Product{}).Preload("Brand")

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.BrandID != nil {
		q = q.Where("brand_id = ?", *f.BrandID)
	}
	if f.IsSale != nil {
		q = q.Where("is_sale = ?", *f.IsSale)
	}
	if f.IsNew != nil {
		q = q.Where("is_new = ?", *f.IsNew)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := likePattern(term)
		q = q.Where("name_az ILIKE ? OR name_en ILIKE ? OR name_ru ILIKE ?", pattern, pattern, pattern)
	}

	var products []Product
	if err := q.Order("id DESC").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return []Product{}, err
	}
	return products, nil
}

func (s *ProductStorage) Search(ctx context.Context, term string, limit int) ([]Product, error) {
	pattern := likePattern(term)

	var products []Product
	err := s.db.WithContext(ctx).
		Preload("Brand").
		Where("name_az ILIKE ? OR name_en ILIKE ? OR name_ru ILIKE ? OR description_az ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("id DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []Product{}, err
	}
	return products, nil
}

func (s *ProductStorage) ListByIDs(ctx context.Context, ids []uint) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	var products []Product
	if err := s.db.WithContext(ctx).Preload("Brand").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return []Product{}, err
	}
	return products, nil
}

func (s *ProductStorage) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, "categories", id)
}

func (s *ProductStorage) BrandExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, "brands", id)
}

func (s *ProductStorage) CountOrderItems(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("order_items").Where("product_id = ?", id).Count(&count).Error
	return count, err
}

func (s *ProductStorage) exists(ctx context.Context, table string, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches term anywhere, with LIKE wildcards in term taken literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
