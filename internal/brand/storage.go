package brand

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

type Storage interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]Brand, error)
	CountProducts(ctx context.Context, id uint) (int64, error)
}

type BrandStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &BrandStorage{
		db: db,
	}
}

func (s *BrandStorage) Create(ctx context.Context, b *Brand) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		if apperror.IsUniqueViolation(err) {
			return errNameTaken
		}
		return fmt.Errorf("failed to create brand - %w", err)
	}
	return nil
}

func (s *BrandStorage) GetByID(ctx context.Context, id uint) (*Brand, error) {
	var b Brand
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBrandNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BrandStorage) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&Brand{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *BrandStorage) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&Brand{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if apperror.IsUniqueViolation(result.Error) {
			return errNameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errBrandNotFound
	}
	return nil
}

func (s *BrandStorage) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Brand{}, id)
	if result.Error != nil {
		if apperror.IsForeignKeyViolation(result.Error) {
			return errBrandInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errBrandNotFound
	}
	return nil
}

func (s *BrandStorage) List(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	if err := s.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return []Brand{}, err
	}
	return brands, nil
}

func (s *BrandStorage) CountProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("products").Where("brand_id = ?", id).Count(&count).Error
	return count, err
}
