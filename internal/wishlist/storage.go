package wishlist

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/product"
)

type Storage interface {
	Add(ctx context.Context, item *Item) error
	Remove(ctx context.Context, userID, productID uint) error
	ListProducts(ctx context.Context, userID uint) ([]product.Product, error)
	ProductExists(ctx context.Context, productID uint) (bool, error)
}

type WishlistStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &WishlistStorage{
		db: db,
	}
}

func (s *WishlistStorage) Add(ctx context.Context, item *Item) error {
	if err := s.db.WithContext(ctx).Omit("Product").Create(item).Error; err != nil {
		switch {
		case apperror.IsUniqueViolation(err):
			return errAlreadyListed
		case apperror.IsForeignKeyViolation(err):
			return errProductMissing
		}
		return fmt.Errorf("failed to add wishlist item - %w", err)
	}
	return nil
}

func (s *WishlistStorage) Remove(ctx context.Context, userID, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errNotListed
	}
	return nil
}

// ListProducts returns the user's wishlisted products, most recently added first.
func (s *WishlistStorage) ListProducts(ctx context.Context, userID uint) ([]product.Product, error) {
	var products []product.Product
	err := s.db.WithContext(ctx).
		Preload("Brand").
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at DESC, wishlist_items.id DESC").
		Find(&products).Error
	if err != nil {
		return []product.Product{}, err
	}
	return products, nil
}

func (s *WishlistStorage) ProductExists(ctx context.Context, productID uint) (bool, error) {
	var p product.Product
	err := s.db.WithContext(ctx).Select("id").First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
