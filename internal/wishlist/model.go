package wishlist

import (
	"time"

	"github.com/mserebryaakov/handora-service/internal/product"
)

// Item is unique per (user, product) and disappears with its product.
type Item struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint             `gorm:"not null;uniqueIndex:idx_wishlist_user_product;index" json:"product_id"`
	Product   *product.Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Item) TableName() string {
	return "wishlist_items"
}

type AddInput struct {
	ProductID uint `json:"product_id" form:"product_id" binding:"required"`
}
