package category

import (
	"time"

	"github.com/mserebryaakov/handora-service/pkg/optional"
)

// Category is a root when ParentID is nil and a subcategory otherwise.
// Nesting stops at two levels.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NameAz    string    `gorm:"size:255;not null" json:"name_az"`
	NameEn    string    `gorm:"size:255;not null" json:"name_en"`
	NameRu    string    `gorm:"size:255;not null" json:"name_ru"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ParentID  *uint     `gorm:"index;check:chk_categories_not_self,parent_id IS NULL OR parent_id <> id" json:"parent_id"`
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"parent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Name returns the name in the given language, falling back to az.
func (c *Category) Name(lang string) string {
	switch lang {
	case "en":
		return c.NameEn
	case "ru":
		return c.NameRu
	default:
		return c.NameAz
	}
}

type CreateInput struct {
	NameAz string `json:"name_az" binding:"required,max=255"`
	NameEn string `json:"name_en" binding:"required,max=255"`
	NameRu string `json:"name_ru" binding:"required,max=255"`
	Slug   string `json:"slug" binding:"omitempty,max=255,slug"`
}

type CreateSubcategoryInput struct {
	CreateInput
	ParentID uint `json:"parent_id" binding:"required"`
}

// UpdateInput carries only the fields the client sent.
type UpdateInput struct {
	NameAz   optional.Field[string] `json:"name_az"`
	NameEn   optional.Field[string] `json:"name_en"`
	NameRu   optional.Field[string] `json:"name_ru"`
	Slug     optional.Field[string] `json:"slug"`
	ParentID optional.Field[uint]   `json:"parent_id"`
}

type SubcategoryNode struct {
	ID            uint   `json:"id"`
	NameAz        string `json:"name_az"`
	NameEn        string `json:"name_en"`
	NameRu        string `json:"name_ru"`
	Slug          string `json:"slug"`
	ProductsCount int64  `json:"products_count"`
}

// TreeNode is a root with its subcategories. TotalProductsCount sums the
// subcategory counts; products attached to the root itself are reported
// separately in DirectProductsCount.
type TreeNode struct {
	ID                  uint              `json:"id"`
	NameAz              string            `json:"name_az"`
	NameEn              string            `json:"name_en"`
	NameRu              string            `json:"name_ru"`
	Slug                string            `json:"slug"`
	Subcategories       []SubcategoryNode `json:"subcategories"`
	TotalProductsCount  int64             `json:"total_products_count"`
	DirectProductsCount int64             `json:"direct_products_count"`
}
