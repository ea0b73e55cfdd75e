package product

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mserebryaakov/handora-service/internal/brand"
	"github.com/mserebryaakov/handora-service/internal/category"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

type Product struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	NameAz        string             `gorm:"size:500;not null" json:"name_az"`
	NameEn        string             `gorm:"size:500;not null" json:"name_en"`
	NameRu        string             `gorm:"size:500;not null" json:"name_ru"`
	DescriptionAz string             `gorm:"type:text;not null;default:''" json:"description_az"`
	DescriptionEn string             `gorm:"type:text;not null;default:''" json:"description_en"`
	DescriptionRu string             `gorm:"type:text;not null;default:''" json:"description_ru"`
	Price         decimal.Decimal    `gorm:"type:numeric(12,2);not null;check:chk_products_price,price > 0" json:"price"`
	DiscountPrice *decimal.Decimal   `gorm:"type:numeric(12,2);check:chk_products_discount,discount_price IS NULL OR (discount_price >= 0 AND discount_price < price)" json:"discount_price"`
	CategoryID    uint               `gorm:"not null;index" json:"category_id"`
	Category      *category.Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	BrandID       uint               `gorm:"not null;index" json:"brand_id"`
	Brand         *brand.Brand       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"brand,omitempty"`
	ImageURLs     pq.StringArray     `gorm:"type:text[];not null;default:'{}'" json:"image_urls"`
	Stock         int                `gorm:"not null;check:chk_products_stock,stock >= 0" json:"stock"`
	IsNew         bool               `gorm:"not null" json:"is_new"`
	IsSale        bool               `gorm:"not null" json:"is_sale"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	EffectivePrice decimal.Decimal `gorm:"-" json:"effective_price"`
}

func (p *Product) AfterFind(*gorm.DB) error {
	p.EffectivePrice = p.UnitPrice()
	return nil
}

func (p *Product) AfterSave(*gorm.DB) error {
	p.EffectivePrice = p.UnitPrice()
	return nil
}

// UnitPrice is the price charged per unit at this moment.
func (p *Product) UnitPrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountPrice)
}

// Name returns the name in the given language, falling back to az.
func (p *Product) Name(lang string) string {
	switch lang {
	case "en":
		return p.NameEn
	case "ru":
		return p.NameRu
	default:
		return p.NameAz
	}
}

type Filter struct {
	CategoryID *uint
	BrandID    *uint
	IsSale     *bool
	IsNew      *bool
	Search     string
}

type CreateInput struct {
	NameAz        string
	NameEn        string
	NameRu        string
	DescriptionAz string
	DescriptionEn string
	DescriptionRu string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	CategoryID    uint
	BrandID       uint
	Stock         int
	IsNew         *bool
	IsSale        *bool
	ImageURLs     []string
}

// UpdateInput carries only the fields the client sent. A present ImageURLs
// replaces the stored list; uploaded images are appended to the result.
type UpdateInput struct {
	NameAz        optional.Field[string]
	NameEn        optional.Field[string]
	NameRu        optional.Field[string]
	DescriptionAz optional.Field[string]
	DescriptionEn optional.Field[string]
	DescriptionRu optional.Field[string]
	Price         optional.Field[decimal.Decimal]
	DiscountPrice optional.Field[decimal.Decimal]
	CategoryID    optional.Field[uint]
	BrandID       optional.Field[uint]
	Stock         optional.Field[int]
	IsNew         optional.Field[bool]
	IsSale        optional.Field[bool]
	ImageURLs     optional.Field[[]string]
}
