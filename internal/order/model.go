package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mserebryaakov/handora-service/internal/product"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func ParseStatus(s string) (Status, bool) {
	for _, st := range statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order is created together with its items. Only Status and TrackingNumber
// change afterwards.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Currency        string          `gorm:"size:3;not null" json:"currency"`
	Status          Status          `gorm:"size:20;not null;index;check:chk_orders_status,status IN ('pending','confirmed','shipped','delivered','cancelled')" json:"status"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	TrackingNumber  *string         `gorm:"size:100" json:"tracking_number"`
	Items           []OrderItem     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem.Price is the unit price charged when the order was placed.
type OrderItem struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	OrderID   uint             `gorm:"not null;index" json:"order_id"`
	ProductID uint             `gorm:"not null;index" json:"product_id"`
	Product   *product.Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`
	Quantity  int              `gorm:"not null;check:chk_order_items_quantity,quantity > 0" json:"quantity"`
	Price     decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
}

// MaxLineQuantity bounds a single order line.
const MaxLineQuantity = 1000

type LineItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=1000"`
}

type PlaceOrderInput struct {
	Items           []LineItem `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string     `json:"shipping_address" binding:"required,max=1000"`
}

// ResolvedLine is a line item priced against the locked product row.
type ResolvedLine struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

type StatusInput struct {
	Status         string                 `json:"status" binding:"required"`
	TrackingNumber optional.Field[string] `json:"tracking_number"`
}
