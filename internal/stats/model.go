package stats

import "github.com/shopspring/decimal"

// Dashboard is the admin overview. Revenue sums every order that was not
// cancelled.
type Dashboard struct {
	Products          int64            `json:"products"`
	ParentCategories  int64            `json:"parent_categories"`
	Subcategories     int64            `json:"subcategories"`
	Brands            int64            `json:"brands"`
	Orders            int64            `json:"orders"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	Revenue           decimal.Decimal  `json:"revenue"`
	LowStock          int64            `json:"low_stock"`
	OutOfStock        int64            `json:"out_of_stock"`
	WishlistItems     int64            `json:"wishlist_items"`
	LowStockThreshold int              `json:"low_stock_threshold"`
}
