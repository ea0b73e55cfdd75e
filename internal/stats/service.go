package stats

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
)

type Service interface {
	Dashboard(ctx context.Context, actor auth.Principal) (*Dashboard, error)
}

type statsService struct {
	storage           Storage
	lowStockThreshold int
	logger            *logrus.Entry
}

func NewService(storage Storage, lowStockThreshold int, log *logrus.Entry) Service {
	return &statsService{
		storage:           storage,
		lowStockThreshold: lowStockThreshold,
		logger:            log,
	}
}

// Dashboard counts products with 0 < stock <= threshold as low stock.
func (s *statsService) Dashboard(ctx context.Context, actor auth.Principal) (*Dashboard, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	d := &Dashboard{LowStockThreshold: s.lowStockThreshold}
	counts := []struct {
		dst   *int64
		table string
		where string
		args  []interface{}
	}{
		{&d.Products, "products", "", nil},
		{&d.ParentCategories, "categories", "parent_id IS NULL", nil},
		{&d.Subcategories, "categories", "parent_id IS NOT NULL", nil},
		{&d.Brands, "brands", "", nil},
		{&d.Orders, "orders", "", nil},
		{&d.LowStock, "products", "stock > 0 AND stock <= ?", []interface{}{s.lowStockThreshold}},
		{&d.OutOfStock, "products", "stock = 0", nil},
		{&d.WishlistItems, "wishlist_items", "", nil},
	}
	for _, c := range counts {
		n, err := s.storage.Count(ctx, c.table, c.where, c.args...)
		if err != nil {
			s.logger.Errorf("count %s failed: %v", c.table, err)
			return nil, apperror.Internal(err)
		}
		*c.dst = n
	}

	byStatus, err := s.storage.OrdersByStatus(ctx)
	if err != nil {
		s.logger.Errorf("orders by status failed: %v", err)
		return nil, apperror.Internal(err)
	}
	d.OrdersByStatus = byStatus

	revenue, err := s.storage.Revenue(ctx)
	if err != nil {
		s.logger.Errorf("revenue failed: %v", err)
		return nil, apperror.Internal(err)
	}
	d.Revenue = revenue

	return d, nil
}
