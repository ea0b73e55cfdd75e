package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mserebryaakov/handora-service/internal/product"
	"github.com/mserebryaakov/handora-service/pkg/optional"
)

type Storage interface {
	// Transaction runs fn in one database transaction. Any error from fn
	// rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx TxStorage) error) error

	GetOrderByID(ctx context.Context, orderID uint) (*Order, error)
	GetOrderByIDForUser(ctx context.Context, userID, orderID uint) (*Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]Order, error)
	ListOrders(ctx context.Context, status *Status, skip, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status, tracking optional.Field[string]) error
}

// TxStorage is the write side available inside an order transaction.
type TxStorage interface {
	// LockProducts loads and row-locks the given products in ascending id order.
	LockProducts(ids []uint) (map[uint]product.Product, error)
	// DecrementStock subtracts qty only while stock stays non-negative and
	// reports whether the row was changed.
	DecrementStock(productID uint, qty int) (bool, error)
	InsertOrder(order *Order) error
}

type OrderStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &OrderStorage{
		db: db,
	}
}

func (s *OrderStorage) Transaction(ctx context.Context, fn func(tx TxStorage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderTx{db: tx})
	})
}

type orderTx struct {
	db *gorm.DB
}

func (t *orderTx) LockProducts(ids []uint) (map[uint]product.Product, error) {
	var products []product.Product
	err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock products - %w", err)
	}

	locked := make(map[uint]product.Product, len(products))
	for _, p := range products {
		locked[p.ID] = p
	}
	return locked, nil
}

func (t *orderTx) DecrementStock(productID uint, qty int) (bool, error) {
	result := t.db.Model(&product.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (t *orderTx) InsertOrder(order *Order) error {
	if err := t.db.Omit("Items.Product").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order - %w", err)
	}
	return nil
}

func (s *OrderStorage) GetOrderByID(ctx context.Context, orderID uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).Preload("Items", orderItems).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStorage) GetOrderByIDForUser(ctx context.Context, userID, orderID uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("user_id = ?", userID).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderWithUserIdAndOrderIdNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStorage) GetOrdersByUserID(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return []Order{}, err
	}
	return orders, nil
}

func (s *OrderStorage) ListOrders(ctx context.Context, status *Status, skip, limit int) ([]Order, error) {
	q := s.db.WithContext(ctx).Preload("Items", orderItems)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var orders []Order
	if err := q.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&orders).Error; err != nil {
		return []Order{}, err
	}
	return orders, nil
}

func (s *OrderStorage) UpdateStatus(ctx context.Context, orderID uint, status Status, tracking optional.Field[string]) error {
	fields := map[string]interface{}{"status": status}
	if tracking.Set {
		if tracking.Null {
			fields["tracking_number"] = nil
		} else {
			fields["tracking_number"] = tracking.Value
		}
	}

	result := s.db.WithContext(ctx).Model(&Order{}).Where("id = ?", orderID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errOrderNotFound
	}
	return nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}
