package order

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, actor auth.Principal, in PlaceOrderInput) (*Order, error)
	GetOrderByID(ctx context.Context, actor auth.Principal, orderID uint) (*Order, error)
	GetOrdersByUserID(ctx context.Context, actor auth.Principal) ([]Order, error)

	SetStatus(ctx context.Context, actor auth.Principal, orderID uint, in StatusInput) (*Order, error)
	GetOrderAdmin(ctx context.Context, actor auth.Principal, orderID uint) (*Order, error)
	ListOrders(ctx context.Context, actor auth.Principal, status string, skip, limit int) ([]Order, error)
}

type orderService struct {
	storage  Storage
	currency string
	logger   *logrus.Entry
}

func NewService(storage Storage, currency string, log *logrus.Entry) OrderService {
	return &orderService{
		storage:  storage,
		currency: currency,
		logger:   log,
	}
}

// PlaceOrder reserves stock, prices the lines and persists the order with
// its items as one transaction.
func (s *orderService) PlaceOrder(ctx context.Context, actor auth.Principal, in PlaceOrderInput) (*Order, error) {
	if actor.UserID == 0 {
		return nil, apperror.Unauthorized()
	}

	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		return nil, apperror.InvalidArgument("order.address_required")
	}
	if len(in.Items) == 0 {
		return nil, apperror.InvalidArgument("order.empty")
	}
	for _, line := range in.Items {
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return nil, apperror.InvalidArgument("order.invalid_quantity", MaxLineQuantity, line.ProductID)
		}
	}

	var placed *Order
	err := s.storage.Transaction(ctx, func(tx TxStorage) error {
		lines, total, err := ResolveAndReserve(tx, in.Items)
		if err != nil {
			return err
		}

		order := &Order{
			UserID:          actor.UserID,
			TotalAmount:     total,
			Currency:        s.currency,
			Status:          StatusPending,
			ShippingAddress: address,
			Items:           make([]OrderItem, 0, len(lines)),
		}
		for _, l := range lines {
			order.Items = append(order.Items, OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.UnitPrice,
			})
		}

		if err := tx.InsertOrder(order); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.logger.Errorf("place order for user %d failed: %v", actor.UserID, err)
		} else {
			s.logger.WithField("user_id", actor.UserID).Debugf("order rejected: %v", err)
		}
		return nil, apperror.FromDB(err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": placed.ID,
		"user_id":  actor.UserID,
		"items":    len(placed.Items),
		"total":    placed.TotalAmount.StringFixed(2),
	}).Info("order placed")
	return placed, nil
}

// GetOrderByID answers NotFound for orders of other users as well.
func (s *orderService) GetOrderByID(ctx context.Context, actor auth.Principal, orderID uint) (*Order, error) {
	if actor.UserID == 0 {
		return nil, apperror.Unauthorized()
	}

	order, err := s.storage.GetOrderByIDForUser(ctx, actor.UserID, orderID)
	if err != nil {
		return nil, s.translate(err, orderID)
	}
	return order, nil
}

func (s *orderService) GetOrdersByUserID(ctx context.Context, actor auth.Principal) ([]Order, error) {
	if actor.UserID == 0 {
		return nil, apperror.Unauthorized()
	}

	orders, err := s.storage.GetOrdersByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return orders, nil
}

// SetStatus allows any status to follow any other.
func (s *orderService) SetStatus(ctx context.Context, actor auth.Principal, orderID uint, in StatusInput) (*Order, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	status, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		return nil, apperror.InvalidArgument("order.invalid_status", in.Status)
	}
	if in.TrackingNumber.HasValue() {
		in.TrackingNumber.Value = strings.TrimSpace(in.TrackingNumber.Value)
	}

	if err := s.storage.UpdateStatus(ctx, orderID, status, in.TrackingNumber); err != nil {
		return nil, s.translate(err, orderID)
	}

	s.logger.WithFields(logrus.Fields{"order_id": orderID, "status": status, "admin": actor.UserID}).Info("order status changed")
	return s.GetOrderAdmin(ctx, actor, orderID)
}

func (s *orderService) GetOrderAdmin(ctx context.Context, actor auth.Principal, orderID uint) (*Order, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	order, err := s.storage.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, s.translate(err, orderID)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor auth.Principal, status string, skip, limit int) ([]Order, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var filter *Status
	if status != "" {
		st, ok := ParseStatus(status)
		if !ok {
			return nil, apperror.InvalidArgument("order.invalid_status", status)
		}
		filter = &st
	}

	orders, err := s.storage.ListOrders(ctx, filter, skip, limit)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return orders, nil
}

func (s *orderService) translate(err error, orderID uint) error {
	if errors.Is(err, errOrderNotFound) || errors.Is(err, errOrderWithUserIdAndOrderIdNotFound) {
		return apperror.NotFound("order.not_found", orderID).Wrap(err)
	}
	s.logger.Errorf("storage failure for order %d: %v", orderID, err)
	return apperror.FromDB(err)
}
