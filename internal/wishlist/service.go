package wishlist

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/handora-service/internal/apperror"
	"github.com/mserebryaakov/handora-service/internal/auth"
	"github.com/mserebryaakov/handora-service/internal/product"
)

type Service interface {
	Add(ctx context.Context, actor auth.Principal, productID uint) error
	Remove(ctx context.Context, actor auth.Principal, productID uint) error
	List(ctx context.Context, actor auth.Principal) ([]product.Product, error)
}

type wishlistService struct {
	storage Storage
	logger  *logrus.Entry
}

func NewService(storage Storage, log *logrus.Entry) Service {
	return &wishlistService{
		storage: storage,
		logger:  log,
	}
}

func (s *wishlistService) Add(ctx context.Context, actor auth.Principal, productID uint) error {
	if actor.UserID == 0 {
		return apperror.Unauthorized()
	}

	exists, err := s.storage.ProductExists(ctx, productID)
	if err != nil {
		return apperror.FromDB(err)
	}
	if !exists {
		return apperror.NotFound("product.not_found", productID)
	}

	if err := s.storage.Add(ctx, &Item{UserID: actor.UserID, ProductID: productID}); err != nil {
		return s.translate(err, productID)
	}

	s.logger.WithFields(logrus.Fields{"user_id": actor.UserID, "product_id": productID}).Debug("added")
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, actor auth.Principal, productID uint) error {
	if actor.UserID == 0 {
		return apperror.Unauthorized()
	}

	if err := s.storage.Remove(ctx, actor.UserID, productID); err != nil {
		return s.translate(err, productID)
	}
	return nil
}

func (s *wishlistService) List(ctx context.Context, actor auth.Principal) ([]product.Product, error) {
	if actor.UserID == 0 {
		return nil, apperror.Unauthorized()
	}

	products, err := s.storage.ListProducts(ctx, actor.UserID)
	if err != nil {
		s.logger.Errorf("list for user %d failed: %v", actor.UserID, err)
		return nil, apperror.FromDB(err)
	}
	return products, nil
}

func (s *wishlistService) translate(err error, productID uint) error {
	switch {
	case errors.Is(err, errAlreadyListed):
		return apperror.Conflict("wishlist.exists", productID).Wrap(err)
	case errors.Is(err, errNotListed):
		return apperror.NotFound("wishlist.not_found", productID).Wrap(err)
	case errors.Is(err, errProductMissing):
		return apperror.NotFound("product.not_found", productID).Wrap(err)
	}
	s.logger.Errorf("storage failure for product %d: %v", productID, err)
	return apperror.FromDB(err)
}
