package order

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserebryaakov/handora-service/internal/apperror"
)

func TestReserveRejectsQuantitiesThatWouldOverflow(t *testing.T) {
	storage := newFakeStorage(lamp(1, 3))

	var total decimal.Decimal
	err := storage.Transaction(context.Background(), func(tx TxStorage) error {
		var err error
		_, total, err = ResolveAndReserve(tx, []LineItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 1, Quantity: math.MaxInt},
			{ProductID: 1, Quantity: math.MaxInt - 3},
		})
		return err
	})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInsufficientStock))
	assert.True(t, total.IsZero())
	assert.Equal(t, 3, storage.stock(1))
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	storage := newFakeStorage(lamp(1, 3))

	err := storage.Transaction(context.Background(), func(tx TxStorage) error {
		_, _, err := ResolveAndReserve(tx, []LineItem{{ProductID: 1, Quantity: -2}})
		return err
	})

	assert.True(t, apperror.Is(err, apperror.KindInsufficientStock))
	assert.Equal(t, 3, storage.stock(1))
}

func TestInsufficientStockNamesTheProduct(t *testing.T) {
	storage := newFakeStorage(lamp(7, 1))

	err := storage.Transaction(context.Background(), func(tx TxStorage) error {
		_, _, err := ResolveAndReserve(tx, []LineItem{{ProductID: 7, Quantity: 2}})
		return err
	})

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []any{"Çıraq", uint(7), 1, 2}, appErr.Args)
}
