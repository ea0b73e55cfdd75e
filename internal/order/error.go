package order

import "errors"

var (
	errOrderNotFound                     = errors.New("order not found")
	errOrderWithUserIdAndOrderIdNotFound = errors.New("order with userId and orderId not found")
)
