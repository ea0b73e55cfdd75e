package product

import "errors"

var (
	errProductNotFound  = errors.New("product not found")
	errProductInUse     = errors.New("product is referenced by orders")
	errMissingReference = errors.New("category or brand does not exist")
	errInvalidPrice     = errors.New("price must be positive")
	errInvalidDiscount  = errors.New("discount must be non-negative and below price")
)
