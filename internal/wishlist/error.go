package wishlist

import "errors"

var (
	errAlreadyListed  = errors.New("product already in wishlist")
	errNotListed      = errors.New("product not in wishlist")
	errProductMissing = errors.New("product does not exist")
)
