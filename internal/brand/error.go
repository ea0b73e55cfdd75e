package brand

import "errors"

var (
	errBrandNotFound = errors.New("brand not found")
	errNameTaken     = errors.New("brand name already exists")
	errBrandInUse    = errors.New("brand is referenced by products")
)
