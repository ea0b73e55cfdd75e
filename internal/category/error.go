package category

import "errors"

var (
	errCategoryNotFound = errors.New("category not found")
	errParentNotFound   = errors.New("parent category not found")
	errSlugTaken        = errors.New("slug already exists")
	errCategoryInUse    = errors.New("category is referenced")
	errParentNotRoot    = errors.New("parent category is itself a subcategory")
	errHasChildren      = errors.New("category has subcategories")
)
