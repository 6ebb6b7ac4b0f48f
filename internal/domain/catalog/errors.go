package catalog

import "errors"

var (
	ErrItemNotFound = errors.New("catalog item not found")
	ErrOutOfStock   = errors.New("item is run out of stock")
)
