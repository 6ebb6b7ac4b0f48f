package cart

import "errors"

var (
	ErrLineNotFound      = errors.New("cart line not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidItemRef    = errors.New("exactly one of menu item or custom menu must be referenced")
	ErrMemberNotOrdering = errors.New("member is not in ordering status")
)
