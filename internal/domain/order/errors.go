package order

import "errors"

var (
	ErrNothingToFinalize  = errors.New("no member has items to order")
	ErrGroupOrderNotFound = errors.New("group order not found")
)
