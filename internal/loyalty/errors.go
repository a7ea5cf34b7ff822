package loyalty

import "errors"

var (
	ErrProfileLimit = errors.New("profile limit reached")
	ErrEmptyOrder   = errors.New("order has no items")
	ErrUnknownItem  = errors.New("unknown catalog item")
)
