package repo

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAddressNotFound   = errors.New("address not found")
)
