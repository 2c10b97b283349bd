package service

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateOrder   = errors.New("order already placed")
	ErrAlreadyDelivered = errors.New("already delivered")
)
