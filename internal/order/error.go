package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrPaymentNotFound = errors.New("payment not found for order")
)
