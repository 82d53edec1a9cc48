package promo

import "errors"

var (
	ErrPromoNotFound   = errors.New("promo code not found")
	ErrPromoInactive   = errors.New("promo code is not active")
	ErrPromoExpired    = errors.New("promo code has expired")
	ErrCodeTaken       = errors.New("promo code already exists")
	ErrInvalidDiscount = errors.New("discount must be between 1 and 100")
	ErrEmptyCode       = errors.New("code must not be empty")
	ErrNoActivePromo   = errors.New("no active promo code")
)
