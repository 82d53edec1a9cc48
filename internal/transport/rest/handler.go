package rest

import (
	"lavka-be/internal/cart"
	"lavka-be/internal/config"
	"lavka-be/internal/order"
	"lavka-be/internal/product"
	"lavka-be/internal/promo"
	"lavka-be/internal/user"
)

// Handler bundles the services the HTTP layer dispatches to.
type Handler struct {
	cfg        *config.Config
	userSvc    user.Service
	productSvc product.Service
	cartSvc    cart.Service
	promoSvc   promo.Service
	orderSvc   order.Service
}

func NewHandler(
	cfg *config.Config,
	userSvc user.Service,
	productSvc product.Service,
	cartSvc cart.Service,
	promoSvc promo.Service,
	orderSvc order.Service,
) *Handler {
	return &Handler{
		cfg:        cfg,
		userSvc:    userSvc,
		productSvc: productSvc,
		cartSvc:    cartSvc,
		promoSvc:   promoSvc,
		orderSvc:   orderSvc,
	}
}
