package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/cart"
	"lavka-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	snap, err := h.cartSvc.Snapshot(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, h.cfg, "failed to load cart", err)
		return
	}
	respondOK(c, snap)
}

func (h *Handler) addCartItem(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
		respondError(c, http.StatusBadRequest, "productId is required")
		return
	}

	item, err := h.cartSvc.AddItem(c.Request.Context(), userID, body.ProductID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	respondOK(c, item)
}

func (h *Handler) updateCartItem(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartSvc.SetQuantity(c.Request.Context(), userID, c.Param("id"), body.Quantity); err != nil {
		h.respondCartError(c, err)
		return
	}
	respondOK(c, gin.H{"updated": true})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := h.cartSvc.RemoveItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondCartError(c, err)
		return
	}
	respondOK(c, gin.H{"removed": true})
}

func (h *Handler) clearCart(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	if err := h.cartSvc.Clear(c.Request.Context(), userID); err != nil {
		respondInternal(c, h.cfg, "failed to clear cart", err)
		return
	}
	respondOK(c, gin.H{"cleared": true})
}

func (h *Handler) respondCartError(c *gin.Context, err error) {
	var exceeded *cart.StockExceededError
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "product not found")
	case errors.Is(err, cart.ErrCartItemNotFound):
		respondError(c, http.StatusNotFound, "cart item not found")
	case errors.Is(err, cart.ErrOutOfStock):
		respondError(c, http.StatusConflict, "product is out of stock")
	case errors.As(err, &exceeded):
		respondError(c, http.StatusConflict, exceeded.Error())
	default:
		respondInternal(c, h.cfg, "cart operation failed", err)
	}
}
