package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/order"
	"lavka-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listOrders(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orders, err := h.orderSvc.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, h.cfg, "failed to load orders", err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	respondOK(c, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	o, err := h.orderSvc.GetOrder(ctx, userID, c.Param("id"), utils.IsAdmin(ctx))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		respondInternal(c, h.cfg, "failed to load order", err)
		return
	}
	respondOK(c, o)
}
