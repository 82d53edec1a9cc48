package rest

import (
	"errors"
	"net/http"

	"lavka-be/internal/logger"
	"lavka-be/internal/order"
	"lavka-be/internal/promo"
	"lavka-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("lavka-be/transport/rest")

func (h *Handler) createPayment(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "payment.create")
	defer span.End()

	userID, _ := utils.GetUserIDFromContext(ctx)

	var body struct {
		PromoCode string `json:"promoCode"`
	}
	// An empty body means checkout without a promo code.
	_ = c.ShouldBindJSON(&body)

	res, err := h.orderSvc.CreateOrder(ctx, userID, body.PromoCode)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrCartEmpty):
			respondError(c, http.StatusBadRequest, "Корзина пуста")
		case errors.Is(err, promo.ErrPromoNotFound),
			errors.Is(err, promo.ErrPromoInactive),
			errors.Is(err, promo.ErrPromoExpired):
			respondError(c, http.StatusBadRequest, "Промокод недействителен")
		default:
			respondInternal(c, h.cfg, "failed to create payment", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"orderId":         res.OrderID,
		"paymentId":       res.PaymentID,
		"confirmationUrl": res.ConfirmationURL,
		"finalPrice":      res.Total,
		"discount":        res.Discount,
		"appliedPromo":    res.AppliedPromo,
	})
}

func (h *Handler) paymentStatus(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orderID := c.Query("orderId")
	if orderID == "" {
		respondError(c, http.StatusBadRequest, "orderId is required")
		return
	}

	res, err := h.orderSvc.PollStatus(c.Request.Context(), userID, c.Query("paymentId"), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrPaymentNotFound):
			respondError(c, http.StatusNotFound, "payment not found")
		default:
			respondInternal(c, h.cfg, "failed to check payment status", err)
		}
		return
	}
	respondOK(c, res)
}

func (h *Handler) paymentSuccess(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orderID := c.Query("orderId")
	if orderID == "" {
		respondError(c, http.StatusBadRequest, "orderId is required")
		return
	}

	o, err := h.orderSvc.ConfirmReturn(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		respondInternal(c, h.cfg, "failed to confirm payment", err)
		return
	}
	respondOK(c, o)
}

type webhookPayload struct {
	Event  string `json:"event"`
	Object *struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Metadata struct {
			OrderID string `json:"orderId"`
		} `json:"metadata"`
	} `json:"object"`
}

// handleWebhook consumes gateway notifications. Once the envelope is
// structurally valid the gateway always gets {"status":"ok"}, even
// for events we do not act on; a 500 tells it to retry after a
// database failure.
func (h *Handler) handleWebhook(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "payment.webhook")
	defer span.End()

	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Event == "" || payload.Object == nil {
		respondError(c, http.StatusBadRequest, "malformed webhook payload")
		return
	}

	orderID := payload.Object.Metadata.OrderID
	if orderID == "" {
		logger.FromCtx(ctx).Warn("webhook without order id",
			zap.String("event", payload.Event),
			zap.String("payment_id", payload.Object.ID),
		)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	err := h.orderSvc.ProcessWebhook(ctx, payload.Event, payload.Object.Status, orderID, payload.Object.ID)
	if err != nil {
		respondInternal(c, h.cfg, "failed to process webhook", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
