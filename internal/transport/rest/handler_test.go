package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lavka-be/internal/cart"
	"lavka-be/internal/config"
	"lavka-be/internal/order"
	"lavka-be/internal/promo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stub services with overridable behavior per test.

type stubOrderService struct {
	createOrder    func(ctx context.Context, userID uint, promoCode string) (*order.CreateOrderResult, error)
	confirmReturn  func(ctx context.Context, userID uint, orderID string) (*order.Order, error)
	pollStatus     func(ctx context.Context, userID uint, paymentID, orderID string) (*order.StatusResult, error)
	processWebhook func(ctx context.Context, event, status, orderID, paymentID string) error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, userID uint, promoCode string) (*order.CreateOrderResult, error) {
	return s.createOrder(ctx, userID, promoCode)
}

func (s *stubOrderService) ConfirmReturn(ctx context.Context, userID uint, orderID string) (*order.Order, error) {
	return s.confirmReturn(ctx, userID, orderID)
}

func (s *stubOrderService) PollStatus(ctx context.Context, userID uint, paymentID, orderID string) (*order.StatusResult, error) {
	return s.pollStatus(ctx, userID, paymentID, orderID)
}

func (s *stubOrderService) ProcessWebhook(ctx context.Context, event, status, orderID, paymentID string) error {
	return s.processWebhook(ctx, event, status, orderID, paymentID)
}

func (s *stubOrderService) ListOrders(ctx context.Context, userID uint) ([]order.Order, error) {
	return nil, nil
}

func (s *stubOrderService) GetOrder(ctx context.Context, userID uint, orderID string, isAdmin bool) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

type stubPromoService struct {
	validate func(ctx context.Context, code string) (*promo.PromoCode, error)
}

func (s *stubPromoService) Validate(ctx context.Context, code string) (*promo.PromoCode, error) {
	return s.validate(ctx, code)
}

func (s *stubPromoService) ActivePromo(ctx context.Context) (*promo.PromoCode, error) {
	return nil, promo.ErrNoActivePromo
}

func (s *stubPromoService) List(ctx context.Context) ([]promo.PromoCode, error) { return nil, nil }

func (s *stubPromoService) Create(ctx context.Context, params promo.CreatePromoParams) (*promo.PromoCode, error) {
	return nil, nil
}

func (s *stubPromoService) Update(ctx context.Context, id string, params promo.UpdatePromoParams) (*promo.PromoCode, error) {
	return nil, nil
}

func (s *stubPromoService) Delete(ctx context.Context, id string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{AppEnv: "production"}
}

func newWebhookRouter(orderSvc order.Service) *gin.Engine {
	h := NewHandler(testConfig(), nil, nil, nil, nil, orderSvc)
	r := gin.New()
	r.POST("/api/payment/webhook", h.handleWebhook)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleWebhook(t *testing.T) {
	t.Run("succeeded event settles and answers ok", func(t *testing.T) {
		var gotEvent, gotStatus, gotOrder, gotPayment string
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				gotEvent, gotStatus, gotOrder, gotPayment = event, status, orderID, paymentID
				return nil
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{
			"event": "payment.succeeded",
			"object": {
				"id": "pay-1",
				"status": "succeeded",
				"metadata": {"orderId": "ord-1"}
			}
		}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		assert.Equal(t, "payment.succeeded", gotEvent)
		assert.Equal(t, "succeeded", gotStatus)
		assert.Equal(t, "ord-1", gotOrder)
		assert.Equal(t, "pay-1", gotPayment)
	})

	t.Run("missing object is a 400", func(t *testing.T) {
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				t.Fatal("should not be called")
				return nil
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{"event": "payment.succeeded"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing event is a 400", func(t *testing.T) {
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				t.Fatal("should not be called")
				return nil
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{"object": {"id": "pay-1"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("broken json is a 400", func(t *testing.T) {
		svc := &stubOrderService{}
		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{"event": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no order id is acknowledged without processing", func(t *testing.T) {
		called := false
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				called = true
				return nil
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{
			"event": "payment.succeeded",
			"object": {"id": "pay-1", "status": "succeeded", "metadata": {}}
		}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, called)
	})

	t.Run("database failure is a 500", func(t *testing.T) {
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				return errors.New("db down")
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{
			"event": "payment.succeeded",
			"object": {"id": "pay-1", "status": "succeeded", "metadata": {"orderId": "ord-1"}}
		}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unknown event is still acknowledged", func(t *testing.T) {
		svc := &stubOrderService{
			processWebhook: func(ctx context.Context, event, status, orderID, paymentID string) error {
				return nil
			},
		}

		w := postJSON(newWebhookRouter(svc), "/api/payment/webhook", `{
			"event": "refund.succeeded",
			"object": {"id": "pay-1", "status": "succeeded", "metadata": {"orderId": "ord-1"}}
		}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})
}

func TestValidatePromoHandler(t *testing.T) {
	newRouter := func(svc promo.Service) *gin.Engine {
		h := NewHandler(testConfig(), nil, nil, nil, svc, nil)
		r := gin.New()
		r.POST("/api/promo/validate", h.validatePromo)
		return r
	}

	t.Run("valid code", func(t *testing.T) {
		svc := &stubPromoService{
			validate: func(ctx context.Context, code string) (*promo.PromoCode, error) {
				return &promo.PromoCode{ID: "promo-1", Code: "SALE10", Discount: 10, IsActive: true}, nil
			},
		}

		w := postJSON(newRouter(svc), "/api/promo/validate", `{"code": "sale10"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		pc, ok := resp["promoCode"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "promo-1", pc["id"])
		assert.Equal(t, "SALE10", pc["code"])
		assert.Equal(t, float64(10), pc["discount"])
		assert.Equal(t, true, pc["isActive"])
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := &stubPromoService{
			validate: func(ctx context.Context, code string) (*promo.PromoCode, error) {
				return nil, promo.ErrPromoNotFound
			},
		}

		w := postJSON(newRouter(svc), "/api/promo/validate", `{"code": "nope"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("inactive code", func(t *testing.T) {
		svc := &stubPromoService{
			validate: func(ctx context.Context, code string) (*promo.PromoCode, error) {
				return nil, promo.ErrPromoInactive
			},
		}

		w := postJSON(newRouter(svc), "/api/promo/validate", `{"code": "old"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing code", func(t *testing.T) {
		svc := &stubPromoService{}
		w := postJSON(newRouter(svc), "/api/promo/validate", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreatePaymentHandler(t *testing.T) {
	newRouter := func(svc order.Service) *gin.Engine {
		h := NewHandler(testConfig(), nil, nil, nil, nil, svc)
		r := gin.New()
		r.POST("/api/payment/create", h.createPayment)
		return r
	}

	t.Run("empty cart is a 400", func(t *testing.T) {
		svc := &stubOrderService{
			createOrder: func(ctx context.Context, userID uint, promoCode string) (*order.CreateOrderResult, error) {
				return nil, order.ErrCartEmpty
			},
		}

		w := postJSON(newRouter(svc), "/api/payment/create", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success returns the confirmation url", func(t *testing.T) {
		svc := &stubOrderService{
			createOrder: func(ctx context.Context, userID uint, promoCode string) (*order.CreateOrderResult, error) {
				assert.Equal(t, "SALE10", promoCode)
				return &order.CreateOrderResult{
					OrderID:         "ord-1",
					PaymentID:       "pay-1",
					ConfirmationURL: "https://yoomoney.ru/x",
					Total:           369.9,
					Discount:        10,
				}, nil
			},
		}

		w := postJSON(newRouter(svc), "/api/payment/create", `{"promoCode": "SALE10"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://yoomoney.ru/x", resp["confirmationUrl"])
		assert.Equal(t, 369.9, resp["finalPrice"])
		assert.Equal(t, float64(10), resp["discount"])
	})
}

func TestCartHandlerErrors(t *testing.T) {
	h := NewHandler(testConfig(), nil, nil, &stubCartService{
		addItem: func(ctx context.Context, userID uint, productID string) (*cart.CartItem, error) {
			return nil, &cart.StockExceededError{Max: 3}
		},
	}, nil, nil)
	r := gin.New()
	r.POST("/api/cart/items", h.addCartItem)

	w := postJSON(r, "/api/cart/items", `{"productId": "p-1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "only 3 left in stock")
}

type stubCartService struct {
	addItem func(ctx context.Context, userID uint, productID string) (*cart.CartItem, error)
}

func (s *stubCartService) AddItem(ctx context.Context, userID uint, productID string) (*cart.CartItem, error) {
	return s.addItem(ctx, userID, productID)
}

func (s *stubCartService) SetQuantity(ctx context.Context, userID uint, itemID string, quantity int) error {
	return nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID uint, itemID string) error {
	return nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uint) error { return nil }

func (s *stubCartService) Snapshot(ctx context.Context, userID uint) (*cart.Snapshot, error) {
	return &cart.Snapshot{}, nil
}

// Compile-time checks that the stubs satisfy the service interfaces.
var (
	_ order.Service = (*stubOrderService)(nil)
	_ promo.Service = (*stubPromoService)(nil)
	_ cart.Service  = (*stubCartService)(nil)
)
