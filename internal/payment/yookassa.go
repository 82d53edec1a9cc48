package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"lavka-be/internal/logger"
	"lavka-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const yookassaBaseURL = "https://api.yookassa.ru/v3"

type yookassaGateway struct {
	shopID     string
	secretKey  string
	httpClient *http.Client
}

func NewYooKassaGateway(shopID, secretKey string) Gateway {
	if shopID == "" || secretKey == "" {
		logger.L().Warn("YooKassa credentials are empty")
	}
	return &yookassaGateway{
		shopID:    shopID,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type yookassaAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type yookassaConfirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type yookassaPayment struct {
	ID           string                `json:"id"`
	Status       string                `json:"status"`
	Paid         bool                  `json:"paid"`
	Amount       yookassaAmount        `json:"amount"`
	Confirmation *yookassaConfirmation `json:"confirmation"`
	Metadata     Metadata              `json:"metadata"`
	CreatedAt    time.Time             `json:"created_at"`
}

func (y *yookassaGateway) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "yookassa"),
		zap.String("order_id", params.Metadata.OrderID),
	)

	currency := params.Currency
	if currency == "" {
		currency = "RUB"
	}

	body := map[string]interface{}{
		"amount": yookassaAmount{
			Value:    utils.FormatAmount(params.Amount),
			Currency: currency,
		},
		"capture": true,
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": params.ReturnURL,
		},
		"description": params.Description,
		"metadata":    params.Metadata,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, yookassaBaseURL+"/payments", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(y.shopID, y.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())

	log.Info("creating payment", zap.Float64("amount", params.Amount))

	resp, err := y.httpClient.Do(req)
	if err != nil {
		log.Error("payment request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	return decodePayment(resp, log)
}

func (y *yookassaGateway) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "yookassa"),
		zap.String("payment_id", paymentID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, yookassaBaseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(y.shopID, y.secretKey)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		log.Error("payment lookup failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	return decodePayment(resp, log)
}

func decodePayment(resp *http.Response, log *zap.Logger) (*Payment, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("gateway returned an error",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return nil, fmt.Errorf("yookassa: unexpected status %d", resp.StatusCode)
	}

	var yp yookassaPayment
	if err := json.Unmarshal(raw, &yp); err != nil {
		return nil, fmt.Errorf("yookassa: failed to decode response: %w", err)
	}

	amount, _ := strconv.ParseFloat(yp.Amount.Value, 64)

	p := &Payment{
		ID:        yp.ID,
		Status:    yp.Status,
		Paid:      yp.Paid,
		Amount:    amount,
		Metadata:  yp.Metadata,
		CreatedAt: yp.CreatedAt,
	}
	if yp.Confirmation != nil {
		p.ConfirmationURL = yp.Confirmation.ConfirmationURL
	}
	return p, nil
}
