package payment

import "time"

// Payment statuses as the gateway reports them.
const (
	StatusPending           = "pending"
	StatusWaitingForCapture = "waiting_for_capture"
	StatusSucceeded         = "succeeded"
	StatusCanceled          = "canceled"
)

// Webhook event names sent by the gateway.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)

// Metadata travels with the payment through the gateway and comes
// back in webhooks, tying the payment to an order.
type Metadata struct {
	OrderID   string `json:"orderId"`
	UserID    string `json:"userId"`
	PromoCode string `json:"promoCode,omitempty"`
}

// Payment is the gateway's view of a payment.
type Payment struct {
	ID              string
	Status          string
	Paid            bool
	Amount          float64
	ConfirmationURL string
	Metadata        Metadata
	CreatedAt       time.Time
}

type CreatePaymentParams struct {
	Amount      float64
	Currency    string
	ReturnURL   string
	Description string
	Metadata    Metadata
}

// Record is the locally persisted copy of a gateway payment.
type Record struct {
	ID              int64     `json:"id"`
	OrderID         string    `json:"orderId"`
	PaymentID       string    `json:"paymentId"`
	ConfirmationURL string    `json:"confirmationUrl"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
