package payment

import "context"

// Gateway abstracts the payment provider.
type Gateway interface {
	CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}
