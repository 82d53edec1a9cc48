package order

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

type Order struct {
	ID        string      `json:"id"`
	UserID    uint        `json:"userId"`
	Total     float64     `json:"total"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem freezes the product, quantity and unit price at the
// moment the order was placed.
type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     string  `json:"orderId"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// CreateOrderResult is what checkout hands back to the client: the
// new order plus where to send the customer to pay.
type CreateOrderResult struct {
	OrderID         string  `json:"orderId"`
	PaymentID       string  `json:"paymentId"`
	ConfirmationURL string  `json:"confirmationUrl"`
	Total           float64 `json:"total"`
	Discount        int     `json:"discount"`
	AppliedPromo    string  `json:"appliedPromo,omitempty"`
}

// StatusResult is the answer to a payment status poll.
type StatusResult struct {
	OrderID       string `json:"orderId"`
	OrderStatus   Status `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
	Paid          bool   `json:"paid"`
}
