package cart

import "time"

type CartItem struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// cartRow is a cart item joined with its product, as read from the
// database.
type cartRow struct {
	ItemID    string
	ProductID string
	Name      string
	Price     float64
	Stock     int
	ImageURL  string
	Quantity  int
}

type SnapshotItem struct {
	ItemID    string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Snapshot is a consistent read of a user's cart with the totals the
// checkout math is based on.
type Snapshot struct {
	Items      []SnapshotItem `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice float64        `json:"totalPrice"`
}
