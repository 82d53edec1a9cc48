package promo

import "time"

type PromoCode struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Discount    int        `json:"discount"`
	IsActive    bool       `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreatePromoParams struct {
	Code        string     `json:"code"`
	Discount    int        `json:"discount"`
	IsActive    bool       `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type UpdatePromoParams struct {
	Code        *string    `json:"code"`
	Discount    *int       `json:"discount"`
	IsActive    *bool      `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
}
