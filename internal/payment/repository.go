package payment

import (
	"context"
	"database/sql"
)

type Repository interface {
	Save(ctx context.Context, orderID, paymentID, confirmationURL string, amount float64, status string) (*Record, error)
	UpdateStatus(ctx context.Context, paymentID, status string) error
	GetByOrderID(ctx context.Context, orderID string) (*Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, orderID, paymentID, confirmationURL string, amount float64, status string) (*Record, error) {
	rec := &Record{
		OrderID:         orderID,
		PaymentID:       paymentID,
		ConfirmationURL: confirmationURL,
		Amount:          amount,
		Status:          status,
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, payment_id, confirmation_url, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, orderID, paymentID, confirmationURL, amount, status).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repository) UpdateStatus(ctx context.Context, paymentID, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE payment_id = $2
	`, status, paymentID)
	return err
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Record, error) {
	rec := &Record{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, payment_id, confirmation_url, amount, status, created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID).Scan(
		&rec.ID, &rec.OrderID, &rec.PaymentID, &rec.ConfirmationURL,
		&rec.Amount, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
