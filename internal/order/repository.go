package order

import (
	"context"
	"database/sql"

	"lavka-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrder inserts the order and its items in one transaction.
	CreateOrder(ctx context.Context, userID uint, total float64, items []OrderItem) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetOwner(ctx context.Context, id string) (uint, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	// MarkPaid flips a pending order to paid. It reports whether this
	// call performed the transition; a paid or canceled order is left
	// untouched.
	MarkPaid(ctx context.Context, id string) (bool, error)
	// MarkCanceled flips a pending order to canceled, with the same
	// contract as MarkPaid.
	MarkCanceled(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, userID uint, total float64, items []OrderItem) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o := &Order{UserID: userID, Total: total, Status: StatusPending}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status, created_at, updated_at)
		VALUES ($1, $2, 'pending', NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, userID, total).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for _, item := range items {
		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.ID, item.ProductID, item.Quantity, item.Price).Scan(&id)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}
		item.ID = id
		item.OrderID = o.ID
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *repository) GetOwner(ctx context.Context, id string) (uint, error) {
	var owner uint
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM orders WHERE id = $1`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return 0, ErrOrderNotFound
	}
	if err != nil {
		return 0, err
	}
	return owner, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) MarkPaid(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, id, StatusPaid)
}

func (r *repository) MarkCanceled(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, id, StatusCanceled)
}

// transition is the single place an order leaves pending. The status
// guard in the WHERE clause makes racing triggers safe: exactly one
// caller wins, everyone else sees zero affected rows.
func (r *repository) transition(ctx context.Context, id string, to Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`, to, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
