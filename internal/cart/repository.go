package cart

import (
	"context"
	"database/sql"
)

type Repository interface {
	UpsertItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	GetItemForUser(ctx context.Context, itemID string, userID uint) (*CartItem, error)
	GetItemForUserAndProduct(ctx context.Context, userID uint, productID string) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, userID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID string, userID uint) error
	Clear(ctx context.Context, userID uint) error
	GetRows(ctx context.Context, userID uint) ([]cartRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// UpsertItem inserts a cart row for the product or, if the user
// already has one, bumps its quantity by one. The unique index on
// (user_id, product_id) makes concurrent adds safe.
func (r *repository) UpsertItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, 1, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = NOW()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) GetItemForUser(ctx context.Context, itemID string, userID uint) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1 AND user_id = $2
	`, itemID, userID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) GetItemForUserAndProduct(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	item := &CartItem{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID string, userID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, quantity, itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, itemID string, userID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear removes every cart row of the user. Clearing an empty cart
// is not an error.
func (r *repository) Clear(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *repository) GetRows(ctx context.Context, userID uint) ([]cartRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id,
			p.id,
			p.name,
			p.price,
			p.stock,
			p.image_url,
			c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []cartRow
	for rows.Next() {
		var row cartRow
		if err := rows.Scan(
			&row.ItemID, &row.ProductID, &row.Name, &row.Price,
			&row.Stock, &row.ImageURL, &row.Quantity,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
