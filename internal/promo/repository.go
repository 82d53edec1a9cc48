package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Repository interface {
	List(ctx context.Context) ([]PromoCode, error)
	GetByID(ctx context.Context, id string) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	GetActive(ctx context.Context) (*PromoCode, error)
	Create(ctx context.Context, params CreatePromoParams) (*PromoCode, error)
	Update(ctx context.Context, id string, params UpdatePromoParams) (*PromoCode, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const promoColumns = "id, code, discount, is_active, expires_at, title, description, created_at, updated_at"

func scanPromo(row interface{ Scan(...interface{}) error }) (*PromoCode, error) {
	p := &PromoCode{}
	err := row.Scan(
		&p.ID, &p.Code, &p.Discount, &p.IsActive, &p.ExpiresAt,
		&p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]PromoCode, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+promoColumns+" FROM promo_codes ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []PromoCode
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *p)
	}
	return promos, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*PromoCode, error) {
	p, err := scanPromo(r.db.QueryRowContext(ctx,
		"SELECT "+promoColumns+" FROM promo_codes WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	p, err := scanPromo(r.db.QueryRowContext(ctx,
		"SELECT "+promoColumns+" FROM promo_codes WHERE code = $1", code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetActive returns the newest promo code that is switched on and
// has not expired yet.
func (r *repository) GetActive(ctx context.Context) (*PromoCode, error) {
	p, err := scanPromo(r.db.QueryRowContext(ctx, `
		SELECT `+promoColumns+`
		FROM promo_codes
		WHERE is_active = TRUE AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC
		LIMIT 1
	`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, params CreatePromoParams) (*PromoCode, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO promo_codes (code, discount, is_active, expires_at, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+promoColumns,
		params.Code, params.Discount, params.IsActive, params.ExpiresAt, params.Title, params.Description,
	)
	p, err := scanPromo(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id string, params UpdatePromoParams) (*PromoCode, error) {
	var (
		sets []string
		args []interface{}
	)

	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if params.Code != nil {
		add("code", *params.Code)
	}
	if params.Discount != nil {
		add("discount", *params.Discount)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}
	if params.ExpiresAt != nil {
		add("expires_at", *params.ExpiresAt)
	}
	if params.Title != nil {
		add("title", *params.Title)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE promo_codes SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), promoColumns,
	)

	p, err := scanPromo(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM promo_codes WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPromoNotFound
	}
	return nil
}
