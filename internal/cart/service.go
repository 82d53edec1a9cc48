package cart

import (
	"context"

	"lavka-be/internal/logger"
	"lavka-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	SetQuantity(ctx context.Context, userID uint, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID uint, itemID string) error
	Clear(ctx context.Context, userID uint) error
	Snapshot(ctx context.Context, userID uint) (*Snapshot, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddItem puts one unit of the product into the cart, or bumps the
// existing row by one. The stock ceiling is checked against the
// quantity already in the cart.
func (s *service) AddItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
	)

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	existing, err := s.repo.GetItemForUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Quantity+1 > p.Stock {
		return nil, &StockExceededError{Max: p.Stock}
	}

	return s.repo.UpsertItem(ctx, userID, productID)
}

// SetQuantity changes the quantity of a cart row the user owns. A
// quantity of zero or less removes the row.
func (s *service) SetQuantity(ctx context.Context, userID uint, itemID string, quantity int) error {
	item, err := s.repo.GetItemForUser(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}

	if quantity <= 0 {
		return s.repo.DeleteItem(ctx, itemID, userID)
	}

	p, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if p != nil && quantity > p.Stock {
		return &StockExceededError{Max: p.Stock}
	}

	return s.repo.UpdateQuantity(ctx, itemID, userID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID uint, itemID string) error {
	return s.repo.DeleteItem(ctx, itemID, userID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}

// Snapshot reads the cart with product data joined in and computes
// the totals checkout works from.
func (s *service) Snapshot(ctx context.Context, userID uint) (*Snapshot, error) {
	rows, err := s.repo.GetRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Items: make([]SnapshotItem, 0, len(rows))}
	for _, r := range rows {
		subtotal := r.Price * float64(r.Quantity)
		snap.Items = append(snap.Items, SnapshotItem{
			ItemID:    r.ItemID,
			ProductID: r.ProductID,
			Name:      r.Name,
			Price:     r.Price,
			Stock:     r.Stock,
			ImageURL:  r.ImageURL,
			Quantity:  r.Quantity,
			Subtotal:  subtotal,
		})
		snap.TotalItems += r.Quantity
		snap.TotalPrice += subtotal
	}
	return snap, nil
}
