package product

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"lavka-be/internal/cache"
	"lavka-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

// Service defines the business logic for the catalog.
type Service interface {
	List(ctx context.Context, search, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, id string, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	rdb  *redis.Client
}

// NewService creates a catalog service. rdb may be nil, in which
// case reads always go to the database.
func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

func (s *service) List(ctx context.Context, search, category string) ([]Product, error) {
	return s.repo.List(ctx, ListOptions{
		Search:     strings.TrimSpace(search),
		Category:   strings.TrimSpace(category),
		OnlyActive: true,
	})
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetByID"),
	)

	if s.rdb != nil {
		if data, err := cache.GetProduct(ctx, s.rdb, id); err == nil {
			var p Product
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if s.rdb != nil {
		if err := cache.SetProduct(ctx, s.rdb, id, p, cacheTTL); err != nil {
			log.Warn("failed to cache product", zap.String("product_id", id), zap.Error(err))
		}
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, id string, params UpdateProductParams) (*Product, error) {
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	p, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := cache.DeleteProduct(ctx, s.rdb, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to invalidate product cache",
			zap.String("product_id", id), zap.Error(err))
	}
}
