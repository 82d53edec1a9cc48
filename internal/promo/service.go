package promo

import (
	"context"
	"strings"
	"time"

	"lavka-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for promo codes.
type Service interface {
	// Validate checks a customer supplied code and returns the promo
	// when it can be applied. The lookup is case insensitive.
	Validate(ctx context.Context, code string) (*PromoCode, error)
	ActivePromo(ctx context.Context) (*PromoCode, error)
	List(ctx context.Context) ([]PromoCode, error)
	Create(ctx context.Context, params CreatePromoParams) (*PromoCode, error)
	Update(ctx context.Context, id string, params UpdatePromoParams) (*PromoCode, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Validate(ctx context.Context, code string) (*PromoCode, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Validate"),
	)

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrPromoNotFound
	}

	p, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		log.Error("failed to look up promo code", zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrPromoNotFound
	}
	if !p.IsActive {
		return nil, ErrPromoInactive
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now()) {
		return nil, ErrPromoExpired
	}

	return p, nil
}

func (s *service) ActivePromo(ctx context.Context) (*PromoCode, error) {
	p, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoActivePromo
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]PromoCode, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, params CreatePromoParams) (*PromoCode, error) {
	params.Code = strings.ToUpper(strings.TrimSpace(params.Code))
	if params.Code == "" {
		return nil, ErrEmptyCode
	}
	if params.Discount < 1 || params.Discount > 100 {
		return nil, ErrInvalidDiscount
	}

	existing, err := s.repo.GetByCode(ctx, params.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeTaken
	}

	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, id string, params UpdatePromoParams) (*PromoCode, error) {
	if params.Code != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*params.Code))
		if normalized == "" {
			return nil, ErrEmptyCode
		}
		params.Code = &normalized
	}
	if params.Discount != nil && (*params.Discount < 1 || *params.Discount > 100) {
		return nil, ErrInvalidDiscount
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
