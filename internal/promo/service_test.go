package promo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context) ([]PromoCode, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*PromoCode, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	args := m.Called(ctx, code)
	if p := args.Get(0); p != nil {
		return p.(*PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetActive(ctx context.Context) (*PromoCode, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.(*PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, params CreatePromoParams) (*PromoCode, error) {
	args := m.Called(ctx, params)
	if p := args.Get(0); p != nil {
		return p.(*PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id string, params UpdatePromoParams) (*PromoCode, error) {
	args := m.Called(ctx, id, params)
	if p := args.Get(0); p != nil {
		return p.(*PromoCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestValidate(t *testing.T) {
	t.Run("uppercases and trims before lookup", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", mock.Anything, "SALE10").
			Return(&PromoCode{ID: "pr-1", Code: "SALE10", Discount: 10, IsActive: true}, nil)

		p, err := svc.Validate(context.Background(), "  sale10 ")
		require.NoError(t, err)
		assert.Equal(t, 10, p.Discount)
		repo.AssertExpectations(t)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", mock.Anything, "NOPE").Return(nil, nil)

		_, err := svc.Validate(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("inactive beats expired", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		past := time.Now().Add(-time.Hour)
		repo.On("GetByCode", mock.Anything, "OLD").
			Return(&PromoCode{Code: "OLD", Discount: 5, IsActive: false, ExpiresAt: &past}, nil)

		_, err := svc.Validate(context.Background(), "OLD")
		assert.ErrorIs(t, err, ErrPromoInactive)
	})

	t.Run("expired", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		past := time.Now().Add(-time.Minute)
		repo.On("GetByCode", mock.Anything, "GONE").
			Return(&PromoCode{Code: "GONE", Discount: 5, IsActive: true, ExpiresAt: &past}, nil)

		_, err := svc.Validate(context.Background(), "GONE")
		assert.ErrorIs(t, err, ErrPromoExpired)
	})

	t.Run("no expiry means usable", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", mock.Anything, "FOREVER").
			Return(&PromoCode{Code: "FOREVER", Discount: 15, IsActive: true}, nil)

		p, err := svc.Validate(context.Background(), "FOREVER")
		require.NoError(t, err)
		assert.Equal(t, 15, p.Discount)
	})

	t.Run("empty code short-circuits", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		_, err := svc.Validate(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrPromoNotFound)
		repo.AssertNotCalled(t, "GetByCode")
	})
}

func TestCreate(t *testing.T) {
	t.Run("rejects bad discount", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		_, err := svc.Create(context.Background(), CreatePromoParams{Code: "X", Discount: 0})
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = svc.Create(context.Background(), CreatePromoParams{Code: "X", Discount: 101})
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", mock.Anything, "SALE10").
			Return(&PromoCode{Code: "SALE10"}, nil)

		_, err := svc.Create(context.Background(), CreatePromoParams{Code: "sale10", Discount: 10})
		assert.ErrorIs(t, err, ErrCodeTaken)
	})

	t.Run("stores uppercase code", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByCode", mock.Anything, "SALE10").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p CreatePromoParams) bool {
			return p.Code == "SALE10"
		})).Return(&PromoCode{Code: "SALE10", Discount: 10}, nil)

		p, err := svc.Create(context.Background(), CreatePromoParams{Code: " sale10 ", Discount: 10})
		require.NoError(t, err)
		assert.Equal(t, "SALE10", p.Code)
	})
}

func TestActivePromo(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("GetActive", mock.Anything).Return(nil, nil)

	_, err := svc.ActivePromo(context.Background())
	assert.ErrorIs(t, err, ErrNoActivePromo)
}
