package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, email, name, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, email, name, passwordHash, role)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(nil, nil)
		repo.On("Create", mock.Anything, "ann@example.com", "Ann", mock.AnythingOfType("string"), "user").
			Return(&User{ID: 1, Email: "ann@example.com", Name: "Ann", Role: "user"}, nil)

		res, err := svc.Register(context.Background(), RegisterParams{
			Email:    "  Ann@Example.com ",
			Name:     "Ann",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, uint(1), res.User.ID)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "ann@example.com").
			Return(&User{ID: 1, Email: "ann@example.com"}, nil)

		_, err := svc.Register(context.Background(), RegisterParams{
			Email:    "ann@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "ann@example.com").
			Return(&User{ID: 1, Email: "ann@example.com", PasswordHash: string(hash), Role: "user"}, nil)

		res, err := svc.Login(context.Background(), LoginParams{Email: "ann@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "ann@example.com").
			Return(&User{ID: 1, Email: "ann@example.com", PasswordHash: string(hash)}, nil)

		_, err := svc.Login(context.Background(), LoginParams{Email: "ann@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), LoginParams{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetProfile(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, uint(1)).Return(&User{ID: 1, Name: "Ann"}, nil)
	repo.On("GetByID", mock.Anything, uint(2)).Return(nil, nil)

	u, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	_, err = svc.GetProfile(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
