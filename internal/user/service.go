package user

import (
	"context"
	"strings"

	"lavka-be/internal/auth"
	"lavka-be/internal/logger"
	"lavka-be/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the business logic for accounts.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email := strings.ToLower(strings.TrimSpace(params.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, email, params.Name, string(hash), utils.RoleUser)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := strings.ToLower(strings.TrimSpace(params.Email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up email", zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(params.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
