package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("ユーザー名またはパスワードが正しくありません")
	ErrMissingCredentials = errors.New("ユーザー名とパスワードを入力してください")
)

// AuthService handles login verification
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginInput represents input for logging in
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials against the user master
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	user, ok := users[input.Username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
