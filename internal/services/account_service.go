package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/models"
	"github.com/masakimorita/work-report-api/internal/repository"
)

var (
	ErrUsernameTaken     = errors.New("このユーザー名は既に使用されています")
	ErrUserNotFound      = errors.New("ユーザーが見つかりません")
	ErrUsernameRequired  = errors.New("ユーザー名は必須です")
	ErrCannotDeleteAdmin = errors.New("adminアカウントは削除できません")
	ErrFailedToHash      = errors.New("failed to hash password")
)

// AccountService handles user-master administration
type AccountService struct {
	userRepo repository.UserRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// AddAccountInput represents input for creating an account
type AddAccountInput struct {
	Username      string
	Password      string
	Role          string
	JobCategories []string
}

// UpdateAccountInput represents input for updating an account. Nil
// fields are left untouched.
type UpdateAccountInput struct {
	Username      string
	Password      *string
	Role          *string
	JobCategories []string
	SetCategories bool
}

// List returns every account without password hashes
func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	accounts := make([]models.User, 0, len(users))
	for _, user := range users {
		user.PasswordHash = ""
		accounts = append(accounts, user)
	}
	return accounts, nil
}

// Add creates a new account
func (s *AccountService) Add(ctx context.Context, input AddAccountInput) error {
	if input.Username == "" || input.Password == "" {
		return ErrMissingCredentials
	}
	if input.Role == "" {
		input.Role = constants.RoleUser
	}

	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, exists := users[input.Username]; exists {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToHash, err)
	}

	categories := input.JobCategories
	if categories == nil {
		categories = []string{}
	}
	users[input.Username] = models.User{
		Username:      input.Username,
		PasswordHash:  string(hash),
		Role:          input.Role,
		JobCategories: categories,
	}

	return s.userRepo.Save(ctx, users)
}

// Update modifies an existing account
func (s *AccountService) Update(ctx context.Context, input UpdateAccountInput) error {
	if input.Username == "" {
		return ErrUsernameRequired
	}

	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	user, exists := users[input.Username]
	if !exists {
		return ErrUserNotFound
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToHash, err)
		}
		user.PasswordHash = string(hash)
	}
	if input.Role != nil && *input.Role != "" {
		user.Role = *input.Role
	}
	if input.SetCategories {
		categories := input.JobCategories
		if categories == nil {
			categories = []string{}
		}
		user.JobCategories = categories
	}

	users[input.Username] = user
	return s.userRepo.Save(ctx, users)
}

// Delete removes an account; the built-in admin is protected
func (s *AccountService) Delete(ctx context.Context, username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if username == constants.AdminUsername {
		return ErrCannotDeleteAdmin
	}

	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, exists := users[username]; !exists {
		return ErrUserNotFound
	}

	delete(users, username)
	return s.userRepo.Save(ctx, users)
}

// Usernames returns every known username
func (s *AccountService) Usernames(ctx context.Context) ([]string, error) {
	users, err := s.userRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	return names, nil
}
