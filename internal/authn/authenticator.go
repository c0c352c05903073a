// Package authn verifies and registers account credentials.
package authn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

// UserRepository is the slice of the user store the authenticator needs.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticator checks credentials against stored accounts.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// Service implements credential verification and registration with bcrypt
// password hashing.
type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Authenticate looks up the account by email and compares the bcrypt hash.
// A missing account and a wrong password both report ErrUnauthenticated, so
// the response does not reveal which one it was.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

// Register creates a customer account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return user, nil
}
