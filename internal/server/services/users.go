// Package services contains server-side business logic. This file implements
// UserService: account registration with bcrypt-hashed passwords and
// credential verification for login.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keepnotes/internal/common"
	"github.com/dmitrijs2005/keepnotes/internal/server/models"
	"github.com/dmitrijs2005/keepnotes/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Authenticate: verify credentials
// - GetByEmail: resolve a token subject to a user
type UserService struct {
	users      users.Repository
	bcryptCost int
}

// NewUserService constructs a UserService with the default bcrypt cost.
func NewUserService(repo users.Repository) *UserService {
	return &UserService{users: repo, bcryptCost: bcrypt.DefaultCost}
}

// NewUserServiceWithCost constructs a UserService with a custom bcrypt cost.
// Tests use the minimum cost to avoid the hashing overhead.
func NewUserServiceWithCost(repo users.Repository, cost int) *UserService {
	return &UserService{users: repo, bcryptCost: cost}
}

// Register creates a new account. A duplicate email yields
// common.ErrEmailTaken; the password is bcrypt-hashed before storage.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	// bcrypt silently truncates beyond 72 bytes; reject instead.
	if len(password) > 72 {
		return nil, fmt.Errorf("password must be 72 bytes or fewer")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Authenticate verifies the email/password pair. An unknown email and a
// wrong password are indistinguishable to the caller: both yield
// common.ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// GetByEmail returns the user a validated token subject refers to.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}
