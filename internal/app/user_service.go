// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"

	"accounts/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration, credential verification and profile
// management on top of a user repository.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register validates input, hashes the password and stores a new user,
// returning the assigned id. Uniqueness of username and email is enforced
// by the repository.
func (s *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if username == "" || email == "" || password == "" {
		return 0, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// VerifyCredentials checks a username/password pair against the stored
// hash. An unknown username and a wrong password are indistinguishable to
// the caller.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// List returns all users without credential material, in id order.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// Get returns a single user by id, without credential material.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateInput carries the optional profile fields for Update. Empty strings
// mean "leave unchanged".
type UpdateInput struct {
	Username string
	Email    string
	Password string
}

// Update applies the non-empty fields of in to the user's record. A new
// password is rehashed before storage. Uniqueness of a changed username or
// email is not re-checked against other records.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateInput) error {
	upd := domain.UserUpdate{Username: in.Username, Email: in.Email}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = string(hash)
	}
	return s.users.Update(ctx, id, upd)
}

// Delete removes the user's record.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// Provision finds or creates a user for an externally authenticated
// identity (SSO). Created users have no usable password, so password login
// for them always fails.
func (s *UserService) Provision(ctx context.Context, username, email string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user, err = s.users.Create(ctx, username, email, "")
	if errors.Is(err, domain.ErrConflict) {
		// Lost a race with a concurrent provision for the same identity.
		return s.users.GetByUsername(ctx, username)
	}
	return user, err
}
