// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"accounts/internal/domain"
)

// DB implements an in-memory user store. All operations run under one
// mutex, so the compound sequences (uniqueness-check-then-insert,
// lookup-then-mutate) are atomic.
type DB struct {
	mu            sync.Mutex
	users         []*domain.User
	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)

// Create inserts a new user after checking username and email uniqueness.
func (db *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username || u.Email == email {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)

	out := *u
	return &out, nil
}

// GetByUsername retrieves a user by username (case-sensitive exact match).
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByID retrieves a user by id.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all users in id order.
func (db *DB) List(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Insertion order is id order; deletes preserve it.
	result := make([]domain.User, 0, len(db.users))
	for _, u := range db.users {
		result = append(result, *u)
	}
	return result, nil
}

// Update applies the non-empty fields of upd to the stored record.
func (db *DB) Update(ctx context.Context, id int64, upd domain.UserUpdate) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID != id {
			continue
		}
		if upd.Username != "" {
			u.Username = upd.Username
		}
		if upd.Email != "" {
			u.Email = upd.Email
		}
		if upd.PasswordHash != "" {
			u.PasswordHash = upd.PasswordHash
		}
		return nil
	}
	return domain.ErrNotFound
}

// Delete removes a user by id.
func (db *DB) Delete(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, u := range db.users {
		if u.ID == id {
			db.users = append(db.users[:i], db.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
