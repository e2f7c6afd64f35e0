// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// User represents a registered account, including credential material.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns the view of the user that is safe to expose to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// PublicUser is a user stripped of credential material.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Claims is the identity payload embedded in a verified session token.
type Claims struct {
	UserID   int64
	Username string
}

// UserUpdate describes a partial profile update. Empty fields are left
// unchanged; PasswordHash must already be hashed by the caller.
type UserUpdate struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserRepository defines the port for user persistence operations.
// Create must reject a username or email that is already taken, and the
// uniqueness check must be atomic with the insert.
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) error
	Delete(ctx context.Context, id int64) error
}
