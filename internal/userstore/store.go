package userstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user record exists for a username.
	ErrNotFound = errors.New("user not found")
	// ErrConflict is returned when a create would violate username or email
	// uniqueness.
	ErrConflict = errors.New("user already exists")
)

// User is a stored user record. PasswordHash is opaque to everything except
// the credentials package.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Disabled     bool   `json:"disabled"`
	PasswordHash string `json:"password_hash"`
}

// Store is the user persistence port. Implementations must enforce
// uniqueness on username and email.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
}
