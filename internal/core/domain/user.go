package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password login
	// attempts so the API never reveals which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// User models a registered account. PasswordHash holds the bcrypt digest and is
// never serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
