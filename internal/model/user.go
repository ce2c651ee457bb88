package model

import (
	"context"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// Longest username and email, in characters, either backend accepts.
const (
	MaxUsernameLength = 100
	MaxEmailLength    = 255
)

// User represents a registered user.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Username string
	Password string
	Email    string
}

// Session is the result of a successful authentication.
type Session struct {
	User        User
	AccessToken string
}
