package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleOwner   = "owner"
	RoleBuilder = "builder"
)

// ValidRole reports whether role is one of the two marketplace roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleBuilder
}

// User models an authenticated actor: a home owner or a builder.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
)

// ValidationError carries a human-readable message for a rejected input.
// The HTTP layer maps it to 400 with the message verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// RoleMismatchError is returned when credentials are correct but the caller
// asked to log in under a role the account does not hold. Unlike the other
// login failures this one is reported distinctly, per the product contract.
type RoleMismatchError struct {
	Requested string
}

func (e *RoleMismatchError) Error() string {
	return "you do not have access as " + e.Requested
}
