package ports

import (
	"context"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// RegisterInput is the full registration payload; ConfirmPassword must
// match Password.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// AuthResult pairs the persisted identity with a freshly minted token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// Login verifies email+password. A non-empty role that differs from
	// the stored role fails with *domain.RoleMismatchError; every other
	// failure is the uniform domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password, role string) (*AuthResult, error)
	// DemoLogin issues a token for the seeded demo account of the role.
	DemoLogin(ctx context.Context, role string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error)
}
