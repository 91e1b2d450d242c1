package ports

import (
	"context"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user credentials.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// A duplicate email maps to domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a batch of user IDs in one round trip; missing
	// IDs are simply absent from the result map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// UpdateProfile atomically sets username and email for the given
	// user. A conflicting email maps to domain.ErrEmailTaken.
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error)
}
