package ports

import (
	"context"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// PortfolioRepository persists builder portfolios with their embedded
// past-work lists. All mutations are single atomic document updates; the
// read-modify-write pattern is deliberately absent.
type PortfolioRepository interface {
	// Create inserts a portfolio. A second portfolio for the same owner
	// maps to domain.ErrPortfolioExists (unique index on created_by).
	Create(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error)
	FindByID(ctx context.Context, id string) (*domain.Portfolio, error)
	FindAll(ctx context.Context) ([]*domain.Portfolio, error)
	// UpdateFields applies the non-zero fields of upd in one $set and
	// returns the resulting document.
	UpdateFields(ctx context.Context, ownerID string, upd domain.PortfolioUpdate) (*domain.Portfolio, error)
	ClearLogo(ctx context.Context, ownerID string) error
	// AppendPastWork assigns pw.ID and appends it at the end of the
	// owner's list, preserving insertion order.
	AppendPastWork(ctx context.Context, ownerID string, pw *domain.PastWork) error
	// RemovePastWork removes the entry by ID within the owner's own
	// portfolio; a missing portfolio and a missing entry are reported
	// as distinct errors.
	RemovePastWork(ctx context.Context, ownerID, pastWorkID string) error
}
