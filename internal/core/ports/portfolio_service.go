package ports

import (
	"context"
	"mime/multipart"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// CreatePortfolioInput carries the add-portfolio form. Logo is optional.
type CreatePortfolioInput struct {
	OwnerID     string
	Company     string
	Experience  int
	Address     string
	Description string
	Lat         *float64
	Lng         *float64
	Logo        *multipart.FileHeader
}

// UpdatePortfolioInput is a partial update; empty fields are left as they
// are. A new Logo replaces (and best-effort deletes) the old one.
type UpdatePortfolioInput struct {
	OwnerID     string
	Company     string
	Experience  int
	Address     string
	Description string
	Lat         *float64
	Lng         *float64
	Logo        *multipart.FileHeader
}

// AddPastWorkInput carries the add-pastwork form. Specialties arrive as a
// comma-joined string; Images are uploaded before anything is persisted.
type AddPastWorkInput struct {
	OwnerID     string
	Title       string
	Description string
	Price       string
	Specialties string
	Images      []*multipart.FileHeader
}

type PortfolioService interface {
	Create(ctx context.Context, in CreatePortfolioInput) (*domain.Portfolio, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error)
	// GetByID returns a portfolio with resolved owner display fields for
	// read-only viewing by non-owners.
	GetByID(ctx context.Context, id string) (*domain.Portfolio, error)
	ListAll(ctx context.Context) ([]*domain.Portfolio, error)
	Update(ctx context.Context, in UpdatePortfolioInput) (*domain.Portfolio, error)
	DeleteLogo(ctx context.Context, ownerID string) error
	AddPastWork(ctx context.Context, in AddPastWorkInput) (*domain.PastWork, error)
	RemovePastWork(ctx context.Context, ownerID, pastWorkID string) error
}
