package ports

import (
	"context"
	"mime/multipart"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// MediaStore abstracts the external media host holding logos and past-work
// images.
type MediaStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*domain.MediaObject, error)
	Destroy(ctx context.Context, publicID string) error
}
