package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/nirmaanhetu/marketplace-api/internal/api/metrics"
	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

const (
	logoFolder     = "logos"
	pastWorkFolder = "pastWorks"
)

// PortfolioService implements the builder portfolio aggregate operations.
type PortfolioService struct {
	repo     ports.PortfolioRepository
	userRepo ports.UserRepository
	media    ports.MediaStore
	log      zerolog.Logger
}

func NewPortfolioService(repo ports.PortfolioRepository, userRepo ports.UserRepository, media ports.MediaStore, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, userRepo: userRepo, media: media, log: log}
}

func (s *PortfolioService) Create(ctx context.Context, in ports.CreatePortfolioInput) (*domain.Portfolio, error) {
	if strings.TrimSpace(in.Company) == "" || in.Experience <= 0 ||
		strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.Validationf("company, experience, address and description are required")
	}

	var logo *domain.MediaObject
	if in.Logo != nil {
		var err error
		logo, err = s.upload(ctx, in.Logo, logoFolder, "logo")
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Portfolio{
		CreatedBy:   in.OwnerID,
		Company:     strings.TrimSpace(in.Company),
		Experience:  in.Experience,
		Address:     in.Address,
		Description: in.Description,
		Lat:         in.Lat,
		Lng:         in.Lng,
		Logo:        logo,
		PastWorks:   []domain.PastWork{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	metrics.PortfoliosCreatedTotal.Inc()
	s.log.Info().Str("owner_id", in.OwnerID).Str("portfolio_id", created.ID).Msg("portfolio created")
	return created, nil
}

func (s *PortfolioService) GetByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *PortfolioService) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveOwners(ctx, p)
	return p, nil
}

func (s *PortfolioService) ListAll(ctx context.Context) ([]*domain.Portfolio, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.resolveOwners(ctx, list...)
	return list, nil
}

// Update merges only the provided fields. When a new logo is supplied the
// old remote object is removed first, best effort: a media-host failure is
// logged and the update continues.
func (s *PortfolioService) Update(ctx context.Context, in ports.UpdatePortfolioInput) (*domain.Portfolio, error) {
	upd := domain.PortfolioUpdate{
		Company:     strings.TrimSpace(in.Company),
		Experience:  in.Experience,
		Address:     in.Address,
		Description: in.Description,
		Lat:         in.Lat,
		Lng:         in.Lng,
	}

	// A form with no fields and no logo is a no-op read, not a write.
	if in.Logo == nil && upd.Empty() {
		return s.repo.FindByOwner(ctx, in.OwnerID)
	}

	if in.Logo != nil {
		existing, err := s.repo.FindByOwner(ctx, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if existing.Logo != nil {
			if err := s.media.Destroy(ctx, existing.Logo.PublicID); err != nil {
				s.log.Warn().Err(err).
					Str("public_id", existing.Logo.PublicID).
					Msg("failed to delete old logo, continuing")
			}
		}
		logo, err := s.upload(ctx, in.Logo, logoFolder, "logo")
		if err != nil {
			return nil, err
		}
		upd.Logo = logo
	}

	return s.repo.UpdateFields(ctx, in.OwnerID, upd)
}

// DeleteLogo removes the remote object first and clears the reference only
// after the remote delete succeeded, so a stored reference never points at
// a deleted object.
func (s *PortfolioService) DeleteLogo(ctx context.Context, ownerID string) error {
	p, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if p.Logo == nil {
		return domain.ErrLogoNotFound
	}

	if err := s.media.Destroy(ctx, p.Logo.PublicID); err != nil {
		return &domain.UpstreamError{Op: "delete logo", Err: err}
	}
	return s.repo.ClearLogo(ctx, ownerID)
}

// AddPastWork uploads every image before anything is persisted; a single
// failed upload aborts the whole operation so the list is never partial.
func (s *PortfolioService) AddPastWork(ctx context.Context, in ports.AddPastWorkInput) (*domain.PastWork, error) {
	if _, err := s.repo.FindByOwner(ctx, in.OwnerID); err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return nil, domain.ErrPortfolioRequired
		}
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.Validationf("title, description and price are required")
	}
	price, err := domain.ParsePriceRange(in.Price)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(in.Images))
	for _, file := range in.Images {
		obj, err := s.upload(ctx, file, pastWorkFolder, "pastwork_image")
		if err != nil {
			return nil, err
		}
		images = append(images, obj.URL)
	}

	pw := &domain.PastWork{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Images:      images,
		Price:       price,
		Specialties: splitSpecialties(in.Specialties),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.AppendPastWork(ctx, in.OwnerID, pw); err != nil {
		return nil, err
	}

	metrics.PastWorksTotal.WithLabelValues("added").Inc()
	s.log.Info().Str("owner_id", in.OwnerID).Str("pastwork_id", pw.ID).Msg("past work added")
	return pw, nil
}

// RemovePastWork deletes by ID within the caller's own portfolio. Hosted
// images are intentionally left on the media host; see DESIGN.md.
func (s *PortfolioService) RemovePastWork(ctx context.Context, ownerID, pastWorkID string) error {
	if err := s.repo.RemovePastWork(ctx, ownerID, pastWorkID); err != nil {
		return err
	}
	metrics.PastWorksTotal.WithLabelValues("removed").Inc()
	return nil
}

func (s *PortfolioService) upload(ctx context.Context, file *multipart.FileHeader, folder, kind string) (*domain.MediaObject, error) {
	if s.media == nil {
		return nil, &domain.UpstreamError{Op: "upload " + kind, Err: errors.New("media storage not configured")}
	}

	timer := prometheus.NewTimer(metrics.MediaUploadDuration.WithLabelValues(kind))
	defer timer.ObserveDuration()

	obj, err := s.media.Upload(ctx, file, folder)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "upload " + kind, Err: err}
	}
	return obj, nil
}

// resolveOwners fills the display fields from a single batched user lookup.
func (s *PortfolioService) resolveOwners(ctx context.Context, portfolios ...*domain.Portfolio) {
	ids := make([]string, 0, len(portfolios))
	for _, p := range portfolios {
		ids = append(ids, p.CreatedBy)
	}
	owners, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to resolve portfolio owners")
		return
	}
	for _, p := range portfolios {
		if u, ok := owners[p.CreatedBy]; ok {
			p.OwnerUsername = u.Username
			p.OwnerEmail = u.Email
		}
	}
}

func splitSpecialties(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
