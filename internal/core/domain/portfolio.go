package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrPortfolioExists   = errors.New("portfolio already exists")
	ErrPortfolioRequired = errors.New("portfolio not found, add portfolio first")
	ErrPastWorkNotFound  = errors.New("past work not found")
	ErrLogoNotFound      = errors.New("logo not found")
)

// UpstreamError wraps a failure of an external collaborator (media host,
// model host). The HTTP layer maps it to 502.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// MediaObject references an asset hosted on the external media store.
// URL and PublicID are always both present or both absent.
type MediaObject struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// PriceRange is the structured price of a past work. A single quoted price
// has Min == Max.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ParsePriceRange accepts "1200", "1200-1800" or "₹1,200 - ₹1,800" style
// strings as submitted by the portfolio form.
func ParsePriceRange(s string) (PriceRange, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ',', '₹', '$', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if clean == "" {
		return PriceRange{}, Validationf("price is required")
	}

	parts := strings.SplitN(clean, "-", 2)
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || min < 0 {
		return PriceRange{}, Validationf("invalid price %q", s)
	}
	max := min
	if len(parts) == 2 {
		max, err = strconv.ParseFloat(parts[1], 64)
		if err != nil || max < min {
			return PriceRange{}, Validationf("invalid price range %q", s)
		}
	}
	return PriceRange{Min: min, Max: max}, nil
}

// PastWork is a completed project embedded in a builder's portfolio.
// Entries are append-only and removed by ID; there is no in-place edit.
type PastWork struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Images      []string   `json:"images"`
	Price       PriceRange `json:"price"`
	Specialties []string   `json:"specialties"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Portfolio is the aggregate owned by exactly one builder. PastWorks keeps
// insertion order; the newest entry is always last.
type Portfolio struct {
	ID          string       `json:"_id"`
	CreatedBy   string       `json:"createdBy"`
	Company     string       `json:"company"`
	Experience  int          `json:"experience"`
	Address     string       `json:"address"`
	Description string       `json:"description"`
	Lat         *float64     `json:"lat,omitempty"`
	Lng         *float64     `json:"lng,omitempty"`
	Logo        *MediaObject `json:"logo,omitempty"`
	PastWorks   []PastWork   `json:"pastWorks"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Resolved owner display fields, populated for read-only views.
	OwnerUsername string `json:"ownerUsername,omitempty"`
	OwnerEmail    string `json:"ownerEmail,omitempty"`
}

// PortfolioUpdate carries a partial update: zero values leave the stored
// field unchanged, per-field last write wins.
type PortfolioUpdate struct {
	Company     string
	Experience  int
	Address     string
	Description string
	Lat         *float64
	Lng         *float64
	Logo        *MediaObject
}

// Empty reports whether the update would touch nothing.
func (u PortfolioUpdate) Empty() bool {
	return u.Company == "" && u.Experience == 0 && u.Address == "" &&
		u.Description == "" && u.Lat == nil && u.Lng == nil && u.Logo == nil
}
