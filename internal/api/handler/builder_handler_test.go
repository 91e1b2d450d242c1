package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

type stubPortfolioService struct {
	createFn         func(ctx context.Context, in ports.CreatePortfolioInput) (*domain.Portfolio, error)
	getByOwnerFn     func(ctx context.Context, ownerID string) (*domain.Portfolio, error)
	getByIDFn        func(ctx context.Context, id string) (*domain.Portfolio, error)
	listAllFn        func(ctx context.Context) ([]*domain.Portfolio, error)
	updateFn         func(ctx context.Context, in ports.UpdatePortfolioInput) (*domain.Portfolio, error)
	deleteLogoFn     func(ctx context.Context, ownerID string) error
	addPastWorkFn    func(ctx context.Context, in ports.AddPastWorkInput) (*domain.PastWork, error)
	removePastWorkFn func(ctx context.Context, ownerID, pastWorkID string) error
}

func (s *stubPortfolioService) Create(ctx context.Context, in ports.CreatePortfolioInput) (*domain.Portfolio, error) {
	return s.createFn(ctx, in)
}

func (s *stubPortfolioService) GetByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	return s.getByOwnerFn(ctx, ownerID)
}

func (s *stubPortfolioService) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPortfolioService) ListAll(ctx context.Context) ([]*domain.Portfolio, error) {
	return s.listAllFn(ctx)
}

func (s *stubPortfolioService) Update(ctx context.Context, in ports.UpdatePortfolioInput) (*domain.Portfolio, error) {
	return s.updateFn(ctx, in)
}

func (s *stubPortfolioService) DeleteLogo(ctx context.Context, ownerID string) error {
	return s.deleteLogoFn(ctx, ownerID)
}

func (s *stubPortfolioService) AddPastWork(ctx context.Context, in ports.AddPastWorkInput) (*domain.PastWork, error) {
	return s.addPastWorkFn(ctx, in)
}

func (s *stubPortfolioService) RemovePastWork(ctx context.Context, ownerID, pastWorkID string) error {
	return s.removePastWorkFn(ctx, ownerID, pastWorkID)
}

// multipartContext builds an authenticated multipart request with the given
// form fields and file parts.
func multipartContext(t *testing.T, e *echo.Echo, target string, fields map[string]string, files map[string][]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	for name, filenames := range files {
		for _, fn := range filenames {
			part, err := w.CreateFormFile(name, fn)
			if err != nil {
				t.Fatalf("create file part %s: %v", fn, err)
			}
			if _, err := part.Write([]byte("fake image bytes")); err != nil {
				t.Fatalf("write file part %s: %v", fn, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "builder-1")
	c.Set("role", "builder")
	return c, rec
}

func TestBuilderHandler_AddPortfolio(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		createFn: func(ctx context.Context, in ports.CreatePortfolioInput) (*domain.Portfolio, error) {
			if in.OwnerID != "builder-1" {
				t.Fatalf("owner must come from the token, got %s", in.OwnerID)
			}
			if in.Company != "Acme" || in.Experience != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Logo == nil || in.Logo.Filename != "logo.png" {
				t.Fatalf("logo file not forwarded: %+v", in.Logo)
			}
			if in.Lat == nil || *in.Lat != 18.52 {
				t.Fatalf("lat not parsed: %v", in.Lat)
			}
			return &domain.Portfolio{ID: "p1", CreatedBy: in.OwnerID, Company: in.Company}, nil
		},
	}
	handler := NewBuilderHandler(stub)

	c, rec := multipartContext(t, e, "/builder/add-portfolio", map[string]string{
		"company":     "Acme",
		"experience":  "5",
		"address":     "Pune",
		"description": "homes",
		"lat":         "18.52",
	}, map[string][]string{"logo": {"logo.png"}})

	if err := handler.AddPortfolio(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %+v", resp)
	}
}

func TestBuilderHandler_AddPortfolio_MalformedExperienceReadsAsZero(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		createFn: func(ctx context.Context, in ports.CreatePortfolioInput) (*domain.Portfolio, error) {
			if in.Experience != 0 {
				t.Fatalf("malformed experience must read as zero, got %d", in.Experience)
			}
			return nil, domain.Validationf("company, experience, address and description are required")
		},
	}
	handler := NewBuilderHandler(stub)

	c, _ := multipartContext(t, e, "/builder/add-portfolio", map[string]string{
		"company":    "Acme",
		"experience": "lots",
	}, nil)

	err := handler.AddPortfolio(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError to propagate, got %v", err)
	}
}

func TestBuilderHandler_AddPastWork(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		addPastWorkFn: func(ctx context.Context, in ports.AddPastWorkInput) (*domain.PastWork, error) {
			if in.OwnerID != "builder-1" {
				t.Fatalf("owner must come from the token, got %s", in.OwnerID)
			}
			if len(in.Images) != 2 {
				t.Fatalf("expected 2 image files, got %d", len(in.Images))
			}
			if in.Specialties != "interiors,landscaping" {
				t.Fatalf("specialties not forwarded: %q", in.Specialties)
			}
			return &domain.PastWork{ID: "w1", Title: in.Title}, nil
		},
	}
	handler := NewBuilderHandler(stub)

	c, rec := multipartContext(t, e, "/builder/add-pastwork", map[string]string{
		"title":       "Villa",
		"description": "3BHK",
		"price":       "1200-1800",
		"specialties": "interiors,landscaping",
	}, map[string][]string{"images": {"a.jpg", "b.jpg"}})

	if err := handler.AddPastWork(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBuilderHandler_DeletePastWork(t *testing.T) {
	e := echo.New()
	removed := ""
	stub := &stubPortfolioService{
		removePastWorkFn: func(ctx context.Context, ownerID, pastWorkID string) error {
			if ownerID != "builder-1" {
				t.Fatalf("owner must come from the token, got %s", ownerID)
			}
			removed = pastWorkID
			return nil
		},
	}
	handler := NewBuilderHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/builder/delete-pastwork/w1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "builder-1")
	c.Set("role", "builder")
	c.SetParamNames("id")
	c.SetParamValues("w1")

	if err := handler.DeletePastWork(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if removed != "w1" {
		t.Fatalf("wrong past work removed: %q", removed)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBuilderHandler_AllPortfolios_EmptyListNotNull(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		listAllFn: func(ctx context.Context) ([]*domain.Portfolio, error) {
			return nil, nil
		},
	}
	handler := NewBuilderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/builder/all-portfolios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "owner")

	if err := handler.AllPortfolios(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	list, ok := resp["portfolios"].([]any)
	if !ok {
		t.Fatalf("portfolios must be an array, got %T", resp["portfolios"])
	}
	if len(list) != 0 {
		t.Fatalf("expected empty array, got %v", list)
	}
}

func TestBuilderHandler_PortfolioByID(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		getByIDFn: func(ctx context.Context, id string) (*domain.Portfolio, error) {
			if id != "p9" {
				t.Fatalf("unexpected id %s", id)
			}
			return &domain.Portfolio{ID: "p9", Company: "Acme", OwnerUsername: "builder9"}, nil
		},
	}
	handler := NewBuilderHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/builder/portfolio/p9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("role", "owner")
	c.SetParamNames("id")
	c.SetParamValues("p9")

	if err := handler.PortfolioByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	p, _ := resp["portfolio"].(map[string]any)
	if p["ownerUsername"] != "builder9" {
		t.Fatalf("owner fields missing: %+v", p)
	}
}

func TestBuilderHandler_DeleteLogo_NotFoundPropagates(t *testing.T) {
	e := echo.New()
	stub := &stubPortfolioService{
		deleteLogoFn: func(ctx context.Context, ownerID string) error {
			return domain.ErrLogoNotFound
		},
	}
	handler := NewBuilderHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/builder/delete-logo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "builder-1")
	c.Set("role", "builder")

	if err := handler.DeleteLogo(c); !errors.Is(err, domain.ErrLogoNotFound) {
		t.Fatalf("expected ErrLogoNotFound to propagate, got %v", err)
	}
}
