package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

// BuilderHandler serves the portfolio routes. Mutations are scoped to the
// authenticated builder; reads are open to any authenticated user.
type BuilderHandler struct {
	service ports.PortfolioService
}

func NewBuilderHandler(service ports.PortfolioService) *BuilderHandler {
	return &BuilderHandler{service: service}
}

type portfolioResponse struct {
	Success   bool              `json:"success"`
	Portfolio *domain.Portfolio `json:"portfolio"`
}

type portfolioListResponse struct {
	Success    bool                `json:"success"`
	Portfolios []*domain.Portfolio `json:"portfolios"`
}

type pastWorkResponse struct {
	Success  bool             `json:"success"`
	PastWork *domain.PastWork `json:"pastWork"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AddPortfolio handles the multipart add-portfolio form with an optional
// logo file.
//
// @Summary      Create the caller's portfolio
// @Tags         builder
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  portfolioResponse
// @Failure      400  {object}  map[string]any
// @Router       /builder/add-portfolio [post]
func (h *BuilderHandler) AddPortfolio(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.CreatePortfolioInput{
		OwnerID:     userID,
		Company:     c.FormValue("company"),
		Experience:  formInt(c, "experience"),
		Address:     c.FormValue("address"),
		Description: c.FormValue("description"),
		Lat:         formFloat(c, "lat"),
		Lng:         formFloat(c, "lng"),
	}
	if file, err := c.FormFile("logo"); err == nil {
		in.Logo = file
	}

	p, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, portfolioResponse{Success: true, Portfolio: p})
}

// GetPortfolio returns the caller's own portfolio.
func (h *BuilderHandler) GetPortfolio(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	p, err := h.service.GetByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, portfolioResponse{Success: true, Portfolio: p})
}

// UpdatePortfolio applies a partial multipart update; empty fields keep
// their stored value.
func (h *BuilderHandler) UpdatePortfolio(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.UpdatePortfolioInput{
		OwnerID:     userID,
		Company:     c.FormValue("company"),
		Experience:  formInt(c, "experience"),
		Address:     c.FormValue("address"),
		Description: c.FormValue("description"),
		Lat:         formFloat(c, "lat"),
		Lng:         formFloat(c, "lng"),
	}
	if file, err := c.FormFile("logo"); err == nil {
		in.Logo = file
	}

	p, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, portfolioResponse{Success: true, Portfolio: p})
}

func (h *BuilderHandler) DeleteLogo(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteLogo(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "logo deleted successfully"})
}

// AllPortfolios returns the full directory with resolved owner fields.
func (h *BuilderHandler) AllPortfolios(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	list, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Portfolio{}
	}
	return c.JSON(http.StatusOK, portfolioListResponse{Success: true, Portfolios: list})
}

// PortfolioByID returns a single portfolio for read-only viewing.
func (h *BuilderHandler) PortfolioByID(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	p, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, portfolioResponse{Success: true, Portfolio: p})
}

// AddPastWork handles the multipart add-pastwork form with an images[]
// file list and a comma-joined specialties string.
func (h *BuilderHandler) AddPastWork(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in := ports.AddPastWorkInput{
		OwnerID:     userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Specialties: c.FormValue("specialties"),
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Images = form.File["images"]
	}

	pw, err := h.service.AddPastWork(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pastWorkResponse{Success: true, PastWork: pw})
}

func (h *BuilderHandler) DeletePastWork(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.RemovePastWork(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "past work deleted successfully"})
}

// formInt parses an optional integer form value; absent or malformed
// values read as zero, which the service treats as "not provided".
func formInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.FormValue(name))
	return n
}

func formFloat(c echo.Context, name string) *float64 {
	raw := c.FormValue(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
