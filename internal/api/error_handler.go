package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"error":"<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Rejected input carries its own message.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg
	}

	// Correct credentials, wrong role: reported distinctly on purpose.
	var rm *domain.RoleMismatchError
	if errors.As(err, &rm) {
		return http.StatusForbidden, rm.Error()
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		log.Error().Err(ue.Err).Str("op", ue.Op).Msg("upstream collaborator failed")
		return http.StatusBadGateway, "external service unavailable"
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrEmailTaken):
		// Kept at 400 to preserve the observed API contract.
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrPortfolioExists):
		return http.StatusBadRequest, "portfolio already exists, use update"
	case errors.Is(err, domain.ErrPortfolioRequired):
		return http.StatusNotFound, "portfolio not found, add portfolio first"
	case errors.Is(err, domain.ErrPortfolioNotFound):
		return http.StatusNotFound, "portfolio not found"
	case errors.Is(err, domain.ErrPastWorkNotFound):
		return http.StatusNotFound, "past work not found"
	case errors.Is(err, domain.ErrLogoNotFound):
		return http.StatusNotFound, "logo not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
