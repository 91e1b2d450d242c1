package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

// AssistantHandler serves the AI design-assistant routes. Send and Reset
// run behind Auth and key the transcript by the authenticated identity; a
// client-supplied userId is ignored.
type AssistantHandler struct {
	service ports.AssistantService
}

func NewAssistantHandler(service ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

type sendRequest struct {
	Message string `json:"message" validate:"required"`
	// UserID is accepted for wire compatibility with older clients and
	// deliberately unused; the token identity wins.
	UserID string `json:"userId"`
}

type sendResponse struct {
	Reply string `json:"reply"`
	Lang  string `json:"lang"`
}

type detectLangRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *AssistantHandler) Send(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, lang, err := h.service.Send(c.Request().Context(), userID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sendResponse{Reply: reply, Lang: lang})
}

func (h *AssistantHandler) Reset(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Reset(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Chat history reset. Let's start fresh!"})
}

// DetectLang classifies a text snippet; stateless, so it stays public.
func (h *AssistantHandler) DetectLang(c echo.Context) error {
	var req detectLangRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"lang": h.service.DetectLanguage(req.Text)})
}
