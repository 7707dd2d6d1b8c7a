package chat

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schedview/schedview/internal/apperror"
)

// Handler serves the chat relay endpoints.
type Handler struct {
	svc ChatService
}

// NewHandler creates a new chat handler.
func NewHandler(svc ChatService) *Handler {
	return &Handler{svc: svc}
}

// SendMessage relays a chat message to the assistant.
// POST /api/chat
func (h *Handler) SendMessage(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, err := h.svc.Send(c.Request().Context(), req.Message, req.Year, time.Now())
	if err != nil {
		// The transcript renders this inline as an error bubble; there is
		// no automatic retry.
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, reply)
}

// SavePersonalization relays the settings modal's wake/sleep times.
// POST /api/personalization
func (h *Handler) SavePersonalization(c echo.Context) error {
	var req personalizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reply, err := h.svc.SavePersonalization(c.Request().Context(), req.AwakeTime, req.SleepTime, time.Now())
	if err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, reply)
}

// DismissOnboarding acknowledges the onboarding banner.
// POST /api/onboarding/dismiss
func (h *Handler) DismissOnboarding(c echo.Context) error {
	if err := h.svc.DismissOnboarding(c.Request().Context()); err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
}
