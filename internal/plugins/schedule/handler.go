package schedule

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schedview/schedview/internal/apperror"
	"github.com/schedview/schedview/internal/planner"
)

// Handler serves the calendar view's JSON endpoints. The browser shell
// polls these; all writes are relayed to the planner backend and observed
// again on the next events fetch.
type Handler struct {
	svc ScheduleService
}

// NewHandler creates a new schedule handler.
func NewHandler(svc ScheduleService) *Handler {
	return &Handler{svc: svc}
}

// GetEvents returns the mapped events for the week starting at ?start.
// GET /api/events?start=2025-03-09
func (h *Handler) GetEvents(c echo.Context) error {
	rangeStart, err := parseRangeStart(c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be an ISO date")
	}

	events, err := h.svc.WeekEvents(c.Request().Context(), rangeStart, time.Now())
	if err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, events)
}

// GetWindow returns the visible time range and its revision.
// GET /api/window
func (h *Handler) GetWindow(c echo.Context) error {
	window, rev := h.svc.Window()
	return c.JSON(http.StatusOK, map[string]any{
		"minTime":  window.MinTime,
		"maxTime":  window.MaxTime,
		"revision": rev,
	})
}

// GetNotifications returns the upcoming-task lines for the bell dropdown.
// GET /api/notifications
func (h *Handler) GetNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Notifications(time.Now()))
}

// GetState returns the onboarding/setup flags.
// GET /api/state
func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.State())
}

// saveItemRequest is the JSON body of the manual-add form.
type saveItemRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

// SaveItem relays a manually entered task/test to the backend.
// POST /api/items
func (h *Handler) SaveItem(c echo.Context) error {
	var req saveItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.SaveItem(c.Request().Context(), planner.ManualItem{
		Name:     req.Name,
		Type:     req.Type,
		Deadline: req.Deadline,
		Priority: req.Priority,
	}, time.Now())
	if err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// eventActionRequest identifies a rendered event for delete/mark-done.
type eventActionRequest struct {
	Title string `json:"title"`
	Start string `json:"start"`
	Type  string `json:"type"`
}

// DeleteEvent relays an event deletion.
// POST /api/events/delete
func (h *Handler) DeleteEvent(c echo.Context) error {
	var req eventActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.DeleteEvent(c.Request().Context(), planner.EventRef(req))
	if err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// MarkDone relays marking a plan session completed.
// POST /api/events/done
func (h *Handler) MarkDone(c echo.Context) error {
	var req eventActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.svc.MarkDone(c.Request().Context(), planner.EventRef(req))
	if err != nil {
		return echo.NewHTTPError(apperror.SafeCode(err), apperror.SafeMessage(err))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// parseRangeStart accepts the date shapes the calendar sends: a bare ISO
// date or a full RFC3339 instant.
func parseRangeStart(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
