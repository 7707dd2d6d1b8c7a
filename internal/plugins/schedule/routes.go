package schedule

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the calendar view routes on the given API group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/events", h.GetEvents)
	g.GET("/window", h.GetWindow)
	g.GET("/notifications", h.GetNotifications)
	g.GET("/state", h.GetState)

	g.POST("/items", h.SaveItem)
	g.POST("/events/delete", h.DeleteEvent)
	g.POST("/events/done", h.MarkDone)
}
