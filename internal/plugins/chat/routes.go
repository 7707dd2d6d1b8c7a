package chat

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the chat relay routes on the given API group.
// limiter is applied to the message endpoint only, since it fans out to
// the backend's LLM.
func RegisterRoutes(g *echo.Group, h *Handler, limiter echo.MiddlewareFunc) {
	g.POST("/chat", h.SendMessage, limiter)
	g.POST("/personalization", h.SavePersonalization)
	g.POST("/onboarding/dismiss", h.DismissOnboarding)
}
