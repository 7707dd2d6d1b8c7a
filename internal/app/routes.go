package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schedview/schedview/internal/middleware"
	"github.com/schedview/schedview/internal/planner"
	"github.com/schedview/schedview/internal/plugins/chat"
	"github.com/schedview/schedview/internal/plugins/schedule"
)

// RegisterRoutes wires the plugins and sets up all application routes.
// This is the single place where all routes are aggregated.
func RegisterRoutes(a *App) {
	e := a.Echo

	// The calendar shell is a static page; everything dynamic goes through
	// the JSON API below.
	e.GET("/", func(c echo.Context) error {
		return c.File("static/index.html")
	})

	// Health check endpoint for container health monitoring. Redis backs
	// only the advisory snapshot mirror, so losing it degrades rather
	// than fails the check.
	e.GET("/healthz", func(c echo.Context) error {
		status := "ok"
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			status = "degraded"
		}
		return c.JSON(http.StatusOK, map[string]string{"status": status})
	})

	// --- Shared infrastructure ---
	pc := planner.NewClient(a.Config.Planner)

	store := schedule.NewStore(a.Redis, a.Config.Redis.SnapshotTTL)
	if err := store.Restore(context.Background()); err != nil {
		// The mirror is a warm-start convenience; start empty on failure.
		slog.Warn("could not restore snapshot mirror", slog.Any("error", err))
	}

	// --- Plugin routes ---
	api := e.Group("/api")

	schedule.RegisterRoutes(api, schedule.NewHandler(schedule.NewService(pc, store)))

	chat.RegisterRoutes(api, chat.NewHandler(chat.NewService(pc)),
		middleware.RateLimit(20, time.Minute))
}
