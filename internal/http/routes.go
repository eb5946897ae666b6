package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"task-board-system.com/task-board-system/internal/auth"
	middleware "task-board-system.com/task-board-system/internal/http/middlewares"
)

type Options struct {
	RateLimitPerMinute int
	// Tokens enables bearer auth on everything but /health when set.
	Tokens *auth.TokenManager
}

func Register(e *echo.Echo, h *Handler, opts Options) {
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute))
	if opts.Tokens != nil {
		e.Use(middleware.BearerAuth(opts.Tokens, "/health"))
	}

	e.GET("/health", h.Health)

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/subtasks", h.CreateSubtasks)

	e.GET("/board", h.Board)
	e.GET("/context", h.Context)

	e.GET("/tools", h.ListTools)
	e.POST("/tools/:name", h.CallTool)
	e.GET("/notifications", h.Notifications)

	e.POST("/seed", h.Seed)
}
