package http

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"task-board-system.com/task-board-system/internal/board"
	dto "task-board-system.com/task-board-system/internal/data_models"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	"task-board-system.com/task-board-system/internal/http/validators"
	"task-board-system.com/task-board-system/internal/notify"
	"task-board-system.com/task-board-system/internal/services"
	"task-board-system.com/task-board-system/internal/tools"
)

type Handler struct {
	taskService *services.TaskService
	registry    *tools.Registry
	recorder    *notify.Recorder
	storeDriver string
	cacheStats  CacheStats
}

// CacheStats reports list cache effectiveness for the health endpoint.
type CacheStats interface {
	Stats() (hits, misses int64)
}

func NewHandler(taskService *services.TaskService, registry *tools.Registry, recorder *notify.Recorder, storeDriver string) *Handler {
	return &Handler{
		taskService: taskService,
		registry:    registry,
		recorder:    recorder,
		storeDriver: storeDriver,
	}
}

// WithCacheStats adds the list cache counters to /health.
func (h *Handler) WithCacheStats(stats CacheStats) *Handler {
	h.cacheStats = stats
	return h
}

// fail maps a service error to an HTTP error without leaking backend detail.
func fail(err error, fallback string) error {
	if apperrors.KindOf(err) == apperrors.KindBackend {
		log.Printf("%s: %v", fallback, err)
	}
	return echo.NewHTTPError(apperrors.StatusCode(err), apperrors.PublicMessage(err, fallback))
}

func (h *Handler) Health(c echo.Context) error {
	body := echo.Map{
		"status": "ok",
		"store":  h.storeDriver,
	}
	if h.cacheStats != nil {
		hits, misses := h.cacheStats.Stats()
		body["cache"] = echo.Map{"hits": hits, "misses": misses}
	}
	return c.JSON(http.StatusOK, body)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.ToInput())
	if err != nil {
		return fail(err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return fail(err, "failed to get task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return fail(err, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req.ToInput())
	if err != nil {
		return fail(err, "failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return fail(err, "failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateSubtasks(c echo.Context) error {
	var req dto.CreateSubtasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateSubtasksRequest(&req); err != nil {
		return err
	}

	tasks, err := h.taskService.CreateSubtasks(c.Request().Context(), c.Param("id"), req.Subtasks)
	if err != nil {
		return fail(err, "failed to create subtasks")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// Board returns the status columns, nested by parent when ?nested=true.
func (h *Handler) Board(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return fail(err, "failed to list tasks")
	}

	if nested, _ := strconv.ParseBool(c.QueryParam("nested")); nested {
		return c.JSON(http.StatusOK, board.GroupWithSubtasks(tasks))
	}
	return c.JSON(http.StatusOK, board.GroupByStatus(tasks))
}

func (h *Handler) Context(c echo.Context) error {
	rc, err := h.registry.ReadableContext(c.Request().Context())
	if err != nil {
		return fail(err, "failed to build context")
	}

	return c.JSON(http.StatusOK, rc)
}

func (h *Handler) ListTools(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"instructions": tools.Instructions,
		"suggestions":  tools.Suggestions,
		"tools":        h.registry.Tools(),
	})
}

// CallTool runs a tool with the request body as its arguments. Tool
// failures are reported in the body with is_error set, not as HTTP errors.
func (h *Handler) CallTool(c echo.Context) error {
	name := c.Param("name")
	if _, ok := h.registry.Get(name); !ok {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrUnknownTool.Message+": "+name)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	result := h.registry.Call(c.Request().Context(), tools.Call{Name: name, Input: body})
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Notifications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": h.recorder.Recent(limit),
	})
}

func (h *Handler) Seed(c echo.Context) error {
	tasks, err := h.taskService.Seed(c.Request().Context())
	if err != nil {
		return fail(err, "failed to seed tasks")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"count":     len(tasks),
		"tasks":     tasks,
		"seeded_at": time.Now().UTC(),
	})
}
