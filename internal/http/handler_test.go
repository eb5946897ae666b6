package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-board-system.com/task-board-system/internal/auth"
	"task-board-system.com/task-board-system/internal/board"
	model "task-board-system.com/task-board-system/internal/models"
	"task-board-system.com/task-board-system/internal/notify"
	repository "task-board-system.com/task-board-system/internal/repositories"
	"task-board-system.com/task-board-system/internal/services"
	"task-board-system.com/task-board-system/internal/tools"
)

func newServer(t *testing.T, opts Options) *echo.Echo {
	repo, err := repository.NewMemoryTaskRepository(nil)
	require.NoError(t, err)

	service := services.NewTaskService(repo)
	recorder := notify.NewRecorder(10)
	registry := tools.NewRegistry(service, recorder)

	e := echo.New()
	Register(e, NewHandler(service, registry, recorder, "memory"), opts)
	return e
}

func do(e *echo.Echo, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestTaskLifecycle(t *testing.T) {
	e := newServer(t, Options{})

	rec := do(e, http.MethodPost, "/tasks", `{"title":"Ship release","priority":"high","due_date":"2025-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Task](t, rec)
	assert.Equal(t, "todo", string(created.Status))

	rec = do(e, http.MethodGet, "/tasks/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, "/tasks/"+created.ID, `{"status":"done","due_date":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Task](t, rec)
	assert.Equal(t, "done", string(updated.Status))
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "Ship release", updated.Title)

	rec = do(e, http.MethodGet, "/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cols := decode[board.Columns](t, rec)
	assert.Empty(t, cols.Todo)
	assert.Len(t, cols.Done, 1)

	rec = do(e, http.MethodDelete, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTask_Validation(t *testing.T) {
	e := newServer(t, Options{})

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tasks", `{"title":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tasks", `{"title":"x","status":"blocked"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tasks", `{"title":`).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/tasks", `{"title":"x","parent_id":"nope"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPatch, "/tasks/whatever", `{}`).Code)
}

func TestSubtasksAndNestedBoard(t *testing.T) {
	e := newServer(t, Options{})

	parent := decode[model.Task](t, do(e, http.MethodPost, "/tasks", `{"title":"Launch"}`))

	rec := do(e, http.MethodPost, "/tasks/"+parent.ID+"/subtasks", `{"subtasks":[{"title":"a"},{"title":"b","description":"x"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/board?nested=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	nested := decode[board.Nested](t, rec)
	require.Len(t, nested.Todo, 1)
	assert.Len(t, nested.Todo[0].Subtasks, 2)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tasks/"+parent.ID+"/subtasks", `{"subtasks":[]}`).Code)
}

func TestToolsEndpoints(t *testing.T) {
	e := newServer(t, Options{})

	rec := do(e, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[struct {
		Instructions string       `json:"instructions"`
		Tools        []tools.Tool `json:"tools"`
	}](t, rec)
	assert.Len(t, listing.Tools, 6)
	assert.Contains(t, listing.Instructions, "findTask")

	rec = do(e, http.MethodPost, "/tools/createTask", `{"title":"Water plants","priority":"Urgent"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[tools.Result](t, rec)
	assert.False(t, res.IsError, res.Content)

	rec = do(e, http.MethodPost, "/tools/findTask", `{"query":"nothing"}`)
	res = decode[tools.Result](t, rec)
	assert.True(t, res.IsError)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/tools/dropTable", `{}`).Code)

	rec = do(e, http.MethodGet, "/notifications?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode[struct {
		Notifications []notify.Notification `json:"notifications"`
	}](t, rec)
	require.Len(t, notes.Notifications, 2)
	assert.Equal(t, notify.LevelError, notes.Notifications[0].Level)
	assert.Equal(t, notify.LevelSuccess, notes.Notifications[1].Level)

	rec = do(e, http.MethodGet, "/context", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rc := decode[tools.ReadableContext](t, rec)
	assert.Equal(t, 1, rc.Stats.Total)
	assert.Equal(t, 1, rc.Stats.HighPriority)
}

func TestSeed(t *testing.T) {
	e := newServer(t, Options{})

	rec := do(e, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	list := decode[struct {
		Count int `json:"count"`
	}](t, do(e, http.MethodGet, "/tasks", ""))
	assert.Equal(t, 3, list.Count)
}

func TestBearerAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "taskboard")
	e := newServer(t, Options{Tokens: tokens})

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/tasks", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/tasks", "", echo.HeaderAuthorization, "Bearer junk").Code)

	token, err := tokens.Generate("tester", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/tasks", "", echo.HeaderAuthorization, "Bearer "+token).Code)
}

func TestRateLimiter(t *testing.T) {
	e := newServer(t, Options{RateLimitPerMinute: 2})

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)

	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

type fixedCacheStats struct{ hits, misses int64 }

func (f fixedCacheStats) Stats() (int64, int64) { return f.hits, f.misses }

func TestHealth_CacheStats(t *testing.T) {
	repo, err := repository.NewMemoryTaskRepository(nil)
	require.NoError(t, err)
	service := services.NewTaskService(repo)
	recorder := notify.NewRecorder(10)

	plain := echo.New()
	Register(plain, NewHandler(service, tools.NewRegistry(service, recorder), recorder, "memory"), Options{})
	var body map[string]any
	require.NoError(t, json.Unmarshal(do(plain, http.MethodGet, "/health", "").Body.Bytes(), &body))
	assert.NotContains(t, body, "cache")

	cached := echo.New()
	h := NewHandler(service, tools.NewRegistry(service, recorder), recorder, "sqlite").
		WithCacheStats(fixedCacheStats{hits: 7, misses: 2})
	Register(cached, h, Options{})

	rec := do(cached, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sqlite", body["store"])
	assert.Equal(t, map[string]any{"hits": float64(7), "misses": float64(2)}, body["cache"])
}
