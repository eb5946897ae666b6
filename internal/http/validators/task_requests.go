package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "task-board-system.com/task-board-system/internal/data_models"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	return nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.ToInput().IsEmpty() {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one field must be provided")
	}
	return nil
}

func ValidateCreateSubtasksRequest(r *dto.CreateSubtasksRequest) error {
	if len(r.Subtasks) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one subtask is required")
	}
	for _, st := range r.Subtasks {
		if strings.TrimSpace(st.Title) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "every subtask needs a title")
		}
	}
	return nil
}
