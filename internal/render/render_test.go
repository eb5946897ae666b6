package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"task-board-system.com/task-board-system/internal/board"
	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "a", Title: "Plan", Status: constants.StatusTodo, Priority: constants.PriorityHigh, DueDate: model.StringPtr("2025-03-01")},
		{ID: "b", Title: "Draft", Status: constants.StatusTodo, Priority: constants.PriorityLow, ParentID: model.StringPtr("a")},
		{ID: "c", Title: "Build", Status: constants.StatusInProgress, Priority: constants.PriorityMedium},
	}
}

func TestBoard_ShowsEveryColumn(t *testing.T) {
	out := Board(board.GroupWithSubtasks(sampleTasks()), 120, today)

	for _, status := range constants.StatusOrder {
		assert.Contains(t, out, status.Label())
	}
	assert.Contains(t, out, "Plan")
	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "overdue 2025-03-01")
	assert.Contains(t, out, "no tasks")
}

func TestBoard_NarrowWidthKeepsMinimum(t *testing.T) {
	out := Board(board.Nested{}, 10, today)
	lines := strings.Split(out, "\n")
	assert.GreaterOrEqual(t, len([]rune(lines[0])), 3*minColumnWidth)
}

func TestMarkdown(t *testing.T) {
	tasks := sampleTasks()
	md := Markdown(tasks[0], tasks[1:2])

	assert.True(t, strings.HasPrefix(md, "# Plan\n"))
	assert.Contains(t, md, "- **id:** a\n")
	assert.Contains(t, md, "- **due:** 2025-03-01\n")
	assert.Contains(t, md, "## Subtasks")
	assert.Contains(t, md, "- [ ] Draft (b)")
	assert.NotContains(t, md, "parent")
}

func TestTaskDetail(t *testing.T) {
	tasks := sampleTasks()
	out := TaskDetail(tasks[1], nil, 80)

	assert.Contains(t, out, "Draft")
	assert.Contains(t, out, "parent")
}
