// Package board derives the read views of the task list: status columns,
// parent/subtask nesting, summary counts and the trimmed context handed to
// the assistant. Everything here is a pure function of a task snapshot.
package board

import (
	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

// Columns holds the flat status partition of a snapshot.
type Columns struct {
	Todo       []model.Task `json:"todo"`
	InProgress []model.Task `json:"in_progress"`
	Done       []model.Task `json:"done"`
}

// Column returns the tasks under status s.
func (c Columns) Column(s constants.TaskStatus) []model.Task {
	switch s {
	case constants.StatusTodo:
		return c.Todo
	case constants.StatusInProgress:
		return c.InProgress
	case constants.StatusDone:
		return c.Done
	}
	return nil
}

// GroupByStatus partitions tasks by status, keeping snapshot order inside
// each column. Tasks with an unknown status are left out.
func GroupByStatus(tasks []model.Task) Columns {
	c := Columns{
		Todo:       []model.Task{},
		InProgress: []model.Task{},
		Done:       []model.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case constants.StatusTodo:
			c.Todo = append(c.Todo, t)
		case constants.StatusInProgress:
			c.InProgress = append(c.InProgress, t)
		case constants.StatusDone:
			c.Done = append(c.Done, t)
		}
	}
	return c
}

type GroupedTask struct {
	model.Task
	Subtasks []model.Task `json:"subtasks,omitempty"`
}

// Nested is the parent/subtask view of the board.
type Nested struct {
	Todo       []GroupedTask `json:"todo"`
	InProgress []GroupedTask `json:"in_progress"`
	Done       []GroupedTask `json:"done"`
}

func (n Nested) Column(s constants.TaskStatus) []GroupedTask {
	switch s {
	case constants.StatusTodo:
		return n.Todo
	case constants.StatusInProgress:
		return n.InProgress
	case constants.StatusDone:
		return n.Done
	}
	return nil
}

// GroupWithSubtasks places every top-level task in its status column with
// its subtasks attached, whatever their status. Subtasks whose parent is not
// in the snapshot appear nowhere.
func GroupWithSubtasks(tasks []model.Task) Nested {
	children := make(map[string][]model.Task)
	for _, t := range tasks {
		if t.IsSubtask() {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		}
	}

	n := Nested{
		Todo:       []GroupedTask{},
		InProgress: []GroupedTask{},
		Done:       []GroupedTask{},
	}
	for _, t := range tasks {
		if t.IsSubtask() {
			continue
		}
		g := GroupedTask{Task: t, Subtasks: children[t.ID]}
		switch t.Status {
		case constants.StatusTodo:
			n.Todo = append(n.Todo, g)
		case constants.StatusInProgress:
			n.InProgress = append(n.InProgress, g)
		case constants.StatusDone:
			n.Done = append(n.Done, g)
		}
	}
	return n
}

// Subtasks returns the direct subtasks of parentID in snapshot order.
func Subtasks(tasks []model.Task, parentID string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out
}

// FindByID looks a task up in a snapshot.
func FindByID(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
