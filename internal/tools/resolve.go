package tools

import (
	"fmt"
	"strings"

	"task-board-system.com/task-board-system/internal/board"
	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
)

const sampleSize = 5

// ResolveError explains why an identifier did not name exactly one task.
type ResolveError struct {
	Identifier string
	// Matches holds the competing tasks of an ambiguous identifier.
	Matches []model.Task
	// Samples holds a few existing tasks when nothing matched.
	Samples []model.Task

	err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %q", e.err.Error(), e.Identifier)
}

func (e *ResolveError) Unwrap() error {
	return e.err
}

// Guidance is the message that tells the assistant how to recover.
func (e *ResolveError) Guidance() string {
	var b strings.Builder

	if len(e.Matches) > 0 {
		fmt.Fprintf(&b, "%q matches %d tasks:\n", e.Identifier, len(e.Matches))
		writeList(&b, e.Matches)
		b.WriteString("Ask the user which one they mean, then call again with that task's exact id.")
		return b.String()
	}

	fmt.Fprintf(&b, "No task matches %q.", e.Identifier)
	if len(e.Samples) == 0 {
		b.WriteString(" The board has no tasks yet.")
		return b.String()
	}
	b.WriteString(" Some existing tasks:\n")
	writeList(&b, e.Samples)
	b.WriteString("Use findTask with a different search term, or ask the user which task they mean.")
	return b.String()
}

// Resolve maps an identifier to exactly one task of the snapshot. An exact
// id wins; otherwise the identifier is matched case-insensitively as a
// substring of task titles.
func Resolve(tasks []model.Task, identifier string) (model.Task, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier != "" {
		if t, ok := board.FindByID(tasks, identifier); ok {
			return t, nil
		}
	}

	matches := MatchTitle(tasks, identifier)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		samples := tasks
		if len(samples) > sampleSize {
			samples = samples[:sampleSize]
		}
		return model.Task{}, &ResolveError{Identifier: identifier, Samples: samples, err: apperrors.ErrTaskNotFound}
	}
	return model.Task{}, &ResolveError{Identifier: identifier, Matches: matches, err: apperrors.ErrAmbiguousTask}
}

// MatchTitle returns the tasks whose title contains term, ignoring case.
// A blank term matches nothing.
func MatchTitle(tasks []model.Task, term string) []model.Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), term) {
			out = append(out, t)
		}
	}
	return out
}

func describe(t model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q (id: %s, status: %s, priority: %s", t.Title, t.ID, t.Status, t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, ", due: %s", *t.DueDate)
	}
	if t.IsSubtask() {
		fmt.Fprintf(&b, ", subtask of %s", *t.ParentID)
	}
	b.WriteString(")")
	return b.String()
}

func writeList(b *strings.Builder, tasks []model.Task) {
	for _, t := range tasks {
		b.WriteString("- ")
		b.WriteString(describe(t))
		b.WriteString("\n")
	}
}
