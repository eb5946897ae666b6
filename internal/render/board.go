// Package render draws tasks for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"task-board-system.com/task-board-system/internal/board"
	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	columnStyle  = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

const minColumnWidth = 20

// Board lays the three columns side by side within width terminal cells.
func Board(nested board.Nested, width int, today time.Time) string {
	inner := width/len(constants.StatusOrder) - columnStyle.GetHorizontalFrameSize()
	if inner < minColumnWidth {
		inner = minColumnWidth
	}

	columns := make([]string, 0, len(constants.StatusOrder))
	for _, status := range constants.StatusOrder {
		tasks := nested.Column(status)

		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))))
		if len(tasks) == 0 {
			b.WriteString("\n" + mutedStyle.Render("no tasks"))
		}
		for _, g := range tasks {
			b.WriteString("\n" + card(g.Task, today))
			for _, sub := range g.Subtasks {
				b.WriteString("\n  " + mutedStyle.Render("- ") + sub.Title)
			}
		}

		columns = append(columns, columnStyle.Width(inner).Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func card(t model.Task, today time.Time) string {
	priority := string(t.Priority)
	if t.Priority == constants.PriorityHigh || t.Priority == constants.PriorityUrgent {
		priority = urgentStyle.Render(priority)
	}

	line := fmt.Sprintf("%s [%s]", t.Title, priority)
	if t.DueDate != nil {
		due := "due " + *t.DueDate
		if board.IsOverdue(t, today) {
			due = overdueStyle.Render("overdue " + *t.DueDate)
		}
		line += "\n  " + due
	}
	return line + "\n  " + mutedStyle.Render(t.ID)
}
