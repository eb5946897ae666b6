package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"task-board-system.com/task-board-system/internal/constants"
	model "task-board-system.com/task-board-system/internal/models"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// TaskDetail renders a task and its subtasks as terminal markdown. It falls
// back to the raw markdown when no renderer can be built.
func TaskDetail(t model.Task, subtasks []model.Task, width int) string {
	source := Markdown(t, subtasks)

	if width < 1 {
		width = 80
	}
	renderer := markdownRenderer(width)
	if renderer == nil {
		return source
	}
	out, err := renderer.Render(source)
	if err != nil {
		return source
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// Markdown is the document TaskDetail renders.
func Markdown(t model.Task, subtasks []model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "- **id:** %s\n", t.ID)
	fmt.Fprintf(&b, "- **status:** %s\n", t.Status.Label())
	fmt.Fprintf(&b, "- **priority:** %s\n", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "- **due:** %s\n", *t.DueDate)
	}
	if t.IsSubtask() {
		fmt.Fprintf(&b, "- **parent:** %s\n", *t.ParentID)
	}
	fmt.Fprintf(&b, "- **created:** %s\n", t.CreatedAt.UTC().Format("2006-01-02 15:04"))

	if t.Description != nil && *t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *t.Description)
	}

	if len(subtasks) > 0 {
		b.WriteString("\n## Subtasks\n\n")
		for _, s := range subtasks {
			mark := " "
			if s.Status == constants.StatusDone {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", mark, s.Title, s.ID)
		}
	}
	return b.String()
}

func markdownRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
