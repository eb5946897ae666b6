package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "task-board-system.com/task-board-system/internal/errors"
	model "task-board-system.com/task-board-system/internal/models"
	"task-board-system.com/task-board-system/internal/notify"
)

// Parameter types understood by the tool transports.
const (
	TypeString   = "string"
	TypeSubtasks = "subtasks"
)

type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"parameters"`

	handler func(ctx context.Context, inv *invocation) Result
}

// Call is one tool invocation as received from a transport.
type Call struct {
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// Result is the text handed back to the assistant. IsError marks a call
// that changed nothing and needs the assistant to act on the message.
type Result struct {
	Tool    string `json:"tool"`
	Content string `json:"result"`
	IsError bool   `json:"is_error"`
}

// TaskClient is the slice of the task service the tools drive.
type TaskClient interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.CreateTaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, in model.UpdateTaskInput) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	CreateSubtasks(ctx context.Context, parentID string, items []model.SubtaskInput) ([]model.Task, error)
}

// Registry owns the assistant-facing tools. Each call sees one snapshot of
// the task list, issues at most one write and reports a notification.
type Registry struct {
	tasks    TaskClient
	notifier notify.Notifier
	now      func() time.Time

	tools  []Tool
	byName map[string]int
}

func NewRegistry(tasks TaskClient, notifier notify.Notifier) *Registry {
	if notifier == nil {
		notifier = notify.Discard
	}
	r := &Registry{
		tasks:    tasks,
		notifier: notifier,
		now:      time.Now,
		byName:   make(map[string]int),
	}

	r.register(findTaskTool())
	r.register(createTaskTool())
	r.register(updateTaskTool())
	r.register(markTaskCompleteTool())
	r.register(deleteTaskTool())
	r.register(breakdownTaskTool())

	return r
}

// WithClock replaces the time source used for notifications and the
// overdue count.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) register(t Tool) {
	r.byName[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Tools lists the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

func (r *Registry) Get(name string) (Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Call reads a fresh snapshot and runs the named tool against it.
func (r *Registry) Call(ctx context.Context, call Call) Result {
	tool, ok := r.Get(call.Name)
	if !ok {
		return r.unknown(call.Name)
	}

	snapshot, err := r.tasks.ListTasks(ctx)
	if err != nil {
		log.Printf("[tools] %s: failed to list tasks: %v", call.Name, err)
		r.notify(ctx, call.Name, notify.LevelError, "Failed to load tasks")
		return Result{
			Tool:    call.Name,
			Content: "Failed to load the current tasks. Please try again.",
			IsError: true,
		}
	}

	return r.run(ctx, tool, call.Input, snapshot)
}

// CallWithSnapshot runs the named tool against a snapshot the caller has
// already read.
func (r *Registry) CallWithSnapshot(ctx context.Context, call Call, snapshot []model.Task) Result {
	tool, ok := r.Get(call.Name)
	if !ok {
		return r.unknown(call.Name)
	}
	return r.run(ctx, tool, call.Input, snapshot)
}

func (r *Registry) run(ctx context.Context, tool Tool, input json.RawMessage, snapshot []model.Task) Result {
	inv := &invocation{tool: tool.Name, snapshot: snapshot, registry: r}

	a, err := parseArgs(input)
	if err != nil {
		return inv.fail(ctx, "Invalid arguments", "The arguments must be a JSON object of named parameters.")
	}
	inv.args = a

	return tool.handler(ctx, inv)
}

func (r *Registry) unknown(name string) Result {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name)
	}
	return Result{
		Tool:    name,
		Content: fmt.Sprintf("Unknown tool %q. Available tools: %s.", name, strings.Join(names, ", ")),
		IsError: true,
	}
}

func (r *Registry) notify(ctx context.Context, tool string, level notify.Level, message string) {
	r.notifier.Notify(ctx, notify.Notification{
		Level:   level,
		Message: message,
		Tool:    tool,
		At:      r.now().UTC(),
	})
}

// invocation carries one call's arguments and snapshot through a handler.
type invocation struct {
	tool     string
	args     args
	snapshot []model.Task
	registry *Registry
}

func (inv *invocation) client() TaskClient {
	return inv.registry.tasks
}

func (inv *invocation) succeed(ctx context.Context, toast, text string) Result {
	inv.registry.notify(ctx, inv.tool, notify.LevelSuccess, toast)
	return Result{Tool: inv.tool, Content: text}
}

func (inv *invocation) inform(ctx context.Context, toast, text string) Result {
	inv.registry.notify(ctx, inv.tool, notify.LevelInfo, toast)
	return Result{Tool: inv.tool, Content: text}
}

func (inv *invocation) fail(ctx context.Context, toast, text string) Result {
	inv.registry.notify(ctx, inv.tool, notify.LevelError, toast)
	return Result{Tool: inv.tool, Content: text, IsError: true}
}

// failWith reports a client error. Backend detail stays in the log.
func (inv *invocation) failWith(ctx context.Context, action string, err error) Result {
	toast := "Failed to " + action
	if apperrors.KindOf(err) == apperrors.KindBackend {
		log.Printf("[tools] %s: failed to %s: %v", inv.tool, action, err)
		return inv.fail(ctx, toast, fmt.Sprintf("Failed to %s because the task store reported an error. Please try again.", action))
	}
	return inv.fail(ctx, toast, fmt.Sprintf("Could not %s: %s.", action, err.Error()))
}

// resolve turns the named argument into a task from the snapshot. On
// failure the returned Result carries the guidance for the assistant.
func (inv *invocation) resolve(ctx context.Context, name string) (model.Task, *Result) {
	identifier := inv.args.text(name)
	if identifier == "" {
		res := inv.fail(ctx, "Task id required", missingParam(name))
		return model.Task{}, &res
	}

	task, err := Resolve(inv.snapshot, identifier)
	if err != nil {
		var toast string
		if apperrors.KindOf(err) == apperrors.KindAmbiguous {
			toast = fmt.Sprintf("Multiple tasks match %q", identifier)
		} else {
			toast = fmt.Sprintf("No task matching %q", identifier)
		}
		res := inv.fail(ctx, toast, err.(*ResolveError).Guidance())
		return model.Task{}, &res
	}
	return task, nil
}

func missingParam(name string) string {
	if name == "id" {
		return `Missing required parameter "id". Call findTask first to look up the task's id.`
	}
	return fmt.Sprintf("Missing required parameter %q.", name)
}
