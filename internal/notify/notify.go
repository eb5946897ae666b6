package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a short user-facing message about a tool outcome.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Tool    string    `json:"tool,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier delivers notifications. Delivery is best effort and never
// reports back to the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(context.Context, Notification) {}

type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	log.Printf("[notify] %s %s: %s", n.Level, n.Tool, n.Message)
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, target := range m {
		target.Notify(ctx, n)
	}
}

// Recorder keeps the most recent notifications in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 100
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if over := len(r.items) - r.limit; over > 0 {
		r.items = append([]Notification(nil), r.items[over:]...)
	}
}

// Recent returns up to n notifications, newest first.
func (r *Recorder) Recent(n int) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.items) {
		n = len(r.items)
	}
	out := make([]Notification, 0, n)
	for i := len(r.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.items[i])
	}
	return out
}
