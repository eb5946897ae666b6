package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Dispatcher hands notifications to a bounded queue drained by a fixed set
// of workers, so slow sinks never hold up a tool call. When the queue is
// full the notification is dropped.
type Dispatcher struct {
	queue   chan Notification
	wg      sync.WaitGroup
	next    Notifier
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(next Notifier, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		queue:   make(chan Notification, queueSize),
		next:    next,
		timeout: 5 * time.Second,
	}

	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

func (d *Dispatcher) Notify(_ context.Context, n Notification) {
	d.Enqueue(n)
}

// Enqueue reports whether n was accepted.
func (d *Dispatcher) Enqueue(n Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		log.Printf("[notify] queue full, dropping %q", n.Message)
		return false
	}
}

func (d *Dispatcher) worker(workerID int) {
	defer d.wg.Done()

	for n := range d.queue {
		d.deliver(n)
	}

	log.Printf("[notify] worker %d stopped", workerID)
}

func (d *Dispatcher) deliver(n Notification) {
	// the caller's context is gone by now
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	d.next.Notify(ctx, n)
}

// Shutdown stops accepting notifications and waits for the queue to drain
// or ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[notify] dispatcher shut down cleanly")
	case <-ctx.Done():
		log.Println("[notify] dispatcher shutdown timed out")
	}
}
