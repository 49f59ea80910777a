package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Handler is one registered task body.
type Handler func(ctx context.Context, args map[string]any) error

type task struct {
	name string
	args map[string]any
}

// Dispatcher is the in-process task queue used by worker runtimes. Producers
// enqueue named tasks; a pool of workers drains the queue and invokes the
// registered handler. Handler failures are logged, never fatal.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	queue    chan task
	logger   *slog.Logger
}

func NewDispatcher(queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		queue:    make(chan task, queueSize),
		logger:   logger,
	}
}

func (d *Dispatcher) Register(name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = handler
}

func (d *Dispatcher) Enqueue(ctx context.Context, name string, args map[string]any) error {
	d.mu.RLock()
	_, known := d.handlers[name]
	d.mu.RUnlock()
	if !known {
		return fmt.Errorf("no handler registered for task %q", name)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case d.queue <- task{name: name, args: args}:
	}

	d.logger.Debug("task enqueued",
		"event", "task_enqueued",
		"module", "internal/platform/jobs",
		"layer", "platform",
		"task", name,
	)
	return nil
}

// Run drains the queue with the given number of workers until the context is
// cancelled.
func (d *Dispatcher) Run(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case item := <-d.queue:
					d.dispatch(ctx, item)
				}
			}
		})
	}
	return group.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, item task) {
	d.mu.RLock()
	handler := d.handlers[item.name]
	d.mu.RUnlock()
	if handler == nil {
		d.logger.Warn("dropping task without handler",
			"event", "task_dropped",
			"module", "internal/platform/jobs",
			"layer", "platform",
			"task", item.name,
		)
		return
	}

	if err := handler(ctx, item.args); err != nil {
		d.logger.Error("task handler failed",
			"event", "task_failed",
			"module", "internal/platform/jobs",
			"layer", "platform",
			"task", item.name,
			"error", err.Error(),
		)
		return
	}

	d.logger.Debug("task handled",
		"event", "task_handled",
		"module", "internal/platform/jobs",
		"layer", "platform",
		"task", item.name,
	)
}
