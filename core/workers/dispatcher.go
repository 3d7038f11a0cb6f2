// ABOUTME: Dispatcher runs best-effort remote calls on a managed worker pool
// ABOUTME: Tasks are fire-and-forget: failures are logged, never retried and never rolled back

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mowakeb-api/core/interfaces"
)

// TaskFunc is a unit of remote work
type TaskFunc func(ctx context.Context) error

// Task is a submitted unit of work. Callers that must observe the outcome
// wait on it; everyone else drops it.
type Task struct {
	name string
	fn   TaskFunc
	done chan struct{}
	err  error
}

// Name returns the task name given at submission
func (t *Task) Name() string {
	return t.name
}

// Done is closed once the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Dispatcher manages background workers for remote calls
type Dispatcher struct {
	logger      interfaces.Logger
	queue       chan *Task
	maxWorkers  int
	taskTimeout time.Duration
	submitWait  time.Duration
	wg          sync.WaitGroup
	pending     sync.WaitGroup
	mu          sync.Mutex
	running     bool
}

// DispatcherConfig holds configuration for the dispatcher
type DispatcherConfig struct {
	MaxWorkers  int
	QueueSize   int
	TaskTimeout time.Duration
	SubmitWait  time.Duration
}

// DefaultDispatcherConfig returns the default dispatcher configuration
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		MaxWorkers:  4,
		QueueSize:   100,
		TaskTimeout: 15 * time.Second,
		SubmitWait:  5 * time.Second,
	}
}

// NewDispatcher creates a dispatcher. Call Start before submitting.
func NewDispatcher(logger interfaces.Logger, config DispatcherConfig) *Dispatcher {
	def := DefaultDispatcherConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = def.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = def.QueueSize
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = def.TaskTimeout
	}
	if config.SubmitWait <= 0 {
		config.SubmitWait = def.SubmitWait
	}

	return &Dispatcher{
		logger:      logger,
		queue:       make(chan *Task, config.QueueSize),
		maxWorkers:  config.MaxWorkers,
		taskTimeout: config.TaskTimeout,
		submitWait:  config.SubmitWait,
	}
}

// Start starts the worker goroutines
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}

	for i := 0; i < d.maxWorkers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	d.running = true
}

// Stop lets queued tasks finish, then stops the workers
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Submit queues fn under name and returns immediately. A task that cannot be
// queued finishes with ErrWorkerNotRunning or ErrQueueFull; either way the
// failure is logged like any other task failure.
func (d *Dispatcher) Submit(name string, fn TaskFunc) *Task {
	task := &Task{name: name, fn: fn, done: make(chan struct{})}

	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		d.fail(task, ErrWorkerNotRunning)
		return task
	}
	d.pending.Add(1)

	select {
	case d.queue <- task:
		d.mu.Unlock()
		return task
	default:
	}
	d.mu.Unlock()

	// Queue is full: wait a bounded time for room without holding the lock
	timer := time.NewTimer(d.submitWait)
	defer timer.Stop()
	for {
		d.mu.Lock()
		if !d.running {
			d.mu.Unlock()
			d.pending.Done()
			d.fail(task, ErrWorkerNotRunning)
			return task
		}
		select {
		case d.queue <- task:
			d.mu.Unlock()
			return task
		default:
		}
		d.mu.Unlock()

		select {
		case <-timer.C:
			d.pending.Done()
			d.fail(task, ErrQueueFull)
			return task
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Drain waits until every queued task has finished or ctx is done
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main loop for each worker
func (d *Dispatcher) run() {
	defer d.wg.Done()

	for task := range d.queue {
		d.process(task)
	}
}

// process runs one task with a detached, bounded context
func (d *Dispatcher) process(task *Task) {
	defer d.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	err := d.call(ctx, task)
	if err != nil {
		d.fail(task, err)
		return
	}

	task.finish(nil)
	if d.logger != nil {
		d.logger.Debug("Remote task completed", map[string]interface{}{
			"task": task.name,
		})
	}
}

// call runs the task function, turning a panic into an error so the worker
// survives and waiters are released
func (d *Dispatcher) call(ctx context.Context, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task.fn(ctx)
}

func (d *Dispatcher) fail(task *Task, err error) {
	task.finish(err)
	if d.logger != nil {
		d.logger.Error("Remote task failed", map[string]interface{}{
			"task":  task.name,
			"error": err.Error(),
		})
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "dispatcher is not running"}
	ErrQueueFull        = &WorkerError{Message: "task queue is full"}
)

// WorkerError represents a dispatcher-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
