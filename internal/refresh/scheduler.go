package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultTimeout bounds a single task run when the task sets no timeout.
const defaultTimeout = 10 * time.Second

// Task is one unit of periodic work, typically "load a panel's series and
// evaluate it".
type Task[T any] struct {
	// Name identifies the task. Names must be unique within a scheduler.
	Name string

	// Interval is the task's refresh interval.
	// If 0, the scheduler's global interval is used.
	Interval time.Duration

	// Timeout bounds a single run via context cancellation.
	// If 0, defaultTimeout is used.
	Timeout time.Duration

	// Run performs the work. It is called within a panic recovery boundary.
	Run func(ctx context.Context) (T, error)
}

// Result holds the outcome of one task run.
type Result[T any] struct {
	// Name is the name of the task that produced the result.
	Name string

	// Value is what Run returned. It is the zero value if Run panicked.
	Value T

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long Run took.
	Duration time.Duration

	// Error is the error returned by Run, or a panic converted to an error
	// carrying a correlation ID.
	Error error
}

// Scheduler runs tasks periodically on a bounded worker pool.
//
// The scheduler runs every task immediately on start, then ticks at the GCD
// of all task intervals and runs only the tasks that are due. Results are
// emitted on the channel returned by [Scheduler.Results].
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler[T any] struct {
	tasks          []Task[T]
	interval       time.Duration // global default interval
	maxConcurrency int
	results        chan Result[T]
	logger         *slog.Logger
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once

	lastRunAt    map[string]time.Time
	baseInterval time.Duration
}

// NewScheduler creates a new [Scheduler].
//
// Parameters:
//   - tasks: tasks to run
//   - interval: default time between runs of a task
//   - maxConcurrency: maximum number of tasks running at once
//   - logger: logger for scheduler events (panic recovery, etc.)
//
// The scheduler must be started with [Scheduler.Start] and stopped with
// [Scheduler.Stop].
func NewScheduler[T any](tasks []Task[T], interval time.Duration, maxConcurrency int, logger *slog.Logger) *Scheduler[T] {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Scheduler[T]{
		tasks:          tasks,
		interval:       interval,
		maxConcurrency: maxConcurrency,
		results:        make(chan Result[T], len(tasks)),
		logger:         logger,
	}
}

// Results returns a receive-only channel that emits [Result] values.
//
// The channel is closed when the scheduler stops.
func (s *Scheduler[T]) Results() <-chan Result[T] {
	return s.results
}

// calculateBaseInterval returns the GCD of all task intervals, floored at
// one second.
func (s *Scheduler[T]) calculateBaseInterval() time.Duration {
	if len(s.tasks) == 0 {
		return s.interval
	}

	result := s.intervalOf(s.tasks[0])
	for _, t := range s.tasks[1:] {
		result = gcdDuration(result, s.intervalOf(t))
	}

	// floor at 1 second to prevent CPU thrashing
	if result < time.Second {
		result = time.Second
	}
	return result
}

func (s *Scheduler[T]) intervalOf(t Task[T]) time.Duration {
	if t.Interval > 0 {
		return t.Interval
	}
	return s.interval
}

// gcdDuration calculates the greatest common divisor of two durations.
func gcdDuration(a, b time.Duration) time.Duration {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Start begins the refresh loop in a background goroutine.
//
// Start is non-blocking and idempotent. If Stop was called before Start,
// Start is a no-op. A nil ctx is treated as context.Background().
func (s *Scheduler[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.lastRunAt = make(map[string]time.Time, len(s.tasks))
	s.baseInterval = s.calculateBaseInterval()

	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.closeOnce.Do(func() { close(s.results) })

		s.runDueTasks(runCtx, true)

		ticker := time.NewTicker(s.baseInterval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				s.runDueTasks(runCtx, false)
			}
		}
	}()
}

// Stop halts the scheduler and waits for in-flight tasks to finish. The
// results channel is closed afterwards.
//
// Stop is idempotent and safe to call before Start.
func (s *Scheduler[T]) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	// ensure channel is closed even if Start() was never called
	s.closeOnce.Do(func() { close(s.results) })
}

// runDueTasks runs the tasks whose interval has elapsed. If immediate is
// true every task runs.
//
// lastRunAt is updated when a run STARTS, so a slow task's effective
// interval is its configured interval plus its run time.
func (s *Scheduler[T]) runDueTasks(ctx context.Context, immediate bool) {
	now := time.Now()
	due := make([]Task[T], 0, len(s.tasks))

	s.mu.Lock()
	for _, t := range s.tasks {
		last, seen := s.lastRunAt[t.Name]
		if immediate || !seen || now.Sub(last) >= s.intervalOf(t) {
			due = append(due, t)
			s.lastRunAt[t.Name] = now
		}
	}
	s.mu.Unlock()

	if len(due) == 0 {
		return
	}
	s.runTasks(ctx, due)
}

// runTasks runs a batch of tasks concurrently, respecting maxConcurrency.
func (s *Scheduler[T]) runTasks(ctx context.Context, tasks []Task[T]) {
	jobs := make(chan Task[T], len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < s.maxConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				result := s.runTask(ctx, t)
				select {
				case s.results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	for _, t := range tasks {
		select {
		case jobs <- t:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)

	wg.Wait()
}

// runTask runs a single task with its timeout.
func (s *Scheduler[T]) runTask(ctx context.Context, t Task[T]) Result[T] {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	value, err := s.safeRun(ctx, t)

	return Result[T]{
		Name:      t.Name,
		Value:     value,
		StartedAt: start,
		Duration:  time.Since(start),
		Error:     err,
	}
}

// safeRun calls the task with panic recovery. A panic is logged with its
// stack trace under a correlation ID and returned as an error carrying the
// same ID.
func (s *Scheduler[T]) safeRun(ctx context.Context, t Task[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()

			s.logger.Error("refresh task panic",
				"correlation_id", correlationID,
				"task", t.Name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)

			var zero T
			value = zero
			err = fmt.Errorf("refresh panic (correlation_id: %s)", correlationID)
		}
	}()
	return t.Run(ctx)
}
