// Package propagation retries post-write remote updates that failed their
// first synchronous attempt: stock decrements after order creation and
// order-status transitions after payment or shipment writes. The local write
// those updates follow is committed state and is never undone here; the
// queue only keeps trying to bring the remote side up to date, and drops a
// task with an error log once its attempts are exhausted.
package propagation

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

var ErrQueueClosed = errors.New("propagation: queue is closed")

const (
	defaultMaxAttempts = 5
	defaultBaseDelay   = 500 * time.Millisecond
	defaultTaskTimeout = 10 * time.Second
	queueCapacity      = 256
)

type task struct {
	name    string
	attempt int
	run     func(context.Context) error
}

// Queue is an in-process retry queue with a single dispatcher goroutine.
type Queue struct {
	queue       chan task
	maxAttempts int
	baseDelay   time.Duration
	taskTimeout time.Duration
	log         *zap.Logger
	metrics     *metrics.Propagation

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	timers    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

func WithBaseDelay(d time.Duration) Option {
	return func(q *Queue) { q.baseDelay = d }
}

func WithMetrics(m *metrics.Propagation) Option {
	return func(q *Queue) { q.metrics = m }
}

func New(logger *zap.Logger, opts ...Option) *Queue {
	q := &Queue{
		queue:       make(chan task, queueCapacity),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		taskTimeout: defaultTaskTimeout,
		log:         logger.With(zap.String("component", "propagation_queue")),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		bg, cancel := context.WithCancel(context.WithoutCancel(ctx))
		q.cancel = cancel
		go q.dispatchLoop(bg)
		q.log.Info("propagation_queue_started")
	})
}

func (q *Queue) Stop(ctx context.Context) {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()

		q.timers.Wait()
		if q.cancel != nil {
			q.cancel()
		}

		q.mu.Lock()
		close(q.queue)
		q.mu.Unlock()

		select {
		case <-q.done:
		case <-ctx.Done():
		}
		q.log.Info("propagation_queue_stopped")
	})
}

// Enqueue schedules fn for retry. The first retry runs after the base
// delay; subsequent ones back off exponentially.
func (q *Queue) Enqueue(ctx context.Context, name string, fn func(context.Context) error) error {
	return q.schedule(ctx, task{name: name, attempt: 1, run: fn})
}

// schedule does a non-blocking send under the mutex so it can never race
// with Stop closing the channel.
func (q *Queue) schedule(ctx context.Context, t task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.queue <- t:
		return nil
	default:
		return errors.New("propagation: queue is full")
	}
}

func (q *Queue) dispatchLoop(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-q.queue:
			if !ok {
				return
			}
			q.runTask(ctx, t)
		}
	}
}

func (q *Queue) runTask(ctx context.Context, t task) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("propagation_task_panic",
				zap.String("task", t.name),
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
		}
	}()

	// Wait out the backoff for this attempt before running.
	delay := q.backoff(t.attempt)
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, q.taskTimeout)
	err := t.run(runCtx)
	cancel()

	if err == nil {
		q.log.Info("propagation_task_succeeded",
			zap.String("task", t.name),
			zap.Int("attempt", t.attempt),
		)
		return
	}

	if q.metrics != nil {
		q.metrics.Retried.WithLabelValues(t.name).Inc()
	}

	if t.attempt >= q.maxAttempts {
		q.log.Error("propagation_task_dropped",
			zap.String("task", t.name),
			zap.Int("attempts", t.attempt),
			zap.Error(err),
		)
		if q.metrics != nil {
			q.metrics.Dropped.WithLabelValues(t.name).Inc()
		}
		return
	}

	q.log.Warn("propagation_task_retry",
		zap.String("task", t.name),
		zap.Int("attempt", t.attempt),
		zap.Error(err),
	)

	next := task{name: t.name, attempt: t.attempt + 1, run: t.run}
	q.timers.Add(1)
	go func() {
		defer q.timers.Done()
		if scheduleErr := q.schedule(ctx, next); scheduleErr != nil {
			q.log.Error("propagation_task_requeue_failed",
				zap.String("task", t.name),
				zap.Error(scheduleErr),
			)
		}
	}()
}

func (q *Queue) backoff(attempt int) time.Duration {
	delay := q.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}
