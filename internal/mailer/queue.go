package mailer

import (
	"context"
	"errors"
	"sync"

	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

var (
	ErrQueueFull   = errors.New("mail queue full")
	ErrQueueClosed = errors.New("mail queue closed")
)

// Result is reported once per dequeued message.
type Result struct {
	Message Message
	Err     error
}

// Queue delivers messages in the background with a fixed number of workers.
// Delivery is best effort: failures are logged, counted and reported to the
// result hook, never retried.
type Queue struct {
	relay    Relay
	jobs     chan Message
	onResult func(Result)
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts workers goroutines draining a buffer of size messages.
// onResult may be nil.
func NewQueue(relay Relay, size, workers int, onResult func(Result)) *Queue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		relay:    relay,
		jobs:     make(chan Message, size),
		onResult: onResult,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue schedules m without blocking.
func (q *Queue) Enqueue(m Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.MailQueueDropped.Inc()
		return ErrQueueClosed
	}
	select {
	case q.jobs <- m:
		return nil
	default:
		metrics.MailQueueDropped.Inc()
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for queued ones to be delivered,
// or for ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for m := range q.jobs {
		err := Deliver(context.Background(), q.relay, m)
		if err != nil {
			logger.Errorf("failed to send %s email %q: %v", m.Kind, m.Subject, err)
		}
		if q.onResult != nil {
			q.onResult(Result{Message: m, Err: err})
		}
	}
}
