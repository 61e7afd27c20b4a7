package messaging

import (
	"context"
	"errors"
)

// ErrQueueFull reports a serial queue whose buffer has no room for another
// delivery. The broker logs the drop and keeps publishing to the remaining
// subscribers.
var ErrQueueFull = errors.New("serial queue is full")

// SerialQueue runs queued functions one at a time on whichever goroutine
// calls Run. It stands in for an application's main loop: handlers marshalled
// onto the same queue never run concurrently with each other, and always run
// off the publishing goroutine.
type SerialQueue struct {
	tasks chan func()
}

// NewSerialQueue builds a queue buffering up to size pending deliveries.
// A non-positive size falls back to 128.
func NewSerialQueue(size int) *SerialQueue {
	if size <= 0 {
		size = 128
	}
	return &SerialQueue{tasks: make(chan func(), size)}
}

// Do enqueues fn without blocking. It fails with ErrQueueFull when the buffer
// is exhausted.
func (q *SerialQueue) Do(fn func()) error {
	select {
	case q.tasks <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run executes queued functions until ctx is cancelled and returns ctx's
// error. Exactly one goroutine should run it at a time.
func (q *SerialQueue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-q.tasks:
			fn()
		}
	}
}
