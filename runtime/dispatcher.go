// Package runtime wires the pipeline together: the interaction
// dispatcher and the supervised workers. It orchestrates the system
// without containing domain rules.
package runtime

import (
	"context"
	"log/slog"
)

// Dispatcher owns the single interaction goroutine. Workers hand it
// callbacks through Post; the loop executes them one at a time, in the
// order they were delivered. This is the only place presentation state
// may be mutated.
type Dispatcher struct {
	log   *slog.Logger
	queue chan func()
}

func NewDispatcher(log *slog.Logger, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Dispatcher{log: log, queue: make(chan func(), bufferSize)}
}

// Post schedules fn on the interaction goroutine and returns
// immediately. Callbacks posted from one goroutine keep their order.
// When the queue is saturated the callback is dropped rather than
// blocking the worker that posted it.
func (d *Dispatcher) Post(fn func()) {
	select {
	case d.queue <- fn:
	default:
		d.log.Warn("Dispatcher queue full, dropping callback")
	}
}

// Run consumes the queue until the context is canceled. Remaining
// callbacks are drained before returning so that notifications posted
// just before shutdown still reach the presentation layer.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-d.queue:
			d.invoke(fn)
		case <-ctx.Done():
			for {
				select {
				case fn := <-d.queue:
					d.invoke(fn)
				default:
					return ctx.Err()
				}
			}
		}
	}
}

// invoke shields the loop from a panicking callback: one bad sink must
// not kill the interaction goroutine.
func (d *Dispatcher) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Dispatcher callback panicked", "panic", r)
		}
	}()
	fn()
}

// QueueLoad reports the current queue usage for capacity telemetry.
func (d *Dispatcher) QueueLoad() (length, capacity int) {
	return len(d.queue), cap(d.queue)
}
