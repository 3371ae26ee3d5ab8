package pipeline

import (
	"loopchat/errors"
)

// Wake is a single-slot, auto-clearing signal: setting it while already
// set is a no-op, and one wait consumes exactly one pending signal.
// Signals raised while the waiter is busy collapse into at most one
// pending wake.
type Wake struct {
	c chan struct{}
}

func NewWake() *Wake {
	return &Wake{c: make(chan struct{}, 1)}
}

func (w *Wake) Set() {
	select {
	case w.c <- struct{}{}:
	default:
		// Already pending, collapse.
	}
}

// C is the wait side. Receiving consumes the pending signal atomically.
func (w *Wake) C() <-chan struct{} {
	return w.c
}

// BatchTrigger decides, after every append, whether the summarizer
// should be woken. The policy is purely count based.
type BatchTrigger struct {
	batchSize int
	wake      *Wake
}

func NewBatchTrigger(batchSize int, wake *Wake) (*BatchTrigger, error) {
	if batchSize <= 0 {
		return nil, errors.ErrBatchSize
	}
	return &BatchTrigger{batchSize: batchSize, wake: wake}, nil
}

// Check signals the wake slot iff totalCount is a batch boundary.
// Callers invoke it with the count returned by MessageLog.Append, which
// is always >= 1.
func (t *BatchTrigger) Check(totalCount int) {
	if totalCount%t.batchSize == 0 {
		t.wake.Set()
	}
}
