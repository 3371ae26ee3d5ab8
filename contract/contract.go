package contract

import (
	"context"
	"loopchat/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Dispatcher marshals callbacks onto the single interaction goroutine.
// Post returns immediately; callbacks from one poster run in FIFO order.
// Workers never touch presentation state directly, they only post.
type Dispatcher interface {
	Post(fn func())
}

// EventSink consumes pipeline events on the interaction goroutine.
type EventSink interface {
	Consume(e event.Event)
}
