package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrInvalidPayload = fmt.Errorf("unexpected event payload")
	ErrPartialSend    = fmt.Errorf("datagram truncated by transport")
	ErrInvalidPort    = fmt.Errorf("destination port must be a number between 1 and 65535")
	ErrEmptyMessage   = fmt.Errorf("message content is empty")
	ErrNoFreePort     = fmt.Errorf("no free listening port available")
	ErrBatchSize      = fmt.Errorf("batch size must be greater than zero")
)
