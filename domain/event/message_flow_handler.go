package event

import (
	"log/slog"
	"sync"
)

// MessageFlowHandler counts message traffic through the pipeline.
// It is triggered for every inbound receive, outbound send and send failure.
// Useful for updating observability metrics, logging, or telemetry.
type MessageFlowHandler struct {
	log     *slog.Logger
	mu      sync.Mutex
	counter *Counter
}

func NewMessageFlowHandler(log *slog.Logger, counter *Counter) *MessageFlowHandler {
	return &MessageFlowHandler{log: log, counter: counter}
}

func (h *MessageFlowHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case MessageReceivedType, MessageSentType, SendFailedType:
		h.counter.Increment(event.Type)
	}
}
