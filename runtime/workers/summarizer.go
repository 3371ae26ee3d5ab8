package workers

import (
	"context"
	"log/slog"

	"loopchat/domain/event"
	"loopchat/pipeline"
)

// SummarizerWorker sleeps on the wake signal, then summarizes a
// consistent snapshot of the log. The summary itself is a placeholder
// (longest message) and deliberately stays that way. Wakes raised while
// a pass is running collapse into at most one pending signal, so the
// worker always runs at least once more after the last trigger.
type SummarizerWorker struct {
	log      *slog.Logger
	messages *pipeline.MessageLog
	wake     *pipeline.Wake
	ingress  chan<- event.Event
}

func NewSummarizerWorker(
	log *slog.Logger,
	messages *pipeline.MessageLog,
	wake *pipeline.Wake,
	ingress chan<- event.Event,
) *SummarizerWorker {
	return &SummarizerWorker{log: log, messages: messages, wake: wake, ingress: ingress}
}

func (w *SummarizerWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case <-w.wake.C():
			// Snapshot releases the log's lock before the scan.
			snapshot := w.messages.Snapshot()
			summary := pipeline.Longest(snapshot)
			w.log.Debug("Summary computed", "messages", len(snapshot))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case w.ingress <- event.Event{
				Type:    event.SummaryUpdatedType,
				Payload: event.SummaryUpdated{Summary: summary, MessageCount: len(snapshot)},
			}:
			}
		}
	}
}
