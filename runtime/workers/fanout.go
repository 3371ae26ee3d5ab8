package workers

import (
	"context"
	"log/slog"

	"loopchat/contract"
	"loopchat/domain/event"
)

// FanoutWorker broadcasts pipeline events to the presentation sinks.
//
// Sink consumption is posted to the Dispatcher, so sinks only ever run
// on the interaction goroutine. Fan-out is best effort: no delivery,
// durability or retry guarantees. Every event is also mirrored to the
// telemetry channel without blocking.
type FanoutWorker struct {
	log        *slog.Logger
	dispatcher contract.Dispatcher
	events     <-chan event.Event
	telemetry  chan<- event.Event
	sinks      []contract.EventSink
}

func NewFanoutWorker(
	log *slog.Logger,
	dispatcher contract.Dispatcher,
	events <-chan event.Event,
	telemetry chan<- event.Event,
) *FanoutWorker {
	return &FanoutWorker{
		log:        log,
		dispatcher: dispatcher,
		events:     events,
		telemetry:  telemetry,
	}
}

func (w *FanoutWorker) Add(sinks ...contract.EventSink) *FanoutWorker {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *FanoutWorker) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(evt)
			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event lost")
			}
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return ctx.Err()
		}
	}
}

// Fanout hands one event to every sink on the interaction goroutine.
// A single Post per event keeps the per-event sink order stable.
func (w *FanoutWorker) Fanout(evt event.Event) {
	sinks := w.sinks
	w.dispatcher.Post(func() {
		for _, sink := range sinks {
			sink.Consume(evt)
		}
	})
}
