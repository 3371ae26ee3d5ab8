package workers

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"loopchat/domain/event"
	"loopchat/moderation"
)

// ModerationWorker sits between the producers and the fan-out. Message
// events get annotated with the detected language and a censored
// display rendering; every other event passes through untouched. The
// log keeps the original content, annotation is presentation-only.
type ModerationWorker struct {
	moderator      moderation.Moderator
	moderationChan <-chan event.Event
	events         chan<- event.Event
	log            *slog.Logger
}

func NewModerationWorker(
	moderator moderation.Moderator,
	moderationChan <-chan event.Event,
	events chan<- event.Event,
	log *slog.Logger,
) *ModerationWorker {
	return &ModerationWorker{
		moderator:      moderator,
		moderationChan: moderationChan,
		events:         events,
		log:            log,
	}
}

func (w *ModerationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case e, ok := <-w.moderationChan:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			if logged, isMessage := e.Payload.(event.MessageLogged); isMessage {
				e = event.Event{Type: e.Type, Payload: w.annotate(logged)}
			}
			select {
			case <-ctx.Done():
				w.log.Debug("Stopping worker")
				return ctx.Err()
			case w.events <- e:
			}
		}
	}
}

func (w *ModerationWorker) annotate(logged event.MessageLogged) event.AnnotatedMessage {
	info := whatlanggo.Detect(logged.Message.Content)
	display, hits := w.moderator.Censor(logged.Message.Content)
	if len(hits) > 0 {
		w.log.Debug("Censored words in message", "count", len(hits))
	}
	return event.AnnotatedMessage{
		MessageLogged: logged,
		Lang:          info.Lang.Iso6391(),
		Display:       display,
		Hits:          hits,
	}
}
