// Package projection builds local read models from observed events.
// It is only ever driven from the interaction goroutine and never
// touches the pipeline itself.
package projection

import (
	"loopchat/domain"
	"loopchat/domain/event"
)

// Entry is one display line of the feed.
type Entry struct {
	Direction domain.Direction
	Display   string
	Lang      string
	Count     int
	Failed    bool
}

// Feed is the presentation-side history plus the latest summary.
// Summary may be stale relative to the log at any instant; that is
// expected, not an error.
type Feed struct {
	Entries []Entry
	Summary string
	Port    int
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Consume(e event.Event) {
	switch payload := e.Payload.(type) {
	case event.AnnotatedMessage:
		f.Entries = append(f.Entries, Entry{
			Direction: payload.Message.Direction,
			Display:   payload.Display,
			Lang:      payload.Lang,
			Count:     payload.Count,
		})
	case event.MessageLogged:
		// Not annotated, fall back to the raw content.
		f.Entries = append(f.Entries, Entry{
			Direction: payload.Message.Direction,
			Display:   payload.Message.Content,
			Count:     payload.Count,
		})
	case event.SendFailed:
		f.Entries = append(f.Entries, Entry{
			Direction: payload.Message.Direction,
			Display:   payload.Message.Content,
			Count:     payload.Count,
			Failed:    true,
		})
	case event.SummaryUpdated:
		f.Summary = payload.Summary
	case event.ListenerReady:
		f.Port = payload.Port
	}
}
