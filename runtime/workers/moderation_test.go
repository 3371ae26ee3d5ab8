package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"loopchat/domain"
	"loopchat/domain/event"
	"loopchat/moderation"
)

func TestModerationWorker_Annotates_Message_Events(t *testing.T) {
	req := require.New(t)
	mod, err := moderation.NewModerator([]string{"badger"}, '*', slog.Default())
	req.NoError(err)

	moderationChan := make(chan event.Event, 4)
	events := make(chan event.Event, 4)
	worker := NewModerationWorker(mod, moderationChan, events, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	msg := domain.NewMessage(domain.Inbound, "the badger waits")
	moderationChan <- event.Event{
		Type:    event.MessageReceivedType,
		Payload: event.MessageLogged{Message: msg, Count: 1},
	}

	select {
	case evt := <-events:
		req.Equal(event.MessageReceivedType, evt.Type)
		annotated := evt.Payload.(event.AnnotatedMessage)
		// Display rendering is censored, the logged message is not.
		req.Equal("the ****** waits", annotated.Display)
		req.Equal("the badger waits", annotated.Message.Content)
		req.Equal(1, annotated.Count)
		req.Equal([]string{"badger"}, annotated.Hits)
	case <-time.After(2 * time.Second):
		req.Fail("no annotated event")
	}
}

func TestModerationWorker_Passes_Other_Events_Through(t *testing.T) {
	req := require.New(t)
	mod, err := moderation.NewModerator(nil, '*', slog.Default())
	req.NoError(err)

	moderationChan := make(chan event.Event, 4)
	events := make(chan event.Event, 4)
	worker := NewModerationWorker(mod, moderationChan, events, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	moderationChan <- event.Event{
		Type:    event.SummaryUpdatedType,
		Payload: event.SummaryUpdated{Summary: "hello", MessageCount: 5},
	}

	select {
	case evt := <-events:
		req.Equal(event.SummaryUpdatedType, evt.Type)
		req.Equal(event.SummaryUpdated{Summary: "hello", MessageCount: 5}, evt.Payload)
	case <-time.After(2 * time.Second):
		req.Fail("event was swallowed")
	}
}
