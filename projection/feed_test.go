package projection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loopchat/domain"
	"loopchat/domain/event"
)

func Test_Feed_Builds_Display_History(t *testing.T) {
	req := require.New(t)
	feed := NewFeed()

	msg := domain.NewMessage(domain.Inbound, "bonjour tout le monde")
	feed.Consume(event.Event{
		Type: event.MessageReceivedType,
		Payload: event.AnnotatedMessage{
			MessageLogged: event.MessageLogged{Message: msg, Count: 1},
			Lang:          "fr",
			Display:       "bonjour tout le monde",
		},
	})

	failed := domain.NewMessage(domain.Outbound, "lost")
	feed.Consume(event.Event{
		Type:    event.SendFailedType,
		Payload: event.SendFailed{Message: failed, Count: 2, Reason: "boom"},
	})

	req.Len(feed.Entries, 2)
	req.Equal("fr", feed.Entries[0].Lang)
	req.Equal(domain.Inbound, feed.Entries[0].Direction)
	req.False(feed.Entries[0].Failed)
	req.True(feed.Entries[1].Failed)
	req.Equal(2, feed.Entries[1].Count)
}

func Test_Feed_Tracks_Summary_And_Port(t *testing.T) {
	req := require.New(t)
	feed := NewFeed()

	feed.Consume(event.Event{Type: event.ListenerReadyType, Payload: event.ListenerReady{Port: 12345}})
	feed.Consume(event.Event{Type: event.SummaryUpdatedType, Payload: event.SummaryUpdated{Summary: "hello", MessageCount: 5}})

	req.Equal(12345, feed.Port)
	req.Equal("hello", feed.Summary)

	// Summaries overwrite in place, feed entries are untouched.
	feed.Consume(event.Event{Type: event.SummaryUpdatedType, Payload: event.SummaryUpdated{Summary: "longer one", MessageCount: 10}})
	req.Equal("longer one", feed.Summary)
	req.Empty(feed.Entries)
}
