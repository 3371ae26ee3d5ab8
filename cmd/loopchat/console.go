package main

import (
	"fmt"

	"github.com/gookit/color"

	"loopchat/domain"
	"loopchat/domain/event"
)

// consoleSink renders pipeline events on the terminal. It runs on the
// interaction goroutine only, like every other sink.
type consoleSink struct{}

func (consoleSink) Consume(e event.Event) {
	switch payload := e.Payload.(type) {
	case event.ListenerReady:
		color.Green.Printf("Listening on udp://127.0.0.1:%d\n", payload.Port)
	case event.ListenerStopped:
		color.Red.Printf("Listener stopped: %s\n", payload.Reason)
	case event.AnnotatedMessage:
		printMessage(payload)
	case event.MessageLogged:
		fmt.Printf("[#%d] %s %s\n", payload.Count, tag(payload.Message.Direction), payload.Message.Content)
	case event.SendFailed:
		color.Red.Printf("[#%d] send failed (%s): %s\n", payload.Count, payload.Reason, payload.Message.Content)
	case event.SummaryUpdated:
		color.Yellow.Printf("Summary after %d messages: %q\n", payload.MessageCount, payload.Summary)
	case event.InputRejected:
		color.Red.Printf("Rejected input %q: %s\n", payload.RawPort, payload.Reason)
	}
}

func printMessage(m event.AnnotatedMessage) {
	line := fmt.Sprintf("[#%d] %s %s", m.Count, tag(m.Message.Direction), m.Display)
	if m.Lang != "" {
		line += fmt.Sprintf(" (%s)", m.Lang)
	}
	if m.Message.Direction == domain.Inbound {
		color.Cyan.Println(line)
	} else {
		color.Green.Println(line)
	}
}

func tag(d domain.Direction) string {
	if d == domain.Inbound {
		return "peer:"
	}
	return "you: "
}
