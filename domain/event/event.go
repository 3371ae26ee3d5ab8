package event

import (
	"loopchat/domain"
)

type Type string

const (
	MessageReceivedType Type = "MESSAGE_RECEIVED"
	MessageSentType     Type = "MESSAGE_SENT"
	SendFailedType      Type = "SEND_FAILED"
	SummaryUpdatedType  Type = "SUMMARY_UPDATED"
	ListenerReadyType   Type = "LISTENER_READY"
	ListenerStoppedType Type = "LISTENER_STOPPED"
	InputRejectedType   Type = "INPUT_REJECTED"
)

// Event is the envelope carried across the pipeline channels.
// The payload type is determined by Type.
type Event struct {
	Type    Type
	Payload any
}

// MessageLogged is emitted right after a message has been appended,
// either by the listener (inbound) or by a completed send (outbound).
// Count is the log size observed atomically at append time.
type MessageLogged struct {
	Message domain.Message
	Count   int
}

// AnnotatedMessage wraps MessageLogged after the moderation stage.
// Display is the censored rendering intended for presentation;
// the log itself always keeps the original content.
type AnnotatedMessage struct {
	MessageLogged
	Lang    string
	Display string
	Hits    []string
}

// SendFailed reports a send error to the presentation layer. The
// attempted message is still recorded, so Count is meaningful here too.
type SendFailed struct {
	Message domain.Message
	Count   int
	Reason  string
}

type SummaryUpdated struct {
	Summary      string
	MessageCount int
}

// ListenerReady announces the bound port so the operator knows where
// to aim datagrams.
type ListenerReady struct {
	Port int
}

// ListenerStopped is emitted exactly once when the listener loop dies.
type ListenerStopped struct {
	Port   int
	Reason string
}

type InputRejected struct {
	RawPort string
	Reason  string
}
