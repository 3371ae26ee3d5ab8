// Package domain contains core concepts of the message pipeline.
// Messages are immutable once appended to the log; their order is
// defined solely by insertion.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a message entered the log from the wire
// or from a local send request.
type Direction string

const (
	Inbound  Direction = "INBOUND"
	Outbound Direction = "OUTBOUND"
)

// Message represents one immutable log entry.
type Message struct {
	ID        uuid.UUID
	Direction Direction
	Content   string
	At        time.Time
}

func NewMessage(direction Direction, content string) Message {
	return Message{
		ID:        uuid.New(),
		Direction: direction,
		Content:   content,
		At:        time.Now().UTC(),
	}
}
