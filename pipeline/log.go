// Package pipeline holds the concurrent core: the shared message log,
// the batch trigger, the summary function and the datagram sender.
package pipeline

import (
	"sync"

	"loopchat/domain"
)

// MessageLog is the single source of truth for message count and content.
// It only ever grows; entries are never removed or reordered. Append and
// Snapshot share one mutex, so a snapshot taken after observing count N
// contains exactly the first N messages. The lock is held only for the
// duration of the append or the copy, never across I/O or notification.
type MessageLog struct {
	mu       sync.Mutex
	messages []domain.Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Append records a message and returns the post-append count.
// Concurrent appends are totally ordered by the mutex: no two calls
// can observe the same count.
func (l *MessageLog) Append(msg domain.Message) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
	return len(l.messages)
}

// Snapshot returns an independent copy of the log at the moment of the
// call, safe to scan without holding the lock.
func (l *MessageLog) Snapshot() []domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
