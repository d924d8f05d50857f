package ui

import (
	"fmt"
	"sync"
	"time"
)

// MessageLevel marks whether a status message reports a failure
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelError
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Level     MessageLevel
	Timestamp time.Time
}

// String formats the message for the message log overlay
func (m *Message) String() string {
	prefix := " "
	if m.Level == LevelError {
		prefix = "!"
	}
	return fmt.Sprintf("%s %s %s", m.Timestamp.Format("15:04:05"), prefix, m.Text)
}

// MessageLogger tracks the last N status messages
type MessageLogger struct {
	messages []*Message
	maxSize  int
	mu       sync.Mutex
	now      func() time.Time
}

// NewMessageLogger creates a new message logger with the specified max size
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]*Message, 0, maxSize),
		maxSize:  maxSize,
		now:      time.Now,
	}
}

// AddMessage adds an informational message
func (ml *MessageLogger) AddMessage(text string) {
	ml.add(text, LevelInfo)
}

// AddError adds an error message
func (ml *MessageLogger) AddError(text string) {
	ml.add(text, LevelError)
}

func (ml *MessageLogger) add(text string, level MessageLevel) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if text == "" {
		return
	}

	ml.messages = append(ml.messages, &Message{
		Text:      text,
		Level:     level,
		Timestamp: ml.now(),
	})

	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Latest returns the newest message, or nil
func (ml *MessageLogger) Latest() *Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	if len(ml.messages) == 0 {
		return nil
	}
	return ml.messages[len(ml.messages)-1]
}

// GetMessagesReverse returns a copy of all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []*Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]*Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Lines formats the log newest first
func (ml *MessageLogger) Lines() []string {
	msgs := ml.GetMessagesReverse()
	if len(msgs) == 0 {
		return []string{"No messages."}
	}
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.String()
	}
	return lines
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
