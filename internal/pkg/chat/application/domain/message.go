package chat

import (
	"errors"
	"strings"
	"time"
)

// Sender tags who produced a message. Only the two values below are valid;
// anything else is rejected at write time.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

var (
	ErrEmptyMessage  = errors.New("chat: message text is required")
	ErrInvalidSender = errors.New("chat: sender must be \"user\" or \"ai\"")
)

// Message is an immutable entry in a chat's transcript, embedded in the Chat
// document with no independent identity.
type Message struct {
	Text      string    `bson:"text" json:"text"`
	Sender    Sender    `bson:"sender" json:"sender"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Valid reports whether s is one of the two allowed sender tags.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

// NewMessage validates and normalizes a transcript entry. A zero timestamp
// is set to now.
func NewMessage(text string, sender Sender, now time.Time) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	if !sender.Valid() {
		return Message{}, ErrInvalidSender
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Message{Text: text, Sender: sender, Timestamp: now}, nil
}
