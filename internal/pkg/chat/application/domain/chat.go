package chat

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTitle names chats that have not earned one from their first
// exchange yet.
const DefaultTitle = "New Chat"

// titleRuneLimit is measured in code points, not bytes, so multi-byte text
// truncates cleanly.
const titleRuneLimit = 30

// Chat is a conversation owned by exactly one user. Messages are embedded in
// insertion order, which is also chronological order; they are appended, never
// edited or removed individually.
type Chat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Messages  []Message          `bson:"messages" json:"messages"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DeriveTitle builds a chat title from the first user message: the first 30
// code points, with a literal "..." appended only when the text was longer.
// Empty text falls back to DefaultTitle.
func DeriveTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultTitle
	}
	runes := []rune(text)
	if len(runes) <= titleRuneLimit {
		return text
	}
	return string(runes[:titleRuneLimit]) + "..."
}
