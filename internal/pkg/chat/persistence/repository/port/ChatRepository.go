package repository

import (
	"context"
	"errors"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
)

// ErrNotFound covers both a genuinely missing chat and an owner mismatch;
// callers must not be able to tell the two apart.
var ErrNotFound = errors.New("chat repository: not found")

// ChatPatch is a presence-aware partial update. A nil field is left
// untouched; a non-nil field is applied even when it points at a zero value,
// so "clear the title" and "don't touch the title" stay distinguishable.
type ChatPatch struct {
	Title    *string
	Messages *[]chat.Message
}

// ChatRepository defines persistence operations for chats. Every operation
// that addresses a chat by id also carries the owner id, and implementations
// must evaluate the two as a single atomic predicate.
type ChatRepository interface {
	Create(ctx context.Context, ownerID string, c chat.Chat) (*chat.Chat, error)
	ListByOwner(ctx context.Context, ownerID string) ([]chat.Chat, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*chat.Chat, error)
	Update(ctx context.Context, id, ownerID string, patch ChatPatch) (*chat.Chat, error)
	Delete(ctx context.Context, id, ownerID string) error

	// AppendMessage atomically pushes m onto the chat's transcript and
	// refreshes updatedAt. When firstExchangeTitle is non-empty and the
	// transcript was empty before the push, the title is set to it in the
	// same write; concurrent sends cannot lose messages or double-title.
	AppendMessage(ctx context.Context, id, ownerID string, m chat.Message, firstExchangeTitle string) (*chat.Chat, error)
}
