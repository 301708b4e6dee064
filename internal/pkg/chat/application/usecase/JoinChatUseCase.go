package usecase

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// JoinChatInput validates a request to attach a socket to a chat room.
type JoinChatInput struct {
	OwnerID string
	ChatID  string
}

// JoinChatUseCase ensures the caller owns the chat before the realtime room
// join happens; a socket can only ever subscribe to its own chats.
type JoinChatUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinChatUseCase(repo repository.ChatRepository) *JoinChatUseCase {
	return &JoinChatUseCase{Repo: repo}
}

func (uc *JoinChatUseCase) Execute(ctx context.Context, in JoinChatInput) error {
	if in.OwnerID == "" || in.ChatID == "" {
		return fmt.Errorf("%w: owner id and chat id are required", ErrValidation)
	}

	if _, err := uc.Repo.FindByIDAndOwner(ctx, in.ChatID, in.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
