package usecase

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// DeleteChatInput identifies the chat to remove.
type DeleteChatInput struct {
	OwnerID string
	ChatID  string
}

// DeleteChatUseCase removes a chat and its embedded messages.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type DeleteChatUseCase struct {
	Repo repository.ChatRepository
}

func NewDeleteChatUseCase(repo repository.ChatRepository) *DeleteChatUseCase {
	return &DeleteChatUseCase{Repo: repo}
}

// Execute returns ErrNotFound both for a missing chat and for one owned by
// someone else.
func (uc *DeleteChatUseCase) Execute(ctx context.Context, in DeleteChatInput) error {
	if in.OwnerID == "" || in.ChatID == "" {
		return fmt.Errorf("%w: owner id and chat id are required", ErrValidation)
	}

	if err := uc.Repo.Delete(ctx, in.ChatID, in.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
