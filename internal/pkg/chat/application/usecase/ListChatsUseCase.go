package usecase

import (
	"context"
	"fmt"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// ListChatsUseCase returns the caller's chats, most recently updated first.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type ListChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewListChatsUseCase(repo repository.ChatRepository) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo}
}

// Execute never reports a missing owner as an error; a caller with no chats
// gets an empty list.
func (uc *ListChatsUseCase) Execute(ctx context.Context, ownerID string) ([]chat.Chat, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}
	chats, err := uc.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return chats, nil
}
