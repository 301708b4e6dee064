package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// UpdateChatInput is a presence-aware patch: nil means "leave untouched",
// non-nil means "apply", so an explicitly empty title is not silently
// dropped.
type UpdateChatInput struct {
	OwnerID  string
	ChatID   string
	Title    *string
	Messages *[]chat.Message
}

// UpdateChatUseCase applies a partial update to a chat the caller owns.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type UpdateChatUseCase struct {
	Repo repository.ChatRepository
}

func NewUpdateChatUseCase(repo repository.ChatRepository) *UpdateChatUseCase {
	return &UpdateChatUseCase{Repo: repo}
}

func (uc *UpdateChatUseCase) Execute(ctx context.Context, in UpdateChatInput) (*chat.Chat, error) {
	if in.OwnerID == "" || in.ChatID == "" {
		return nil, fmt.Errorf("%w: owner id and chat id are required", ErrValidation)
	}

	patch := repository.ChatPatch{Title: in.Title}
	if in.Messages != nil {
		messages := make([]chat.Message, 0, len(*in.Messages))
		for _, m := range *in.Messages {
			valid, err := chat.NewMessage(m.Text, m.Sender, m.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			messages = append(messages, valid)
		}
		patch.Messages = &messages
	}

	updated, err := uc.Repo.Update(ctx, in.ChatID, in.OwnerID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return updated, nil
}
