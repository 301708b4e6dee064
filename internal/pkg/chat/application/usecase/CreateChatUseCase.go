package usecase

import (
	"context"
	"fmt"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// CreateChatInput carries the optional title and seed messages for a new chat.
type CreateChatInput struct {
	OwnerID  string
	Title    string
	Messages []chat.Message
}

// CreateChatUseCase opens a new chat for the caller.
// Hexagonal: depends on repository port only
// One class per use case (own file)
type CreateChatUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateChatUseCase(repo repository.ChatRepository) *CreateChatUseCase {
	return &CreateChatUseCase{Repo: repo}
}

// Execute persists the chat and returns the full record including its
// generated id. An omitted title defaults to "New Chat"; seed messages are
// validated like any other write.
func (uc *CreateChatUseCase) Execute(ctx context.Context, in CreateChatInput) (*chat.Chat, error) {
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}

	messages := make([]chat.Message, 0, len(in.Messages))
	for _, m := range in.Messages {
		valid, err := chat.NewMessage(m.Text, m.Sender, m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		messages = append(messages, valid)
	}

	created, err := uc.Repo.Create(ctx, in.OwnerID, chat.Chat{
		Title:    in.Title,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
