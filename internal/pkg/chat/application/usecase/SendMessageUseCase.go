package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	assistant "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// Relay fans a persisted message out to every connection in the chat's room.
// A broadcast happens only after the message is durably stored, so readers
// can never observe a message that later disappears.
type Relay interface {
	Publish(ctx context.Context, chatID string, m chat.Message)
}

// SendMessageInput is one user turn. An empty ChatID means "start a new chat
// with this message".
type SendMessageInput struct {
	OwnerID string
	ChatID  string
	Text    string
}

// SendMessageResult reports the assistant's reply and the chat it landed in,
// which may be freshly created.
type SendMessageResult struct {
	ChatID   string
	Response string
}

// SendMessageUseCase runs a full exchange: store the user's message, let the
// assistant respond, store the reply, broadcasting each write as it lands.
type SendMessageUseCase struct {
	Repo      repository.ChatRepository
	Responder assistant.Responder
	Relay     Relay

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewSendMessageUseCase(repo repository.ChatRepository, responder assistant.Responder, relay Relay) *SendMessageUseCase {
	return &SendMessageUseCase{
		Repo:      repo,
		Responder: responder,
		Relay:     relay,
		Now:       time.Now,
	}
}

// Execute appends the user's message first and only then calls the
// assistant, so a slow or failing upstream never loses what the user typed.
// The first exchange in a chat also sets its title from the message text.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}

	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}

	userMsg, err := chat.NewMessage(in.Text, chat.SenderUser, now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	chatID := in.ChatID
	if chatID == "" {
		created, err := uc.Repo.Create(ctx, in.OwnerID, chat.Chat{})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		chatID = created.ID.Hex()
	}

	if _, err := uc.Repo.AppendMessage(ctx, chatID, in.OwnerID, userMsg, chat.DeriveTitle(userMsg.Text)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	uc.publish(ctx, chatID, userMsg)

	reply, err := uc.Responder.Respond(ctx, userMsg.Text)
	if err != nil {
		if errors.Is(err, assistant.ErrTimeout) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	aiMsg, err := chat.NewMessage(reply, chat.SenderAI, now())
	if err != nil {
		return nil, fmt.Errorf("%w: assistant returned an invalid message: %v", ErrUpstream, err)
	}

	if _, err := uc.Repo.AppendMessage(ctx, chatID, in.OwnerID, aiMsg, ""); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	uc.publish(ctx, chatID, aiMsg)

	return &SendMessageResult{ChatID: chatID, Response: aiMsg.Text}, nil
}

func (uc *SendMessageUseCase) publish(ctx context.Context, chatID string, m chat.Message) {
	if uc.Relay != nil {
		uc.Relay.Publish(ctx, chatID, m)
	}
}
