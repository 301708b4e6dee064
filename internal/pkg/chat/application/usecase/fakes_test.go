package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	assistant "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	repository "github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/port"
)

// fakeChatRepo is an in-memory ChatRepository mirroring the adapter's
// ownership and title semantics.
type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*chat.Chat

	failNext error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*chat.Chat)}
}

func (f *fakeChatRepo) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeChatRepo) Create(_ context.Context, ownerID string, c chat.Chat) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	c.ID = primitive.NewObjectID()
	c.UserID = owner
	if c.Title == "" {
		c.Title = chat.DefaultTitle
	}
	if c.Messages == nil {
		c.Messages = []chat.Message{}
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	stored := c
	f.chats[c.ID.Hex()] = &stored
	out := stored
	return &out, nil
}

func (f *fakeChatRepo) ListByOwner(_ context.Context, ownerID string) ([]chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	result := []chat.Chat{}
	for _, c := range f.chats {
		if c.UserID.Hex() == ownerID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (f *fakeChatRepo) FindByIDAndOwner(_ context.Context, id, ownerID string) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	c, ok := f.chats[id]
	if !ok || c.UserID.Hex() != ownerID {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeChatRepo) Update(_ context.Context, id, ownerID string, patch repository.ChatPatch) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	c, ok := f.chats[id]
	if !ok || c.UserID.Hex() != ownerID {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Messages != nil {
		c.Messages = append([]chat.Message{}, (*patch.Messages)...)
	}
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

func (f *fakeChatRepo) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}

	c, ok := f.chats[id]
	if !ok || c.UserID.Hex() != ownerID {
		return repository.ErrNotFound
	}
	delete(f.chats, id)
	return nil
}

func (f *fakeChatRepo) AppendMessage(_ context.Context, id, ownerID string, m chat.Message, firstExchangeTitle string) (*chat.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	c, ok := f.chats[id]
	if !ok || c.UserID.Hex() != ownerID {
		return nil, repository.ErrNotFound
	}
	if len(c.Messages) == 0 && firstExchangeTitle != "" {
		c.Title = firstExchangeTitle
	}
	c.Messages = append(c.Messages, m)
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

// fakeResponder returns a fixed reply or error.
type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) Respond(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// recordingRelay captures published messages in order.
type recordingRelay struct {
	mu     sync.Mutex
	events []relayEvent
}

type relayEvent struct {
	ChatID  string
	Message chat.Message
}

func (r *recordingRelay) Publish(_ context.Context, chatID string, m chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, relayEvent{ChatID: chatID, Message: m})
}

var errBackend = errors.New("backend unavailable")

var _ repository.ChatRepository = (*fakeChatRepo)(nil)
var _ assistant.Responder = (*fakeResponder)(nil)
var _ Relay = (*recordingRelay)(nil)
