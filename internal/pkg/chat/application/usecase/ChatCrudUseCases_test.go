package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
)

func TestCreateChatDefaults(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewCreateChatUseCase(repo)
	owner := primitive.NewObjectID().Hex()

	created, err := uc.Execute(context.Background(), CreateChatInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, chat.DefaultTitle, created.Title)
	assert.NotNil(t, created.Messages)
	assert.Empty(t, created.Messages)
	assert.Equal(t, owner, created.UserID.Hex())
}

func TestCreateChatValidatesSeedMessages(t *testing.T) {
	uc := NewCreateChatUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), CreateChatInput{
		OwnerID:  primitive.NewObjectID().Hex(),
		Messages: []chat.Message{{Text: "hi", Sender: "system"}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListChatsEmptyIsNotAnError(t *testing.T) {
	uc := NewListChatsUseCase(newFakeChatRepo())

	chats, err := uc.Execute(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, chats)
	assert.Empty(t, chats)
}

func TestListChatsScopedToOwner(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewListChatsUseCase(repo)
	owner := primitive.NewObjectID().Hex()
	other := primitive.NewObjectID().Hex()

	_, err := repo.Create(context.Background(), owner, chat.Chat{Title: "mine"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), other, chat.Chat{Title: "theirs"})
	require.NoError(t, err)

	chats, err := uc.Execute(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "mine", chats[0].Title)
}

func TestUpdateChatPresenceAwarePatch(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewUpdateChatUseCase(repo)
	owner := primitive.NewObjectID().Hex()

	msg, err := chat.NewMessage("hello", chat.SenderUser, time.Now())
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), owner, chat.Chat{
		Title:    "original",
		Messages: []chat.Message{msg},
	})
	require.NoError(t, err)

	t.Run("title only leaves messages intact", func(t *testing.T) {
		title := "renamed"
		updated, err := uc.Execute(context.Background(), UpdateChatInput{
			OwnerID: owner,
			ChatID:  created.ID.Hex(),
			Title:   &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Len(t, updated.Messages, 1)
	})

	t.Run("explicit empty title applies", func(t *testing.T) {
		title := ""
		updated, err := uc.Execute(context.Background(), UpdateChatInput{
			OwnerID: owner,
			ChatID:  created.ID.Hex(),
			Title:   &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Title)
	})

	t.Run("nil patch changes nothing", func(t *testing.T) {
		updated, err := uc.Execute(context.Background(), UpdateChatInput{
			OwnerID: owner,
			ChatID:  created.ID.Hex(),
		})
		require.NoError(t, err)
		assert.Len(t, updated.Messages, 1)
	})
}

func TestUpdateChatOwnershipLooksMissing(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewUpdateChatUseCase(repo)

	created, err := repo.Create(context.Background(), primitive.NewObjectID().Hex(), chat.Chat{})
	require.NoError(t, err)

	title := "hijack"
	_, err = uc.Execute(context.Background(), UpdateChatInput{
		OwnerID: primitive.NewObjectID().Hex(),
		ChatID:  created.ID.Hex(),
		Title:   &title,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteChat(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewDeleteChatUseCase(repo)
	owner := primitive.NewObjectID().Hex()

	created, err := repo.Create(context.Background(), owner, chat.Chat{})
	require.NoError(t, err)

	require.NoError(t, uc.Execute(context.Background(), DeleteChatInput{
		OwnerID: owner,
		ChatID:  created.ID.Hex(),
	}))

	// A second delete finds nothing.
	err = uc.Execute(context.Background(), DeleteChatInput{
		OwnerID: owner,
		ChatID:  created.ID.Hex(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteChatOwnershipLooksMissing(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewDeleteChatUseCase(repo)

	created, err := repo.Create(context.Background(), primitive.NewObjectID().Hex(), chat.Chat{})
	require.NoError(t, err)

	err = uc.Execute(context.Background(), DeleteChatInput{
		OwnerID: primitive.NewObjectID().Hex(),
		ChatID:  created.ID.Hex(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinChatAuthorizesOwnerOnly(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewJoinChatUseCase(repo)
	owner := primitive.NewObjectID().Hex()

	created, err := repo.Create(context.Background(), owner, chat.Chat{})
	require.NoError(t, err)

	assert.NoError(t, uc.Execute(context.Background(), JoinChatInput{
		OwnerID: owner,
		ChatID:  created.ID.Hex(),
	}))
	assert.ErrorIs(t, uc.Execute(context.Background(), JoinChatInput{
		OwnerID: primitive.NewObjectID().Hex(),
		ChatID:  created.ID.Hex(),
	}), ErrNotFound)
}
