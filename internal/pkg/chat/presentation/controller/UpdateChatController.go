package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/adapter"
)

// UpdateChatController handles the chat patch endpoint (one controller per endpoint)
type UpdateChatController struct {
	UC *usecase.UpdateChatUseCase
}

func NewUpdateChatController(db *mongo.Database) *UpdateChatController {
	repo := adapter.NewMongoChatRepository(db)
	return &UpdateChatController{UC: usecase.NewUpdateChatUseCase(repo)}
}

// Pointer fields distinguish "field absent" from "field set to its zero
// value"; only present fields reach the update.
type updateChatRequest struct {
	Title    *string        `json:"title"`
	Messages *[]chatMessage `json:"messages"`
}

func (h *UpdateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		var req updateChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		in := usecase.UpdateChatInput{
			OwnerID: identity.UserID,
			ChatID:  c.Param("chatId"),
			Title:   req.Title,
		}
		if req.Messages != nil {
			messages := make([]chat.Message, 0, len(*req.Messages))
			for _, m := range *req.Messages {
				messages = append(messages, chat.Message{
					Text:      m.Text,
					Sender:    chat.Sender(m.Sender),
					Timestamp: m.Timestamp,
				})
			}
			in.Messages = &messages
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.Execute(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			case errors.Is(err, usecase.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
