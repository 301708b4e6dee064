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

// CreateChatController handles the explicit chat creation endpoint (one controller per endpoint)
type CreateChatController struct {
	UC *usecase.CreateChatUseCase
}

func NewCreateChatController(db *mongo.Database) *CreateChatController {
	repo := adapter.NewMongoChatRepository(db)
	return &CreateChatController{UC: usecase.NewCreateChatUseCase(repo)}
}

type createChatRequest struct {
	Title    string        `json:"title"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *CreateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		var req createChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		messages := make([]chat.Message, 0, len(req.Messages))
		for _, m := range req.Messages {
			messages = append(messages, chat.Message{
				Text:      m.Text,
				Sender:    chat.Sender(m.Sender),
				Timestamp: m.Timestamp,
			})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		created, err := h.UC.Execute(ctx, usecase.CreateChatInput{
			OwnerID:  identity.UserID,
			Title:    req.Title,
			Messages: messages,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, created)
	}
}
