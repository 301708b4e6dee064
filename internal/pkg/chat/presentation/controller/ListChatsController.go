package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/adapter"
)

// ListChatsController handles the chat history listing endpoint (one controller per endpoint)
type ListChatsController struct {
	UC *usecase.ListChatsUseCase
}

func NewListChatsController(db *mongo.Database) *ListChatsController {
	repo := adapter.NewMongoChatRepository(db)
	return &ListChatsController{UC: usecase.NewListChatsUseCase(repo)}
}

func (h *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		chats, err := h.UC.Execute(ctx, identity.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, chats)
	}
}
