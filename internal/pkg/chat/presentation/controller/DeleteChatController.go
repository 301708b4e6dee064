package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/adapter"
)

// DeleteChatController handles the chat deletion endpoint (one controller per endpoint)
type DeleteChatController struct {
	UC *usecase.DeleteChatUseCase
}

func NewDeleteChatController(db *mongo.Database) *DeleteChatController {
	repo := adapter.NewMongoChatRepository(db)
	return &DeleteChatController{UC: usecase.NewDeleteChatUseCase(repo)}
}

func (h *DeleteChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, usecase.DeleteChatInput{
			OwnerID: identity.UserID,
			ChatID:  c.Param("chatId"),
		})
		if err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Chat deleted successfully"})
	}
}
