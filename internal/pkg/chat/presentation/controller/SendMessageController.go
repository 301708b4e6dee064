package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
)

// The exchange is bounded by the assistant's own timeout plus headroom for
// the two persistence writes.
const sendMessageTimeout = 45 * time.Second

// SendMessageController handles the message exchange endpoint (one controller per endpoint)
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{UC: uc}
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
	ChatID  string `json:"chatId"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), sendMessageTimeout)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			OwnerID: identity.UserID,
			ChatID:  req.ChatID,
			Text:    req.Message,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			case errors.Is(err, usecase.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			case errors.Is(err, usecase.ErrUpstreamTimeout):
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Assistant timed out"})
			case errors.Is(err, usecase.ErrUpstream):
				c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant unavailable"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"response": res.Response,
			"chatId":   res.ChatID,
		})
	}
}
