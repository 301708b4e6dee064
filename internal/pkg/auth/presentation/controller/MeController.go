package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
)

// MeController returns the authenticated user's profile (one controller per endpoint)
type MeController struct {
	UC *usecase.GetProfileUseCase
}

func NewMeController(db *mongo.Database) *MeController {
	repo := adapter.NewMongoUserRepository(db)
	return &MeController{UC: usecase.NewGetProfileUseCase(repo)}
}

func (h *MeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.UC.Execute(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, usecase.ErrUnknownSubject) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}
