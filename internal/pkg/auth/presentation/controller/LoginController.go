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
)

// LoginController handles the credential login endpoint (one controller per endpoint)
type LoginController struct {
	UC *usecase.LoginUseCase
}

func NewLoginController(db *mongo.Database, secret []byte) *LoginController {
	repo := adapter.NewMongoUserRepository(db)
	return &LoginController{UC: usecase.NewLoginUseCase(repo, secret)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": res.Token,
			"role":  res.Role,
			"name":  res.Name,
		})
	}
}
