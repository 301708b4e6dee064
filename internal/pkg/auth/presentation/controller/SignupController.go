package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	auth "github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/domain"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
)

// SignupController handles the local registration endpoint (one controller per endpoint)
type SignupController struct {
	UC *usecase.SignupUseCase
}

func NewSignupController(db *mongo.Database) *SignupController {
	repo := adapter.NewMongoUserRepository(db)
	return &SignupController{UC: usecase.NewSignupUseCase(repo)}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (h *SignupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		_, err := h.UC.Execute(ctx, usecase.SignupInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			case errors.Is(err, auth.ErrMissingFields), errors.Is(err, auth.ErrPasswordTooBig):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
