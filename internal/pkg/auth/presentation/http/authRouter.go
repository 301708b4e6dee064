package http

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/controller"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
)

// RegisterRoutes registers auth-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, db *mongo.Database, secret []byte, logger *zap.Logger) {
	signupCtl := controller.NewSignupController(db)
	loginCtl := controller.NewLoginController(db, secret)
	meCtl := controller.NewMeController(db)
	googleCtl := controller.NewGoogleAuthController(db, secret, logger)

	users := adapter.NewMongoUserRepository(db)

	// POST /api/auth/signup -> register a local account
	g.POST("/auth/signup", signupCtl.Handle())

	// POST /api/auth/login -> exchange credentials for a bearer token
	g.POST("/auth/login", loginCtl.Handle())

	// GET /api/auth/me -> profile behind the auth gate
	g.GET("/auth/me", middleware.RequireAuth(secret, users), meCtl.Handle())

	// GET /api/auth/google + callback -> OAuth login flow
	g.GET("/auth/google", googleCtl.Login())
	g.GET("/auth/google/callback", googleCtl.Callback())
}
