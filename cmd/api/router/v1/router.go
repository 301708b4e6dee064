package v1

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	cache "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/port"
	queue "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/infrastructure/realtime"
	assistant "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
	authadapter "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
	authhttp "github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/http"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	chathttp "github.com/SutharYagnesh/EduPath/internal/pkg/chat/presentation/http"
	scraperport "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
	scraperhttp "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/presentation/http"
)

// Deps is everything the API surface needs, assembled once in main.
// Scraper, Cache, and Queue may be nil when the corresponding backing
// services are not configured.
type Deps struct {
	DB        *mongo.Database
	Secret    []byte
	Responder assistant.Responder
	Router    *realtime.Router
	Bridge    *realtime.Bridge
	Scraper   scraperport.Client
	Cache     cache.Cache
	Queue     queue.Client
	Logger    *zap.Logger
}

// RegisterRoutes mounts all /api endpoints on the engine.
func RegisterRoutes(e *gin.Engine, deps Deps) {
	api := e.Group("/api")

	authhttp.RegisterRoutes(api, deps.DB, deps.Secret, deps.Logger)

	users := authadapter.NewMongoUserRepository(deps.DB)
	authed := api.Group("", middleware.RequireAuth(deps.Secret, users))

	chathttp.RegisterRoutes(authed, chathttp.Deps{
		DB:        deps.DB,
		Responder: deps.Responder,
		Router:    deps.Router,
		Bridge:    deps.Bridge,
		Logger:    deps.Logger,
	})

	if deps.Scraper != nil {
		scraperhttp.RegisterRoutes(authed, scraperhttp.Deps{
			Client: deps.Scraper,
			Cache:  deps.Cache,
			Queue:  deps.Queue,
			Logger: deps.Logger,
		})
	}
}
