package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cache "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/port"
	queue "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/presentation/controller"
)

// Deps carries the scrape proxy's collaborators. Cache and Queue may be nil.
type Deps struct {
	Client port.Client
	Cache  cache.Cache
	Queue  queue.Client
	Logger *zap.Logger
}

// RegisterRoutes registers scraper proxy endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
// The group is expected to already carry the auth middleware.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	uc := usecase.NewScrapeUseCase(deps.Client, deps.Cache, deps.Queue, deps.Logger)

	// POST /api/scraper/jobs -> job listings
	g.POST("/scraper/jobs", controller.NewScrapeController(port.KindJobs, uc).Handle())

	// POST /api/scraper/ai-tools -> AI tool catalogue
	g.POST("/scraper/ai-tools", controller.NewScrapeController(port.KindAITools, uc).Handle())

	// POST /api/scraper/courses -> course listings
	g.POST("/scraper/courses", controller.NewScrapeController(port.KindCourses, uc).Handle())
}
