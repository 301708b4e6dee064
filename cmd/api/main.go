package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	v1 "github.com/SutharYagnesh/EduPath/cmd/api/router/v1"
	cacheadapter "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/adapter"
	cacheport "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/port"
	"github.com/SutharYagnesh/EduPath/internal/infrastructure/database"
	"github.com/SutharYagnesh/EduPath/internal/infrastructure/logging"
	queueadapter "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/adapter"
	queueport "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/infrastructure/realtime"
	assistantadapter "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/adapter"
	assistantport "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
	authadapter "github.com/SutharYagnesh/EduPath/internal/pkg/auth/persistence/repository/adapter"
	scraperadapter "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/adapter"
	scraperport "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Fine in containers; env comes from the runtime there.
		zap.NewExample().Warn(".env not loaded", zap.Error(err))
	}

	logger, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := database.NewClientFromEnv(connectCtx)
	cancel()
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	db := database.DatabaseFromEnv(client)
	users := authadapter.NewMongoUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure user indexes failed", zap.Error(err))
	}

	// Redis backs the scrape cache, the refresh queue, and cross-node
	// broadcast fanout. All three degrade gracefully when it is absent.
	var appCache cacheport.Cache
	var queueClient queueport.Client
	var redisCache *cacheadapter.RedisCache
	if os.Getenv("REDIS_URL") != "" {
		redisCache, err = cacheadapter.NewRedisCacheFromEnv()
		if err != nil {
			logger.Fatal("redis connect failed", zap.Error(err))
		}
		defer redisCache.Close()
		appCache = redisCache

		asynqClient, err := queueadapter.NewAsynqClientFromEnv()
		if err != nil {
			logger.Fatal("asynq client failed", zap.Error(err))
		}
		defer asynqClient.Close()
		queueClient = asynqClient
	} else {
		logger.Warn("REDIS_URL not set; running without cache, queue, and cross-node fanout")
	}

	router := realtime.NewRouter()
	defer router.Close()

	bridge := realtime.NewBridge(router, redisClientOrNil(redisCache), logger)
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("bridge stopped", zap.Error(err))
		}
	}()

	var responder assistantport.Responder
	var scraperClient scraperport.Client
	if base := os.Getenv("ML_BASE_URL"); base != "" {
		timeout := parseDuration(os.Getenv("ML_TIMEOUT"))
		responder = assistantadapter.NewUpstreamResponder(base, os.Getenv("ML_API_KEY"), timeout)
		scraperClient = scraperadapter.NewHTTPClient(base, os.Getenv("ML_API_KEY"), timeout)
	} else {
		logger.Warn("ML_BASE_URL not set; using canned assistant responses, scraper disabled")
		responder = assistantadapter.NewTemplatedResponder()
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1.RegisterRoutes(engine, v1.Deps{
		DB:        db,
		Secret:    secret,
		Responder: responder,
		Router:    router,
		Bridge:    bridge,
		Scraper:   scraperClient,
		Cache:     appCache,
		Queue:     queueClient,
		Logger:    logger,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}

func redisClientOrNil(c *cacheadapter.RedisCache) *redis.Client {
	if c == nil {
		return nil
	}
	return c.Client()
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
