package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	cacheadapter "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/adapter"
	"github.com/SutharYagnesh/EduPath/internal/infrastructure/logging"
	queueadapter "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/adapter"
	scraperadapter "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/adapter"
	scraperusecase "github.com/SutharYagnesh/EduPath/internal/pkg/scraper/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/task"
)

// The worker drains background queues: currently just scrape-cache
// refreshes. It shares REDIS_URL and ML_* configuration with the api binary.
func main() {
	if err := godotenv.Load(); err != nil {
		zap.NewExample().Warn(".env not loaded", zap.Error(err))
	}

	logger, err := logging.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	base := os.Getenv("ML_BASE_URL")
	if base == "" {
		logger.Fatal("ML_BASE_URL is required")
	}

	cache, err := cacheadapter.NewRedisCacheFromEnv()
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	defer cache.Close()

	srv, err := queueadapter.NewAsynqServer(logger)
	if err != nil {
		logger.Fatal("asynq server failed", zap.Error(err))
	}

	timeout := time.Duration(0)
	if v := os.Getenv("ML_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			timeout = d
		}
	}
	client := scraperadapter.NewHTTPClient(base, os.Getenv("ML_API_KEY"), timeout)
	uc := scraperusecase.NewScrapeUseCase(client, cache, nil, logger)
	task.RegisterRefreshScrapeTask(srv, uc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started")
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker stopped", zap.Error(err))
	}
	logger.Info("worker shut down")
}
