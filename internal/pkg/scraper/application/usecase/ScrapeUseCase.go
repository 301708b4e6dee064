package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	cache "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/port"
	queue "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

const (
	// RefreshTaskType is the queue identifier for background cache refreshes.
	RefreshTaskType = "scraper:refresh"

	resultTTL = time.Hour
)

// ErrValidation marks a bad scrape request.
var ErrValidation = fmt.Errorf("scraper use case validation error")

// ErrUpstream wraps client failures so controllers map them uniformly.
var ErrUpstream = fmt.Errorf("scraper use case upstream error")

// RefreshPayload is the task body for a background refresh.
type RefreshPayload struct {
	Kind     string `json:"kind"`
	Term     string `json:"term"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
}

// ScrapeUseCase serves catalogue results cache-first. A hit is returned
// immediately and a refresh task is enqueued so the entry converges on fresh
// data; a miss scrapes inline and populates the cache. Cache and queue are
// both optional: without them the use case degrades to a plain proxy.
type ScrapeUseCase struct {
	Client port.Client
	Cache  cache.Cache
	Queue  queue.Client
	Log    *zap.Logger
}

func NewScrapeUseCase(client port.Client, c cache.Cache, q queue.Client, logger *zap.Logger) *ScrapeUseCase {
	return &ScrapeUseCase{Client: client, Cache: c, Queue: q, Log: logger}
}

// CacheKey is deterministic per (kind, query) so concurrent identical
// requests share one entry.
func CacheKey(kind port.Kind, q port.Query) string {
	return fmt.Sprintf("scrape:%s:%s:%s:%d", kind, q.Term, q.Location, q.Limit)
}

func (uc *ScrapeUseCase) Execute(ctx context.Context, kind port.Kind, q port.Query) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, kind)
	}

	key := CacheKey(kind, q)

	if uc.Cache != nil {
		cached, err := uc.Cache.Get(ctx, key)
		if err == nil {
			uc.enqueueRefresh(ctx, kind, q)
			return json.RawMessage(cached), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			uc.Log.Warn("scrape: cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	result, err := uc.Client.Fetch(ctx, kind, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if uc.Cache != nil {
		if err := uc.Cache.Set(ctx, key, string(result), resultTTL); err != nil {
			uc.Log.Warn("scrape: cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// Refresh re-scrapes and rewrites the cache entry. It backs the background
// task handler and must stay idempotent.
func (uc *ScrapeUseCase) Refresh(ctx context.Context, kind port.Kind, q port.Query) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, kind)
	}

	result, err := uc.Client.Fetch(ctx, kind, q)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if uc.Cache == nil {
		return nil
	}
	return uc.Cache.Set(ctx, CacheKey(kind, q), string(result), resultTTL)
}

func (uc *ScrapeUseCase) enqueueRefresh(ctx context.Context, kind port.Kind, q port.Query) {
	if uc.Queue == nil {
		return
	}

	payload, err := json.Marshal(RefreshPayload{
		Kind:     string(kind),
		Term:     q.Term,
		Location: q.Location,
		Limit:    q.Limit,
	})
	if err != nil {
		uc.Log.Error("scrape: encode refresh payload", zap.Error(err))
		return
	}

	// UniqueTTL collapses repeated hits on the same entry into one pending
	// refresh.
	_, err = uc.Queue.Enqueue(ctx, queue.Task{Type: RefreshTaskType, Payload: payload}, queue.EnqueueOption{
		Queue:     "scraper",
		MaxRetry:  3,
		UniqueTTL: 10 * time.Minute,
	})
	if err != nil {
		uc.Log.Warn("scrape: enqueue refresh failed", zap.Error(err))
	}
}
