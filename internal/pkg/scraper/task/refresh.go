package task

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	queue "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

// RegisterRefreshScrapeTask binds the background cache-refresh handler to the
// queue server.
func RegisterRefreshScrapeTask(srv queue.Server, uc *usecase.ScrapeUseCase, logger *zap.Logger) {
	srv.Register(usecase.RefreshTaskType, func(ctx context.Context, t queue.Task) error {
		var p usecase.RefreshPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// Malformed payloads will never succeed; drop instead of retrying.
			logger.Error("scraper refresh: malformed payload", zap.Error(err))
			return nil
		}

		q := port.Query{Term: p.Term, Location: p.Location, Limit: p.Limit}
		if err := uc.Refresh(ctx, port.Kind(p.Kind), q); err != nil {
			return fmt.Errorf("refresh %s: %w", p.Kind, err)
		}

		logger.Debug("scraper refresh: done", zap.String("kind", p.Kind), zap.String("term", p.Term))
		return nil
	})
}
