package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cacheport "github.com/SutharYagnesh/EduPath/internal/infrastructure/cache/port"
	queueport "github.com/SutharYagnesh/EduPath/internal/infrastructure/queue/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

type fakeScraperClient struct {
	result json.RawMessage
	err    error
	calls  int
}

func (f *fakeScraperClient) Fetch(_ context.Context, _ port.Kind, _ port.Query) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache { return &memCache{entries: map[string]string{}} }

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := m.entries[k]; ok {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

func (m *memCache) Ping(context.Context) error { return nil }
func (m *memCache) Close() error               { return nil }

type recordingQueue struct {
	tasks []queueport.Task
}

func (r *recordingQueue) Enqueue(_ context.Context, t queueport.Task, _ ...queueport.EnqueueOption) (string, error) {
	r.tasks = append(r.tasks, t)
	return "task-id", nil
}

func (r *recordingQueue) Close() error { return nil }

func TestScrapeMissFetchesAndCaches(t *testing.T) {
	client := &fakeScraperClient{result: json.RawMessage(`[{"title":"Go developer"}]`)}
	c := newMemCache()
	uc := NewScrapeUseCase(client, c, &recordingQueue{}, zap.NewNop())

	q := port.Query{Term: "golang", Location: "remote", Limit: 10}
	out, err := uc.Execute(context.Background(), port.KindJobs, q)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Go developer"}]`, string(out))
	assert.Equal(t, 1, client.calls)

	cached, err := c.Get(context.Background(), CacheKey(port.KindJobs, q))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Go developer"}]`, cached)
}

func TestScrapeHitServesCacheAndEnqueuesRefresh(t *testing.T) {
	client := &fakeScraperClient{result: json.RawMessage(`["fresh"]`)}
	c := newMemCache()
	queue := &recordingQueue{}
	uc := NewScrapeUseCase(client, c, queue, zap.NewNop())

	q := port.Query{Term: "golang"}
	require.NoError(t, c.Set(context.Background(), CacheKey(port.KindJobs, q), `["stale"]`, 0))

	out, err := uc.Execute(context.Background(), port.KindJobs, q)
	require.NoError(t, err)
	assert.JSONEq(t, `["stale"]`, string(out))
	assert.Zero(t, client.calls)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, RefreshTaskType, queue.tasks[0].Type)

	var p RefreshPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload, &p))
	assert.Equal(t, string(port.KindJobs), p.Kind)
	assert.Equal(t, "golang", p.Term)
}

func TestScrapeWithoutCacheIsAPlainProxy(t *testing.T) {
	client := &fakeScraperClient{result: json.RawMessage(`["x"]`)}
	uc := NewScrapeUseCase(client, nil, nil, zap.NewNop())

	out, err := uc.Execute(context.Background(), port.KindCourses, port.Query{})
	require.NoError(t, err)
	assert.JSONEq(t, `["x"]`, string(out))
	assert.Equal(t, 1, client.calls)
}

func TestScrapeUnknownKind(t *testing.T) {
	uc := NewScrapeUseCase(&fakeScraperClient{}, nil, nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), port.Kind("movies"), port.Query{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScrapeUpstreamFailure(t *testing.T) {
	client := &fakeScraperClient{err: errors.New("connection refused")}
	uc := NewScrapeUseCase(client, newMemCache(), nil, zap.NewNop())

	_, err := uc.Execute(context.Background(), port.KindAITools, port.Query{})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRefreshRewritesCacheEntry(t *testing.T) {
	client := &fakeScraperClient{result: json.RawMessage(`["fresh"]`)}
	c := newMemCache()
	uc := NewScrapeUseCase(client, c, nil, zap.NewNop())

	q := port.Query{Term: "golang"}
	key := CacheKey(port.KindJobs, q)
	require.NoError(t, c.Set(context.Background(), key, `["stale"]`, 0))

	require.NoError(t, uc.Refresh(context.Background(), port.KindJobs, q))

	cached, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.JSONEq(t, `["fresh"]`, cached)
}
