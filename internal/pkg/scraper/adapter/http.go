package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SutharYagnesh/EduPath/internal/pkg/scraper/port"
)

const defaultTimeout = 20 * time.Second

// HTTPClient calls the scraping service's catalogue endpoints
// (GET /api/jobs, /api/ai-tools, /api/courses).
type HTTPClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Ensure interface compliance at compile time
var _ port.Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (c *HTTPClient) Fetch(ctx context.Context, kind port.Kind, q port.Query) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", port.ErrUpstream, kind)
	}

	params := url.Values{}
	if q.Term != "" {
		params.Set("query", q.Term)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := c.baseURL + "/api/" + string(kind)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrUpstream, err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", port.ErrUpstream, resp.StatusCode, snippet)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", port.ErrUpstream, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid response body", port.ErrUpstream)
	}
	return body, nil
}
