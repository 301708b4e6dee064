package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
)

const defaultTimeout = 30 * time.Second

// UpstreamResponder talks to the ML service's chat endpoint. The service
// takes {"message": ...} and answers {"success": true, "response": ...}.
type UpstreamResponder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
}

// Ensure interface compliance at compile time
var _ port.Responder = (*UpstreamResponder)(nil)

// NewUpstreamResponder constructs a client for the given base URL. A zero
// timeout falls back to the 30s default; the budget bounds each exchange so a
// stuck upstream cannot hold a send open indefinitely.
func NewUpstreamResponder(baseURL, apiKey string, timeout time.Duration) *UpstreamResponder {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &UpstreamResponder{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (r *UpstreamResponder) Respond(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{Message: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", port.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", port.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", port.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", port.ErrUpstream, resp.StatusCode, snippet)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", port.ErrUpstream, err)
	}
	if !out.Success || out.Response == "" {
		return "", fmt.Errorf("%w: %s", port.ErrUpstream, out.Error)
	}

	return out.Response, nil
}
