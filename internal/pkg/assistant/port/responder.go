package port

import (
	"context"
	"errors"
)

var (
	// ErrUpstream covers transport failures and non-OK responses from the
	// ML collaborator.
	ErrUpstream = errors.New("assistant: upstream error")
	// ErrTimeout marks an exchange that hit the bounded per-request budget.
	ErrTimeout = errors.New("assistant: upstream timeout")
)

// Responder produces assistant text for a user's message. Two adapters exist:
// the real ML upstream and a deterministic templated fallback; which one runs
// is a deployment decision.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}
