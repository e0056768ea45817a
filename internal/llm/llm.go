package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-completion provider used for scoring and
// feedback drafting. Implementations are treated as unreliable; callers
// must be prepared to fall back when a call errors.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
// Every call fails, which pushes callers onto their deterministic fallbacks.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
