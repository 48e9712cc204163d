package llm

import (
	"context"
	"errors"
)

// Client abstracts generative-model providers for qualitative analysis.
type Client interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// ErrEmptyResponse is returned when a provider produces no text.
var ErrEmptyResponse = errors.New("empty model response")
